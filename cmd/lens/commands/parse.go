package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"exportlens/internal/config"
	"exportlens/internal/db"
	"exportlens/internal/parse"
	"exportlens/internal/source"
)

var (
	parseSave        bool
	parseQuiet       bool
	parseOffsetHours int
	parseTimezone    string
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <export-path>",
	Short: "Run the ingestion pipeline over an export",
	Long: `Parse an export — a .zip archive or an unpacked directory tree — and
print its aggregate summary as JSON. With --save, the normalized corpus
and rollups are also written to the local database.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVar(&parseSave, "save", false, "Save the corpus and rollups to the database")
	parseCmd.Flags().BoolVarP(&parseQuiet, "quiet", "q", false, "Suppress progress output")
	parseCmd.Flags().IntVar(&parseOffsetHours, "offset-hours", 0, "Override the timestamp correction offset in hours")
	parseCmd.Flags().StringVar(&parseTimezone, "timezone", "", "Time zone for daily/hourly aggregation (default: local)")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	offset := cfg.TimestampOffset()
	if cmd.Flags().Changed("offset-hours") {
		offset = time.Duration(parseOffsetHours) * time.Hour
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	if parseTimezone != "" {
		loc, err = time.LoadLocation(parseTimezone)
		if err != nil {
			return fmt.Errorf("invalid timezone %q: %w", parseTimezone, err)
		}
	}

	entries, cleanup, err := openExport(args[0])
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := parse.Options{
		TimestampOffset: &offset,
		Location:        loc,
		Logger:          diagnosticLogger(),
	}
	if !parseQuiet {
		opts.Progress = func(percent int, message string) {
			fmt.Fprintf(os.Stderr, "[%3d%%] %s\n", percent, message)
		}
	}

	output, err := parse.Parse(ctx, entries, opts)
	if err != nil {
		if ctx.Err() != nil {
			// User-initiated abort is not an error to report.
			return nil
		}
		return err
	}

	if parseSave {
		if err := saveOutput(cfg, output); err != nil {
			return err
		}
	}

	return OutputJSON(output.Summary)
}

// openExport adapts the path into entries: a zip archive or a directory.
func openExport(path string) ([]source.Entry, func() error, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open export: %w", err)
	}
	if info.IsDir() {
		entries, err := source.FromDir(path)
		return entries, nil, err
	}
	return source.FromZipFile(path)
}

func saveOutput(cfg *config.Config, output *parse.Output) error {
	path := dbPath
	if path == "" {
		var err error
		path, err = cfg.DBPath()
		if err != nil {
			return err
		}
	}

	database, err := db.Open(path)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.SaveMessages(output.Messages); err != nil {
		return err
	}
	runID, err := database.SaveRun(output.Summary)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Saved run %d (%d messages) to %s\n", runID, len(output.Messages), path)
	return nil
}

func diagnosticLogger() zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
