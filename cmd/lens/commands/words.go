package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	wordsLimit  int
	wordsEmojis bool
)

// wordsCmd represents the words command
var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Show the saved word or emoji frequency table",
	Long:  `Query the most recent saved run's word frequencies, or emoji frequencies with --emojis.`,
	RunE:  runWords,
}

func init() {
	rootCmd.AddCommand(wordsCmd)

	wordsCmd.Flags().IntVarP(&wordsLimit, "limit", "n", 50, "Maximum entries to return")
	wordsCmd.Flags().BoolVar(&wordsEmojis, "emojis", false, "Show emoji frequencies instead of words")
}

func runWords(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := database.LatestRunID()
	if err != nil {
		return err
	}
	if runID == 0 {
		return fmt.Errorf("no saved runs; run 'lens parse --save' first")
	}

	kind := "word"
	if wordsEmojis {
		kind = "emoji"
	}
	entries, err := database.TopWords(runID, kind, wordsLimit)
	if err != nil {
		return err
	}
	return OutputJSON(entries)
}
