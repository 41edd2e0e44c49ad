package commands

import (
	"github.com/spf13/cobra"

	"exportlens/internal/config"
	"exportlens/internal/db"
)

var channelsLimit int

// channelsCmd represents the channels command
var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List saved channel rollups, busiest first",
	Long:  `Query channel rollups saved by 'lens parse --save'.`,
	RunE:  runChannels,
}

func init() {
	rootCmd.AddCommand(channelsCmd)

	channelsCmd.Flags().IntVarP(&channelsLimit, "limit", "n", 25, "Maximum rows to return")
}

// channelRow is the JSON view of a stored rollup. A null name marks a DM
// channel whose only known name was a raw identifier; consumers show a
// generic DM label for those.
type channelRow struct {
	ID           string  `json:"id"`
	ChannelName  *string `json:"channel_name"`
	GuildID      *string `json:"guild_id,omitempty"`
	GuildName    *string `json:"guild_name,omitempty"`
	MessageCount int     `json:"message_count"`
}

func runChannels(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	channels, err := database.TopChannels(channelsLimit)
	if err != nil {
		return err
	}

	rows := make([]channelRow, 0, len(channels))
	for _, ch := range channels {
		rows = append(rows, channelRow{
			ID:           ch.ID,
			ChannelName:  ch.ChannelName,
			GuildID:      ch.GuildID,
			GuildName:    ch.GuildName,
			MessageCount: ch.MessageCount,
		})
	}
	return OutputJSON(rows)
}

func openDatabase() (*db.DB, error) {
	path := dbPath
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		path, err = cfg.DBPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}
