package db

import (
	"fmt"

	"exportlens/internal/normalize"
)

// SaveMessages replaces the stored corpus with a batch of normalized
// messages, inside one transaction. The table always reflects the most
// recent save; channels and guilds upsert instead.
func (db *DB) SaveMessages(messages []*normalize.Message) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM messages"); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO messages (id, channel_id, guild_id, timestamp, contents, attachment_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, msg := range messages {
		channelID := msg.ChannelID
		if channelID == "" {
			channelID = "unknown"
		}
		var guildID interface{}
		if msg.GuildID != "" {
			guildID = msg.GuildID
		}
		var ts interface{}
		if msg.Timestamp != nil {
			ts = *msg.Timestamp
		}
		if _, err := stmt.Exec(msg.ID, channelID, guildID, ts, msg.Contents, len(msg.Attachments)); err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit messages: %w", err)
	}
	return nil
}

// MessageCount returns the number of stored messages.
func (db *DB) MessageCount() (int64, error) {
	var count int64
	if err := db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}
