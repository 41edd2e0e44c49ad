package db

import (
	"database/sql"
	"fmt"
	"time"

	"exportlens/internal/stats"
)

// Channel is a stored channel rollup row.
type Channel struct {
	ID           string
	ChannelName  *string
	GuildID      *string
	GuildName    *string
	AvatarURL    *string
	MessageCount int
	FirstAt      *time.Time
	LastAt       *time.Time
}

// SaveChannel saves or updates a channel rollup
func (db *DB) SaveChannel(ch *stats.ChannelRollup) error {
	_, err := db.Exec(`
		INSERT INTO channels (
			id, channel_name, guild_id, guild_name, avatar_url,
			message_count, first_at, last_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			channel_name = excluded.channel_name,
			guild_id = excluded.guild_id,
			guild_name = excluded.guild_name,
			avatar_url = excluded.avatar_url,
			message_count = excluded.message_count,
			first_at = excluded.first_at,
			last_at = excluded.last_at
	`, ch.ID, ch.ChannelName, nullable(ch.GuildID), nullable(ch.GuildName),
		nullable(ch.AvatarURL), ch.Count, timeOrNil(ch.FirstAt), timeOrNil(ch.LastAt))

	if err != nil {
		return fmt.Errorf("failed to save channel: %w", err)
	}
	return nil
}

// SaveGuild saves or updates a guild rollup
func (db *DB) SaveGuild(g *stats.GuildRollup) error {
	_, err := db.Exec(`
		INSERT INTO guilds (id, name, message_count)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			message_count = excluded.message_count
	`, g.ID, nullable(g.Name), g.Count)

	if err != nil {
		return fmt.Errorf("failed to save guild: %w", err)
	}
	return nil
}

// TopChannels returns stored channel rollups, busiest first.
func (db *DB) TopChannels(limit int) ([]*Channel, error) {
	rows, err := db.Query(`
		SELECT id, channel_name, guild_id, guild_name, avatar_url,
		       message_count, first_at, last_at
		FROM channels
		ORDER BY message_count DESC, id ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query channels: %w", err)
	}
	defer rows.Close()

	var channels []*Channel
	for rows.Next() {
		ch := &Channel{}
		var name, guildID, guildName, avatar sql.NullString
		var firstAt, lastAt sql.NullTime
		if err := rows.Scan(&ch.ID, &name, &guildID, &guildName, &avatar,
			&ch.MessageCount, &firstAt, &lastAt); err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		if name.Valid {
			ch.ChannelName = &name.String
		}
		if guildID.Valid {
			ch.GuildID = &guildID.String
		}
		if guildName.Valid {
			ch.GuildName = &guildName.String
		}
		if avatar.Valid {
			ch.AvatarURL = &avatar.String
		}
		if firstAt.Valid {
			ch.FirstAt = &firstAt.Time
		}
		if lastAt.Valid {
			ch.LastAt = &lastAt.Time
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func timeOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
