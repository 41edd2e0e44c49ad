package parse

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exportlens/internal/source"
)

func exportFixture() []source.File {
	return []source.File{
		{
			RelativePath: "messages/c100200300400500/channel.json",
			Content: []byte(`{
				"id": "100200300400500",
				"name": "general",
				"guild": {"id": "900", "name": "My Server"}
			}`),
		},
		{
			RelativePath: "messages/c100200300400500/messages.json",
			Content: []byte(`[
				{"ID": "1", "Timestamp": "2024-01-01T05:00:00Z", "Contents": "hello gopher world"},
				{"ID": "2", "Timestamp": "2024-01-01T06:00:00Z", "Contents": "gopher again :wave:", "Attachments": ["https://x/a.png"]},
				{"ID": "3", "Timestamp": "broken", "Contents": "untimestamped words"}
			]`),
		},
		{
			// DM channel without metadata: its only name is ID-shaped.
			RelativePath: "messages/c111222333444555/messages.json",
			Content: []byte(`[
				{"ID": "4", "Timestamp": "2024-01-02T10:00:00Z", "Contents": "direct message"}
			]`),
		},
		{
			RelativePath: "messages/index.json",
			Content:      []byte(`{"42": "team-chat"}`),
		},
		{
			RelativePath: "account/user.json",
			Content:      []byte(`{"id": "7", "username": "me"}`),
		},
		{
			RelativePath: "messages/c100200300400500/corrupt.json",
			Content:      []byte(`{{{not json`),
		},
	}
}

func TestParseEndToEnd(t *testing.T) {
	entries := source.FromFiles(exportFixture())

	output, err := Parse(context.Background(), entries, Options{Location: time.UTC})
	require.NoError(t, err)
	require.NotNil(t, output.Summary)

	assert.Equal(t, 4, output.Summary.TotalMessages)
	assert.Equal(t, 1, output.Summary.AttachmentCount)
	assert.Len(t, output.Channels, 1, "one metadata file decoded")
	require.Len(t, output.Guilds, 1)
	assert.Equal(t, "900", output.Guilds[0].ID)
	assert.Equal(t, "My Server", output.Guilds[0].Name)
	require.NotNil(t, output.Account)
	assert.Equal(t, "me", output.Account["username"])

	// Timestamp correction: raw 05:00Z stores 5 hours earlier.
	var first *time.Time
	for _, msg := range output.Messages {
		if msg.ID == "1" {
			first = msg.Timestamp
		}
	}
	require.NotNil(t, first)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), first.UTC())

	// The guild channel resolves its metadata name; the DM with an
	// ID-shaped fallback surfaces a nil name, never the raw ID.
	byID := map[string]*struct {
		name    *string
		guildID string
	}{}
	for _, ch := range output.Summary.ByChannel {
		byID[ch.ID] = &struct {
			name    *string
			guildID string
		}{ch.ChannelName, ch.GuildID}
	}

	general, ok := byID["100200300400500"]
	require.True(t, ok, "guild channel rollup missing")
	require.NotNil(t, general.name)
	assert.Equal(t, "general", *general.name)
	assert.Equal(t, "900", general.guildID)

	dm, ok := byID["111222333444555"]
	require.True(t, ok, "dm channel rollup missing")
	assert.Nil(t, dm.name, "ID-shaped DM name must be suppressed")
}

func TestParseUntimestampedAsymmetry(t *testing.T) {
	entries := source.FromFiles(exportFixture())
	output, err := Parse(context.Background(), entries, Options{Location: time.UTC})
	require.NoError(t, err)

	timestamped := 0
	for _, msg := range output.Messages {
		if msg.Timestamp != nil {
			timestamped++
		}
	}
	require.Equal(t, 3, timestamped)

	hourSum := 0
	for _, b := range output.Summary.ByHour {
		hourSum += b.Count
	}
	assert.Equal(t, timestamped, hourSum, "temporal buckets exclude the untimestamped message")
	assert.Equal(t, 4, output.Summary.TotalMessages, "totals include it")
}

func TestParseIndexOverridePreferred(t *testing.T) {
	files := []source.File{
		{
			// No metadata: the channel's default name is its bare ID.
			RelativePath: "messages/42/messages.json",
			Content:      []byte(`[{"ID":"1","Timestamp":"2024-01-01T12:00:00Z","Contents":"hi there"}]`),
		},
		{
			RelativePath: "messages/index.json",
			Content:      []byte(`[{"id":"42","name":"team-chat"}]`),
		},
	}

	output, err := Parse(context.Background(), source.FromFiles(files), Options{Location: time.UTC})
	require.NoError(t, err)
	require.Len(t, output.Summary.ByChannel, 1)

	ch := output.Summary.ByChannel[0]
	require.NotNil(t, ch.ChannelName)
	assert.Equal(t, "team-chat", *ch.ChannelName, "index override must beat the per-channel default")
}

func TestParseCustomOffset(t *testing.T) {
	files := []source.File{
		{
			RelativePath: "messages/c1/x/messages.json",
			Content:      []byte(`[{"ID":"1","Timestamp":"2024-01-01T12:00:00Z","Contents":"hi"}]`),
		},
	}

	offset := time.Duration(0)
	output, err := Parse(context.Background(), source.FromFiles(files), Options{
		Location:        time.UTC,
		TimestampOffset: &offset,
	})
	require.NoError(t, err)
	require.Len(t, output.Messages, 1)
	require.NotNil(t, output.Messages[0].Timestamp)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), output.Messages[0].Timestamp.UTC())
}

func TestParseProgressContract(t *testing.T) {
	var percents []int
	_, err := Parse(context.Background(), source.FromFiles(exportFixture()), Options{
		Location: time.UTC,
		Progress: func(percent int, message string) {
			percents = append(percents, percent)
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, percents)

	for i := 1; i < len(percents); i++ {
		assert.GreaterOrEqual(t, percents[i], percents[i-1], "progress must be non-decreasing")
	}
	assert.Equal(t, 100, percents[len(percents)-1], "final call must reach 100")
}

func TestParseCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	output, err := Parse(ctx, source.FromFiles(exportFixture()), Options{Location: time.UTC})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, output, "cancellation must leave no partial output visible")
}

func TestParseDeterminism(t *testing.T) {
	a, err := Parse(context.Background(), source.FromFiles(exportFixture()), Options{Location: time.UTC})
	require.NoError(t, err)
	b, err := Parse(context.Background(), source.FromFiles(exportFixture()), Options{Location: time.UTC})
	require.NoError(t, err)

	assert.Equal(t, a.Summary.TopWords, b.Summary.TopWords)
	assert.Equal(t, a.Summary.ByDay, b.Summary.ByDay)
	require.Equal(t, len(a.Summary.ByChannel), len(b.Summary.ByChannel))
	for i := range a.Summary.ByChannel {
		assert.Equal(t, a.Summary.ByChannel[i].ID, b.Summary.ByChannel[i].ID)
		assert.Equal(t, a.Summary.ByChannel[i].Count, b.Summary.ByChannel[i].Count)
	}
}
