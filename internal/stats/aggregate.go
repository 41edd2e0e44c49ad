// Package stats computes the aggregate statistics for a normalized
// message corpus in a single pass: temporal histograms, per-channel and
// per-guild rollups, and word/emoji frequency tables.
package stats

import (
	"math"
	"sort"
	"time"

	"exportlens/internal/normalize"
	"exportlens/internal/utils"
)

// Default table sizes.
const (
	TopWordLimit        = 100
	TopEmojiLimit       = 24
	ChannelTopWordLimit = 30
)

// FallbackChannelKey keys rollup rows for messages whose channel could
// not be resolved at all.
const FallbackChannelKey = "unknown"

// Options configures an aggregation pass. The zero value aggregates in
// the process-local time zone with the default table sizes.
type Options struct {
	// Location is the time zone used for all local calendar derivation
	// (day keys, hour buckets, weekday buckets). Nil means time.Local.
	Location *time.Location
}

// WordCount is one entry of a word or emoji frequency table.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// DayCount is one byDay row, keyed by local calendar date. Consumers
// zero-fill gaps themselves; the engine only emits days that were seen.
type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// HourCount is one of the 24 fixed byHour buckets.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// WeekdayCount is one of the 7 fixed byDayOfWeek buckets, 0 = Sunday.
type WeekdayCount struct {
	Weekday int `json:"weekday"`
	Count   int `json:"count"`
}

// ChannelRollup is one byChannel row. Messages retains the channel's
// full message list for the per-channel word analysis and for downstream
// consumers.
type ChannelRollup struct {
	ID          string               `json:"id"`
	ChannelName *string              `json:"channel_name"`
	GuildID     string               `json:"guild_id,omitempty"`
	GuildName   string               `json:"guild_name,omitempty"`
	AvatarURL   string               `json:"avatar_url,omitempty"`
	Count       int                  `json:"count"`
	FirstAt     *time.Time           `json:"first_at,omitempty"`
	LastAt      *time.Time           `json:"last_at,omitempty"`
	TopWords    []WordCount          `json:"top_words"`
	Messages    []*normalize.Message `json:"-"`
}

// GuildRollup is one byGuild row.
type GuildRollup struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Count int    `json:"count"`
}

// Summary is the immutable aggregate produced by one pass. ByChannel and
// ByGuild sort descending by count; ByDay, ByHour, and ByDayOfWeek sort
// ascending by key.
type Summary struct {
	TotalMessages      int              `json:"total_messages"`
	TotalWords         int              `json:"total_words"`
	AvgWordsPerMessage int              `json:"avg_words_per_message"`
	AttachmentCount    int              `json:"attachment_count"`
	FirstMessageAt     *time.Time       `json:"first_message_at,omitempty"`
	LastMessageAt      *time.Time       `json:"last_message_at,omitempty"`
	ByChannel          []*ChannelRollup `json:"by_channel"`
	ByGuild            []*GuildRollup   `json:"by_guild"`
	ByDay              []DayCount       `json:"by_day"`
	ByHour             []HourCount      `json:"by_hour"`
	ByDayOfWeek        []WeekdayCount   `json:"by_day_of_week"`
	TopWords           []WordCount      `json:"top_words"`
	TopEmojis          []WordCount      `json:"top_emojis"`
}

// Aggregate runs the single statistics pass over the corpus.
//
// Messages without a parseable timestamp still count toward TotalMessages
// and TotalWords but appear in no temporal bucket, so bucket sums may be
// smaller than the totals. The asymmetry is deliberate and preserved from
// the observed export behavior.
func Aggregate(messages []*normalize.Message, opts Options) *Summary {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	summary := &Summary{
		ByDay:       []DayCount{},
		ByChannel:   []*ChannelRollup{},
		ByGuild:     []*GuildRollup{},
		TopWords:    []WordCount{},
		TopEmojis:   []WordCount{},
		ByHour:      make([]HourCount, 24),
		ByDayOfWeek: make([]WeekdayCount, 7),
	}
	for h := range summary.ByHour {
		summary.ByHour[h].Hour = h
	}
	for d := range summary.ByDayOfWeek {
		summary.ByDayOfWeek[d].Weekday = d
	}

	channels := make(map[string]*ChannelRollup)
	guilds := make(map[string]*GuildRollup)
	days := make(map[string]int)
	freq := make(map[string]int)

	for _, msg := range messages {
		summary.TotalMessages++
		summary.AttachmentCount += len(msg.Attachments)

		tokens := Tokenize(msg.Contents)
		summary.TotalWords += len(tokens)
		for _, token := range tokens {
			if !IsStopword(token) {
				freq[token]++
			}
		}
		for _, emoji := range ScanEmojis(msg.Contents) {
			freq[emoji]++
		}

		ch := upsertChannel(channels, summary, msg)
		ch.Count++
		ch.Messages = append(ch.Messages, msg)

		if msg.GuildID != "" {
			g, ok := guilds[msg.GuildID]
			if !ok {
				g = &GuildRollup{ID: msg.GuildID, Name: msg.GuildName}
				guilds[msg.GuildID] = g
				summary.ByGuild = append(summary.ByGuild, g)
			}
			g.Count++
		}

		ts := validTimestamp(msg)
		if ts == nil {
			continue
		}

		if summary.FirstMessageAt == nil || ts.Before(*summary.FirstMessageAt) {
			summary.FirstMessageAt = ts
		}
		if summary.LastMessageAt == nil || ts.After(*summary.LastMessageAt) {
			summary.LastMessageAt = ts
		}
		if ch.FirstAt == nil || ts.Before(*ch.FirstAt) {
			ch.FirstAt = ts
		}
		if ch.LastAt == nil || ts.After(*ch.LastAt) {
			ch.LastAt = ts
		}

		days[utils.DayKey(*ts, loc)]++
		summary.ByHour[utils.HourOfDay(*ts, loc)].Count++
		summary.ByDayOfWeek[utils.DayOfWeek(*ts, loc)].Count++
	}

	for date, count := range days {
		summary.ByDay = append(summary.ByDay, DayCount{Date: date, Count: count})
	}
	sort.Slice(summary.ByDay, func(i, j int) bool {
		return summary.ByDay[i].Date < summary.ByDay[j].Date
	})

	sortRollupsDesc(summary.ByChannel)
	sort.Slice(summary.ByGuild, func(i, j int) bool {
		a, b := summary.ByGuild[i], summary.ByGuild[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.ID < b.ID
	})

	summary.TopWords, summary.TopEmojis = splitFrequencies(freq)

	for _, ch := range summary.ByChannel {
		ch.TopWords = channelTopWords(ch.Messages)
	}

	if summary.TotalMessages > 0 {
		ratio := float64(summary.TotalWords) / float64(summary.TotalMessages)
		summary.AvgWordsPerMessage = int(math.Round(ratio))
	}

	return summary
}

// validTimestamp re-validates a message's timestamp defensively; the
// normalizer may have stored a shifted-but-degenerate value.
func validTimestamp(msg *normalize.Message) *time.Time {
	if msg.Timestamp == nil || msg.Timestamp.IsZero() {
		return nil
	}
	return msg.Timestamp
}

func upsertChannel(channels map[string]*ChannelRollup, summary *Summary, msg *normalize.Message) *ChannelRollup {
	key := msg.ChannelID
	if key == "" {
		key = FallbackChannelKey
	}
	if ch, ok := channels[key]; ok {
		return ch
	}
	ch := &ChannelRollup{
		ID:          key,
		ChannelName: msg.ChannelName,
		GuildID:     msg.GuildID,
		GuildName:   msg.GuildName,
		AvatarURL:   msg.AvatarURL,
		TopWords:    []WordCount{},
	}
	channels[key] = ch
	summary.ByChannel = append(summary.ByChannel, ch)
	return ch
}

func sortRollupsDesc(rollups []*ChannelRollup) {
	sort.Slice(rollups, func(i, j int) bool {
		if rollups[i].Count != rollups[j].Count {
			return rollups[i].Count > rollups[j].Count
		}
		return rollups[i].ID < rollups[j].ID
	})
}

// splitFrequencies separates the shared word/emoji frequency map by key
// shape and returns the two sorted top tables.
func splitFrequencies(freq map[string]int) (words, emojis []WordCount) {
	words = []WordCount{}
	emojis = []WordCount{}
	for key, count := range freq {
		entry := WordCount{Word: key, Count: count}
		if IsEmojiKey(key) {
			emojis = append(emojis, entry)
		} else {
			words = append(words, entry)
		}
	}
	sortWordCounts(words)
	sortWordCounts(emojis)
	if len(words) > TopWordLimit {
		words = words[:TopWordLimit]
	}
	if len(emojis) > TopEmojiLimit {
		emojis = emojis[:TopEmojiLimit]
	}
	return words, emojis
}

// channelTopWords is the second tokenization pass over one channel's
// retained messages.
func channelTopWords(messages []*normalize.Message) []WordCount {
	freq := make(map[string]int)
	for _, msg := range messages {
		for _, token := range Tokenize(msg.Contents) {
			if !IsStopword(token) {
				freq[token]++
			}
		}
	}
	words := make([]WordCount, 0, len(freq))
	for key, count := range freq {
		words = append(words, WordCount{Word: key, Count: count})
	}
	sortWordCounts(words)
	if len(words) > ChannelTopWordLimit {
		words = words[:ChannelTopWordLimit]
	}
	return words
}

func sortWordCounts(entries []WordCount) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Word < entries[j].Word
	})
}
