// Package parse orchestrates the ingestion pipeline: classify the
// export's files, decode channel metadata before any messages, normalize
// the transcripts, fold in the global index as a late override layer, and
// aggregate the corpus into a Summary.
//
// All accumulator mutation happens on the calling goroutine; the only
// suspension points are file reads. Per-file failures are logged and
// skipped — only a container-level failure or cancellation crosses the
// component boundary.
package parse

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"exportlens/internal/classify"
	"exportlens/internal/normalize"
	"exportlens/internal/progress"
	"exportlens/internal/resolve"
	"exportlens/internal/source"
	"exportlens/internal/stats"
)

// Options configures one parse invocation.
type Options struct {
	// TimestampOffset overrides the correction applied to parsed
	// timestamps. Nil means normalize.DefaultTimestampOffset.
	TimestampOffset *time.Duration

	// Location is the time zone for calendar derivation. Nil means
	// time.Local.
	Location *time.Location

	// Progress receives coarse milestones. May be nil.
	Progress progress.Func

	// LooseList marks the entries as coming from a flattened file list
	// rather than an archive or directory tree.
	LooseList bool

	// Logger receives per-file skip diagnostics. The zero value
	// discards them.
	Logger zerolog.Logger
}

// Guild is one deduplicated guild reference discovered during the parse.
type Guild struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Output is the full contract handed to downstream consumers: the
// aggregate summary plus the raw corpus.
type Output struct {
	Summary  *stats.Summary           `json:"summary"`
	Messages []*normalize.Message     `json:"messages"`
	Channels []*normalize.ChannelMeta `json:"channels"`
	Guilds   []Guild                  `json:"guilds"`
	Account  map[string]interface{}   `json:"account,omitempty"`
}

// result is the mutable accumulator for one parse invocation. It is
// passed explicitly through each stage, never ambient.
type result struct {
	resolver *resolve.Resolver
	channels []*normalize.ChannelMeta
	guilds   map[string]string
	account  map[string]interface{}

	// perChannel retains each channel's raw normalized messages until
	// the index override layer has been applied.
	perChannel map[string][]*normalize.Message
	order      []string
	fallbackID map[string]string
}

// Parse runs the whole pipeline over an export's entries.
//
// Cancellation via ctx aborts between file reads and returns ctx.Err()
// with no partial output. Any other error means the container itself was
// unusable; per-file problems never surface here.
func Parse(ctx context.Context, entries []source.Entry, opts Options) (*Output, error) {
	offset := normalize.DefaultTimestampOffset
	if opts.TimestampOffset != nil {
		offset = *opts.TimestampOffset
	}
	log := opts.Logger
	reporter := progress.NewReporter(opts.Progress)

	reporter.Report(5, "Scanning export files")
	classified := classify.Classify(entries, opts.LooseList)

	acc := &result{
		resolver:   resolve.New(),
		guilds:     make(map[string]string),
		perChannel: make(map[string][]*normalize.Message),
		fallbackID: make(map[string]string),
	}

	reporter.Report(15, "Reading channel metadata")
	if err := readMetadata(ctx, classified, acc, log); err != nil {
		return nil, err
	}

	reporter.Report(40, "Reading message transcripts")
	if err := readMessages(ctx, classified, acc, offset, reporter, log); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	readAccount(classified, acc, log)

	reporter.Report(75, "Reading channel name index")
	readIndex(classified, acc, log)

	messages := assembleCorpus(acc)

	reporter.Report(85, "Building statistics")
	summary := stats.Aggregate(messages, stats.Options{Location: opts.Location})

	output := &Output{
		Summary:  summary,
		Messages: messages,
		Channels: acc.channels,
		Guilds:   guildList(acc.guilds),
		Account:  acc.account,
	}
	reporter.Done("Done")
	return output, nil
}

// readMetadata decodes every metadata candidate. Metadata for a channel
// is fully processed before that channel's messages, because name and
// guild resolution for messages depends on it.
func readMetadata(ctx context.Context, classified *classify.Result, acc *result, log zerolog.Logger) error {
	for _, ch := range classified.Channels {
		for _, entry := range ch.Metadata {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, ok := decodeEntry(entry, log)
			if !ok {
				continue
			}
			obj, ok := raw.(map[string]interface{})
			if !ok || !normalize.IsChannelMeta(obj) {
				// Structural mismatch: not applicable, not an error.
				log.Debug().Str("path", entry.Path).Msg("metadata candidate is not channel metadata")
				continue
			}
			meta := normalize.NormalizeChannelMeta(obj)
			acc.resolver.AddMeta(ch.Path, meta)
			acc.channels = append(acc.channels, meta)
			if meta.GuildID != "" {
				if _, ok := acc.guilds[meta.GuildID]; !ok || meta.GuildName != "" {
					acc.guilds[meta.GuildID] = meta.GuildName
				}
			}
		}
	}
	return nil
}

// readMessages decodes every message candidate, normalizing each element
// of every file that proves to be a message array. Identity stamping is
// deferred until the index override layer has been read.
func readMessages(ctx context.Context, classified *classify.Result, acc *result, offset time.Duration, reporter *progress.Reporter, log zerolog.Logger) error {
	total := len(classified.Channels)
	for i, ch := range classified.Channels {
		if total > 0 {
			reporter.Report(40+35*i/total, "Reading message transcripts")
		}
		acc.fallbackID[ch.Path] = channelFallbackID(ch.Path)

		for _, entry := range ch.Messages {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, ok := decodeEntry(entry, log)
			if !ok {
				continue
			}
			arr, isArr := raw.([]interface{})
			if !isArr || !normalize.IsMessageArray(raw) {
				log.Debug().Str("path", entry.Path).Msg("message candidate is not a message array")
				continue
			}
			for _, item := range arr {
				obj, ok := item.(map[string]interface{})
				if !ok {
					continue
				}
				msg := normalize.NormalizeMessage(obj, offset)
				acc.perChannel[ch.Path] = append(acc.perChannel[ch.Path], msg)
			}
		}
		if _, ok := acc.perChannel[ch.Path]; ok {
			acc.order = append(acc.order, ch.Path)
		}
	}
	return nil
}

// readAccount decodes the account info file, kept as a raw object.
func readAccount(classified *classify.Result, acc *result, log zerolog.Logger) {
	if classified.Account == nil {
		return
	}
	raw, ok := decodeEntry(*classified.Account, log)
	if !ok {
		return
	}
	if obj, ok := raw.(map[string]interface{}); ok {
		acc.account = obj
	}
}

// readIndex reads the global channel-name index best-effort, after all
// per-message defaults have been assigned. The index is an override
// layer, never a dependency.
func readIndex(classified *classify.Result, acc *result, log zerolog.Logger) {
	if classified.Index == nil {
		return
	}
	raw, ok := decodeEntry(*classified.Index, log)
	if !ok {
		return
	}
	for id, name := range resolve.ParseIndex(raw) {
		acc.resolver.SetOverride(id, name)
	}
}

// assembleCorpus resolves each channel's final identity — metadata,
// index overrides, and ID-shape heuristics combined — and stamps it onto
// the channel's retained messages.
func assembleCorpus(acc *result) []*normalize.Message {
	var messages []*normalize.Message
	for _, channelPath := range acc.order {
		identity := acc.resolver.Resolve(channelPath, acc.fallbackID[channelPath])
		for _, msg := range acc.perChannel[channelPath] {
			msg.ChannelID = identity.ChannelID
			msg.ChannelName = identity.ChannelName
			msg.GuildID = identity.GuildID
			msg.GuildName = identity.GuildName
			msg.AvatarURL = identity.AvatarURL
			messages = append(messages, msg)
		}
	}
	return messages
}

// channelFallbackID infers a channel ID from the channel path's final
// segment, stripping the export's non-digit directory prefix when the
// segment is ID-shaped.
func channelFallbackID(channelPath string) string {
	segments := strings.Split(channelPath, "/")
	seg := segments[len(segments)-1]
	if resolve.LooksLikeID(seg) {
		return resolve.StripIDPrefix(seg)
	}
	return seg
}

// decodeEntry reads and JSON-decodes one file. Any failure skips the
// file with a diagnostic; a malformed file never aborts the batch.
func decodeEntry(entry source.Entry, log zerolog.Logger) (interface{}, bool) {
	data, err := entry.Open()
	if err != nil {
		log.Warn().Str("path", entry.Path).Err(err).Msg("skipping unreadable file")
		return nil, false
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		log.Warn().Str("path", entry.Path).Err(err).Msg("skipping malformed JSON file")
		return nil, false
	}
	return v, true
}

func guildList(guilds map[string]string) []Guild {
	out := make([]Guild, 0, len(guilds))
	for id, name := range guilds {
		out = append(out, Guild{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
