// Package classify sorts an export's file list into the roles the pipeline
// cares about: per-channel metadata candidates, per-channel message
// transcript candidates, the global channel-name index, and the account
// info file. Classification is purely path-shape-driven; file contents are
// never inspected here.
package classify

import (
	"strings"

	"exportlens/internal/source"
)

// Known metadata filenames, matched case-insensitively.
var metadataFilenames = []string{"channel.json", "metadata.json"}

// ChannelFiles groups one channel's files. The channel is identified by
// its path (the file path with the final segment removed), not by a
// channel ID — the ID is only known after metadata is decoded.
//
// Some export revisions store both the metadata and the transcript in the
// same file, so a metadata candidate is always also a message candidate.
type ChannelFiles struct {
	// Path is the channel's directory path, e.g. "messages/c123456".
	// It may contain nested segments in non-standard exports.
	Path string

	// Metadata holds files whose name matches a known metadata filename.
	Metadata []source.Entry

	// Messages holds every file in the channel's directory, metadata
	// included.
	Messages []source.Entry
}

// Result is the classified view of an export's file list.
type Result struct {
	// Channels lists each discovered channel's files, in first-seen order.
	Channels []*ChannelFiles

	// Index is the global channel-name index file, if any.
	Index *source.Entry

	// Account is the account info file, if any.
	Account *source.Entry
}

// Classify sorts entries into channel groups and special files.
//
// A file belongs to a channel when its path has the shape
// messages/<channelPath...>/<filename>.json, at least three segments deep
// with "messages" first. When no message candidates are found at all, a
// permissive fallback accepts any file named exactly "messages.json"
// anywhere in the tree, keyed by its parent directory.
//
// looseList should be true when the entries came from a flattened file
// list rather than an archive or directory; only then is a bare
// "index.json" at the root accepted as the global index.
func Classify(entries []source.Entry, looseList bool) *Result {
	result := &Result{}
	byPath := make(map[string]*ChannelFiles)

	channel := func(path string) *ChannelFiles {
		if ch, ok := byPath[path]; ok {
			return ch
		}
		ch := &ChannelFiles{Path: path}
		byPath[path] = ch
		result.Channels = append(result.Channels, ch)
		return ch
	}

	for i := range entries {
		entry := entries[i]
		path := entry.Path

		if result.Index == nil && isIndexPath(path, looseList) {
			result.Index = &entries[i]
			continue
		}
		if result.Account == nil && isAccountPath(path) {
			result.Account = &entries[i]
			continue
		}

		segments := strings.Split(path, "/")
		if len(segments) < 3 || segments[0] != "messages" {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(path), ".json") {
			continue
		}

		channelPath := strings.Join(segments[:len(segments)-1], "/")
		ch := channel(channelPath)
		if isMetadataFilename(segments[len(segments)-1]) {
			ch.Metadata = append(ch.Metadata, entry)
		}
		ch.Messages = append(ch.Messages, entry)
	}

	if countMessages(result.Channels) == 0 {
		// Export variants that don't follow the messages/ root
		// convention: accept any messages.json, parent dir as the
		// channel path.
		for i := range entries {
			entry := entries[i]
			segments := strings.Split(entry.Path, "/")
			if segments[len(segments)-1] != "messages.json" {
				continue
			}
			channelPath := strings.Join(segments[:len(segments)-1], "/")
			ch := channel(channelPath)
			ch.Messages = append(ch.Messages, entry)
		}
	}

	return result
}

func countMessages(channels []*ChannelFiles) int {
	n := 0
	for _, ch := range channels {
		n += len(ch.Messages)
	}
	return n
}

func isMetadataFilename(name string) bool {
	lower := strings.ToLower(name)
	for _, known := range metadataFilenames {
		if lower == known {
			return true
		}
	}
	return false
}

func isIndexPath(path string, looseList bool) bool {
	if path == "messages/index.json" || strings.HasSuffix(path, "/messages/index.json") {
		return true
	}
	return looseList && path == "index.json"
}

func isAccountPath(path string) bool {
	return strings.HasPrefix(path, "account/") && strings.HasSuffix(strings.ToLower(path), ".json")
}
