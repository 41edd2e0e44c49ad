package classify

import (
	"testing"

	"exportlens/internal/source"
)

func entriesFor(paths ...string) []source.Entry {
	entries := make([]source.Entry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, source.Entry{
			Path: p,
			Open: func() ([]byte, error) { return nil, nil },
		})
	}
	return entries
}

func TestClassifyChannels(t *testing.T) {
	result := Classify(entriesFor(
		"messages/c111/channel.json",
		"messages/c111/messages.json",
		"messages/c222/Channel.json",
		"messages/c222/messages.json",
		"README.txt",
		"messages/notes.txt",
	), false)

	if len(result.Channels) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(result.Channels))
	}

	first := result.Channels[0]
	if first.Path != "messages/c111" {
		t.Errorf("unexpected channel path %q", first.Path)
	}
	if len(first.Metadata) != 1 {
		t.Errorf("expected 1 metadata candidate, got %d", len(first.Metadata))
	}
	// Dual membership: the metadata file is also a message candidate.
	if len(first.Messages) != 2 {
		t.Errorf("expected 2 message candidates, got %d", len(first.Messages))
	}

	// Metadata filename matching is case-insensitive.
	if len(result.Channels[1].Metadata) != 1 {
		t.Errorf("expected Channel.json to match as metadata")
	}
}

func TestClassifyNestedChannelPath(t *testing.T) {
	result := Classify(entriesFor(
		"messages/guild-a/c333/channel.json",
		"messages/guild-a/c333/messages.json",
	), false)

	if len(result.Channels) != 1 {
		t.Fatalf("expected 1 channel, got %d", len(result.Channels))
	}
	if result.Channels[0].Path != "messages/guild-a/c333" {
		t.Errorf("unexpected channel path %q", result.Channels[0].Path)
	}
}

func TestClassifyFallbackScan(t *testing.T) {
	// No messages/ root at all: the permissive secondary scan picks up
	// any messages.json, parent directory as the channel path.
	result := Classify(entriesFor(
		"export/chan-1/messages.json",
		"export/chan-2/messages.json",
		"export/chan-2/readme.json",
	), false)

	if len(result.Channels) != 2 {
		t.Fatalf("expected 2 fallback channels, got %d", len(result.Channels))
	}
	if result.Channels[0].Path != "export/chan-1" {
		t.Errorf("unexpected channel path %q", result.Channels[0].Path)
	}
	if len(result.Channels[1].Messages) != 1 {
		t.Errorf("fallback scan must only accept messages.json")
	}
}

func TestClassifyIndex(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		loose bool
		found bool
	}{
		{"exact path", "messages/index.json", false, true},
		{"nested path", "package/messages/index.json", false, true},
		{"bare index in loose list", "index.json", true, true},
		{"bare index in archive", "index.json", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(entriesFor(tt.path), tt.loose)
			if (result.Index != nil) != tt.found {
				t.Errorf("index found = %v, want %v", result.Index != nil, tt.found)
			}
		})
	}
}

func TestClassifyAccount(t *testing.T) {
	result := Classify(entriesFor(
		"account/user.json",
		"account/settings.json",
	), false)

	if result.Account == nil {
		t.Fatal("expected account file")
	}
	// First match wins.
	if result.Account.Path != "account/user.json" {
		t.Errorf("unexpected account path %q", result.Account.Path)
	}
}

func TestClassifyTooShallow(t *testing.T) {
	result := Classify(entriesFor("messages/top.json"), false)
	if len(result.Channels) != 0 {
		t.Errorf("two-segment path must not qualify as a channel file")
	}
}
