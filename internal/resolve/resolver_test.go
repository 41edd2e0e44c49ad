package resolve

import (
	"encoding/json"
	"testing"

	"exportlens/internal/normalize"
)

func TestLooksLikeID(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"123456789012345", true},  // 15 digits
		{"c123456789012345", true}, // prefixed
		{"~123456789012345", true},
		{"general", false},
		{"12345678901234", false}, // 14 digits, too short for the pattern
		{"12345678901234567", true},
		{"", false},
		{"c12345", false},
		{"x123456789012345", false}, // unknown prefix
	}

	for _, tt := range tests {
		if got := LooksLikeID(tt.input); got != tt.want {
			t.Errorf("LooksLikeID(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestStripIDPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"c123456789012345", "123456789012345"},
		{"123", "123"},
		{"abc", "abc"},
	}

	for _, tt := range tests {
		if got := StripIDPrefix(tt.input); got != tt.want {
			t.Errorf("StripIDPrefix(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestResolveGuildChannel(t *testing.T) {
	r := New()
	r.AddMeta("messages/c1", &normalize.ChannelMeta{
		ChannelID:   "1",
		ChannelName: "general",
		GuildID:     "900",
		GuildName:   "My Server",
	})

	id := r.Resolve("messages/c1", "")
	if id.ChannelName == nil || *id.ChannelName != "general" {
		t.Errorf("expected name general, got %v", id.ChannelName)
	}
	if id.GuildID != "900" || id.GuildName != "My Server" {
		t.Errorf("guild fields not carried: %q/%q", id.GuildID, id.GuildName)
	}

	if meta := r.MetaForPath("messages/c1"); meta == nil || meta.ChannelID != "1" {
		t.Errorf("MetaForPath lost the registered metadata: %+v", meta)
	}
	if meta := r.MetaForPath("messages/unregistered"); meta != nil {
		t.Errorf("MetaForPath for an unknown path must be nil, got %+v", meta)
	}
}

func TestResolveDMSuppressesIDShapedName(t *testing.T) {
	// DM channel (no guild ID) whose only known name is ID-shaped:
	// the resolver leaves the name nil rather than surface the ID.
	r := New()
	r.AddMeta("messages/c123456789012345", &normalize.ChannelMeta{
		ChannelID:   "123456789012345",
		ChannelName: "c123456789012345",
	})

	id := r.Resolve("messages/c123456789012345", "")
	if id.ChannelName != nil {
		t.Errorf("ID-shaped DM name must resolve to nil, got %q", *id.ChannelName)
	}
}

func TestResolveDMKeepsRealName(t *testing.T) {
	r := New()
	r.AddMeta("messages/c2", &normalize.ChannelMeta{
		ChannelID:   "2",
		ChannelName: "alice",
	})

	id := r.Resolve("messages/c2", "")
	if id.ChannelName == nil || *id.ChannelName != "alice" {
		t.Errorf("expected alice, got %v", id.ChannelName)
	}
}

func TestResolveIndexOverride(t *testing.T) {
	r := New()
	r.AddMeta("messages/c42", &normalize.ChannelMeta{
		ChannelID:   "42",
		ChannelName: "42",
		GuildID:     "900",
	})
	r.SetOverride("42", "team-chat")

	id := r.Resolve("messages/c42", "")
	if id.ChannelName == nil || *id.ChannelName != "team-chat" {
		t.Errorf("index override must win, got %v", id.ChannelName)
	}
}

func TestResolveOverrideStrippedKey(t *testing.T) {
	// The index keys by bare numeric ID; the channel resolved to a
	// prefixed ID. The secondary digit-stripped lookup bridges them.
	r := New()
	r.SetOverride("123456789012345", "lounge")

	id := r.Resolve("messages/whatever", "c123456789012345")
	if id.ChannelName != nil {
		// DM (no guild): the override name is not ID-shaped, so it
		// should have been used.
		if *id.ChannelName != "lounge" {
			t.Errorf("expected lounge, got %q", *id.ChannelName)
		}
	} else {
		t.Error("expected override name, got nil")
	}
}

func TestResolveNoMetadataGuessesNothing(t *testing.T) {
	r := New()
	id := r.Resolve("messages/c999999999999999", "999999999999999")
	if id.ChannelName != nil {
		t.Errorf("no metadata and no override must leave the name nil, got %q", *id.ChannelName)
	}
	if id.ChannelID != "999999999999999" {
		t.Errorf("fallback ID not kept: %q", id.ChannelID)
	}
}

func TestParseIndexShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{
			name: "array of id-name rows",
			raw:  `[{"id":"1","name":"general"},{"id":"2","name":"random"}]`,
			want: map[string]string{"1": "general", "2": "random"},
		},
		{
			name: "channels wrapper",
			raw:  `{"channels":[{"id":"1","name":"general"}]}`,
			want: map[string]string{"1": "general"},
		},
		{
			name: "flat id to name map",
			raw:  `{"1":"general","2":"random"}`,
			want: map[string]string{"1": "general", "2": "random"},
		},
		{
			name: "flat id to object map",
			raw:  `{"1":{"name":"general"}}`,
			want: map[string]string{"1": "general"},
		},
		{
			name: "junk contributes nothing",
			raw:  `[1, "x", {"id":"3"}]`,
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v interface{}
			if err := json.Unmarshal([]byte(tt.raw), &v); err != nil {
				t.Fatalf("failed to decode fixture: %v", err)
			}
			got := ParseIndex(v)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries, want %d", len(got), len(tt.want))
			}
			for id, name := range tt.want {
				if got[id] != name {
					t.Errorf("index[%q] = %q, want %q", id, got[id], name)
				}
			}
		})
	}
}
