package normalize

import "testing"

func TestNormalizeChannelMetaNameChain(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
		want string
	}{
		{
			name: "explicit name wins",
			raw: map[string]interface{}{
				"channel_id": "1",
				"name":       "general",
				"recipients": []interface{}{
					map[string]interface{}{"username": "alice"},
				},
			},
			want: "general",
		},
		{
			name: "first recipient display name",
			raw: map[string]interface{}{
				"channel_id": "2",
				"recipients": []interface{}{
					map[string]interface{}{"username": "alice", "global_name": "Alice A"},
					map[string]interface{}{"username": "bob"},
				},
			},
			want: "Alice A",
		},
		{
			name: "recipient username fallback",
			raw: map[string]interface{}{
				"channel_id": "3",
				"recipients": []interface{}{
					map[string]interface{}{"username": "bob"},
				},
			},
			want: "bob",
		},
		{
			name: "literal Unknown of last resort",
			raw:  map[string]interface{}{"channel_id": "4"},
			want: UnknownChannelName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NormalizeChannelMeta(tt.raw)
			if meta.ChannelName != tt.want {
				t.Errorf("ChannelName = %q, want %q", meta.ChannelName, tt.want)
			}
		})
	}
}

func TestNormalizeChannelMetaGuild(t *testing.T) {
	meta := NormalizeChannelMeta(map[string]interface{}{
		"channel_id": "1",
		"guild":      map[string]interface{}{"id": "900", "name": "My Server"},
	})
	if meta.GuildID != "900" {
		t.Errorf("GuildID = %q, want 900", meta.GuildID)
	}
	if meta.GuildName != "My Server" {
		t.Errorf("GuildName = %q, want My Server", meta.GuildName)
	}

	// Flat keys take priority over the nested object.
	meta = NormalizeChannelMeta(map[string]interface{}{
		"channel_id": "1",
		"guild_id":   "901",
		"guild_name": "Flat",
		"guild":      map[string]interface{}{"id": "900", "name": "Nested"},
	})
	if meta.GuildID != "901" || meta.GuildName != "Flat" {
		t.Errorf("flat guild keys must win, got %q/%q", meta.GuildID, meta.GuildName)
	}
}

func TestNormalizeChannelMetaAvatar(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
		want string
	}{
		{
			name: "bare hash synthesizes CDN URL",
			raw:  map[string]interface{}{"channel_id": "123", "avatar": "abc123"},
			want: "https://cdn.discordapp.com/avatars/123/abc123.png",
		},
		{
			name: "full URL passes through",
			raw:  map[string]interface{}{"channel_id": "123", "avatar": "https://cdn.example.com/a.png"},
			want: "https://cdn.example.com/a.png",
		},
		{
			name: "hash without channel id yields nothing",
			raw:  map[string]interface{}{"name": "x", "guild_id": "1", "avatar": "abc123"},
			want: "",
		},
		{
			name: "no avatar",
			raw:  map[string]interface{}{"channel_id": "123"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NormalizeChannelMeta(tt.raw)
			if meta.AvatarURL != tt.want {
				t.Errorf("AvatarURL = %q, want %q", meta.AvatarURL, tt.want)
			}
		})
	}
}
