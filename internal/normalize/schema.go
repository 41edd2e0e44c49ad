// Package normalize maps raw decoded export JSON — whose field names have
// drifted across export format revisions — onto one canonical schema. Each
// canonical field has an ordered list of candidate key aliases, consulted
// in priority order; new export revisions are handled by extending the
// tables, not by adding branches.
package normalize

import "time"

// DefaultTimestampOffset is the correction applied to every parsed
// timestamp. The export's vendor timestamps were observed to be recorded
// 5 hours ahead of true local time; the offset is configurable because
// that calibration came from one observed export and may not hold for
// every revision or locale.
const DefaultTimestampOffset = -5 * time.Hour

// Message is a single message in the canonical schema. Contents is always
// a string, never absent. Timestamp already carries the correction offset
// and may still be invalid; the aggregation engine re-validates it.
// Channel and guild fields are filled in during resolution, not from the
// message's own JSON object.
type Message struct {
	ID          string       `json:"id,omitempty"`
	Timestamp   *time.Time   `json:"timestamp"`
	Contents    string       `json:"contents"`
	Attachments []Attachment `json:"attachments"`
	ChannelID   string       `json:"channel_id,omitempty"`
	GuildID     string       `json:"guild_id,omitempty"`
	ChannelName *string      `json:"channel_name"`
	GuildName   string       `json:"guild_name,omitempty"`
	AvatarURL   string       `json:"avatar_url,omitempty"`
}

// Attachment is a normalized file attachment reference.
type Attachment struct {
	URL  string `json:"url,omitempty"`
	Name string `json:"name,omitempty"`
}

// Recipient is a direct-message participant as declared in channel
// metadata.
type Recipient struct {
	ID          string `json:"id,omitempty"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Nickname    string `json:"nickname,omitempty"`
}

// ChannelMeta is one channel's metadata in the canonical schema.
// ChannelName is never empty; when nothing names the channel it holds the
// literal "Unknown". Callers must still apply the looks-like-an-ID check
// before trusting it as a user-facing name.
type ChannelMeta struct {
	GuildID     string      `json:"guild_id,omitempty"`
	ChannelID   string      `json:"channel_id,omitempty"`
	ChannelName string      `json:"channel_name"`
	GuildName   string      `json:"guild_name,omitempty"`
	UserIDs     interface{} `json:"user_ids,omitempty"`
	AvatarURL   string      `json:"avatar_url,omitempty"`
	Recipients  []Recipient `json:"recipients,omitempty"`
}

// UnknownChannelName is the ChannelMeta name of last resort.
const UnknownChannelName = "Unknown"

// Kind tags the structural classification of a decoded JSON value.
type Kind int

const (
	KindUnknown Kind = iota
	KindMessageArray
	KindChannelMeta
)

// ClassifyValue reports whether a decoded JSON value is a message array,
// channel metadata, or neither. Detection is structural field-presence
// only.
func ClassifyValue(v interface{}) Kind {
	if IsMessageArray(v) {
		return KindMessageArray
	}
	if obj, ok := v.(map[string]interface{}); ok && IsChannelMeta(obj) {
		return KindChannelMeta
	}
	return KindUnknown
}
