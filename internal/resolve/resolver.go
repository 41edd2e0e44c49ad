// Package resolve merges per-channel metadata, the global channel-name
// index, and ID-shape heuristics into the final display name and guild
// mapping for every channel. Whether a channel is a DM or a guild channel
// is decided solely by presence of a resolved guild ID, never by file
// path.
package resolve

import (
	"regexp"

	"exportlens/internal/normalize"
)

var idShapePattern = regexp.MustCompile(`^[c~]?\d{15,}$`)

// LooksLikeID reports whether s is a raw platform identifier rather than
// a display name: an optionally 'c'/'~'-prefixed run of 15+ digits, or
// any purely numeric string longer than 16 characters.
func LooksLikeID(s string) bool {
	if idShapePattern.MatchString(s) {
		return true
	}
	if len(s) <= 16 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// StripIDPrefix removes a non-digit prefix from an ID-shaped string, used
// as the secondary lookup key into the global index.
func StripIDPrefix(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return s[i:]
		}
	}
	return s
}

// Resolver holds the identity sources accumulated during a parse.
type Resolver struct {
	byPath    map[string]*normalize.ChannelMeta
	byID      map[string]*normalize.ChannelMeta
	overrides map[string]string
}

// New returns an empty Resolver.
func New() *Resolver {
	return &Resolver{
		byPath:    make(map[string]*normalize.ChannelMeta),
		byID:      make(map[string]*normalize.ChannelMeta),
		overrides: make(map[string]string),
	}
}

// AddMeta registers a channel's metadata under its channel path (and its
// channel ID when known).
func (r *Resolver) AddMeta(channelPath string, meta *normalize.ChannelMeta) {
	r.byPath[channelPath] = meta
	if meta.ChannelID != "" {
		r.byID[meta.ChannelID] = meta
	}
}

// MetaForPath returns the metadata registered for a channel path, or nil.
func (r *Resolver) MetaForPath(channelPath string) *normalize.ChannelMeta {
	return r.byPath[channelPath]
}

// SetOverride records a channel-id→name override from the global index.
func (r *Resolver) SetOverride(channelID, name string) {
	if channelID == "" || name == "" {
		return
	}
	r.overrides[channelID] = name
}

// Override looks up an index override by channel ID, trying the raw ID
// first and then the ID with any non-digit prefix stripped.
func (r *Resolver) Override(channelID string) (string, bool) {
	if name, ok := r.overrides[channelID]; ok {
		return name, true
	}
	if name, ok := r.overrides[StripIDPrefix(channelID)]; ok {
		return name, true
	}
	return "", false
}

// Identity is the resolved display mapping for one channel.
type Identity struct {
	ChannelID string
	// ChannelName is nil for DM channels whose only known name is
	// ID-shaped; downstream consumers show a generic DM label instead
	// of surfacing a raw identifier.
	ChannelName *string
	GuildID     string
	GuildName   string
	AvatarURL   string
}

// Resolve combines metadata, index overrides, and ID-shape heuristics
// into a channel's final identity. channelPath locates the metadata;
// fallbackID is the ID inferred from the channel's directory name, used
// when metadata declares none.
func (r *Resolver) Resolve(channelPath, fallbackID string) Identity {
	id := Identity{ChannelID: fallbackID}

	name := ""
	if meta := r.byPath[channelPath]; meta != nil {
		if meta.ChannelID != "" {
			id.ChannelID = meta.ChannelID
		}
		id.GuildID = meta.GuildID
		id.GuildName = meta.GuildName
		id.AvatarURL = meta.AvatarURL
		name = meta.ChannelName
	}

	if override, ok := r.Override(id.ChannelID); ok {
		name = override
	}

	if id.GuildID == "" {
		// DM channel: never surface an ID-shaped string as a name.
		if name != "" && !LooksLikeID(name) {
			id.ChannelName = &name
		}
		return id
	}

	// Guild channel with no declared name: the bare channel ID is the
	// name of last resort.
	if name == "" {
		name = id.ChannelID
	}
	id.ChannelName = &name
	return id
}
