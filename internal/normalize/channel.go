package normalize

import (
	"fmt"
	"strings"
)

const avatarCDNFormat = "https://cdn.discordapp.com/avatars/%s/%s.png"

// NormalizeChannelMeta maps a raw decoded channel-metadata object onto the
// canonical ChannelMeta shape.
//
// ChannelName resolves through an ordered fallback chain: explicit
// channel-name aliases, then a DM display name derived from the first
// recipient's display fields, then the literal "Unknown".
func NormalizeChannelMeta(raw map[string]interface{}) *ChannelMeta {
	meta := &ChannelMeta{}

	if id, ok := firstValue(raw, channelIDAliases); ok {
		meta.ChannelID = scalarString(id)
	}
	if meta.ChannelID == "" {
		if id, ok := firstValue(raw, channelIDBareAliases); ok {
			meta.ChannelID = scalarString(id)
		}
	}

	if id, ok := firstValue(raw, guildIDAliases); ok {
		meta.GuildID = scalarString(id)
	}
	if name, ok := firstString(raw, guildNameAliases); ok {
		meta.GuildName = name
	}
	// Nested guild object, e.g. {"guild": {"id": "...", "name": "..."}}.
	if guildRaw, ok := firstValue(raw, guildObjectAliases); ok {
		if guild, ok := guildRaw.(map[string]interface{}); ok {
			if meta.GuildID == "" {
				if id, ok := firstValue(guild, channelIDBareAliases); ok {
					meta.GuildID = scalarString(id)
				}
			}
			if meta.GuildName == "" {
				if name, ok := firstString(guild, channelNameAliases); ok {
					meta.GuildName = name
				}
			}
		}
	}

	if v, ok := firstValue(raw, userIDsAliases); ok {
		meta.UserIDs = v
	}
	meta.Recipients = normalizeRecipients(raw)

	meta.ChannelName = resolveChannelName(raw, meta.Recipients)
	meta.AvatarURL = resolveAvatarURL(raw, meta.ChannelID)

	return meta
}

func resolveChannelName(raw map[string]interface{}, recipients []Recipient) string {
	if name, ok := firstString(raw, channelNameAliases); ok {
		return name
	}
	for _, r := range recipients {
		if name := r.displayName(); name != "" {
			return name
		}
		break // only the first recipient is consulted
	}
	return UnknownChannelName
}

// resolveAvatarURL returns an absolute avatar URL. A bare avatar hash is
// expanded to the canonical CDN URL when a channel ID is known; a value
// that is already a URL passes through unchanged.
func resolveAvatarURL(raw map[string]interface{}, channelID string) string {
	avatar, ok := firstString(raw, avatarAliases)
	if !ok {
		return ""
	}
	if strings.HasPrefix(avatar, "http://") || strings.HasPrefix(avatar, "https://") {
		return avatar
	}
	if channelID == "" {
		return ""
	}
	return fmt.Sprintf(avatarCDNFormat, channelID, avatar)
}

func normalizeRecipients(raw map[string]interface{}) []Recipient {
	v, ok := firstValue(raw, recipientsAliases)
	if !ok {
		return nil
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	recipients := make([]Recipient, 0, len(arr))
	for _, item := range arr {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		r := Recipient{}
		if id, ok := firstValue(obj, channelIDBareAliases); ok {
			r.ID = scalarString(id)
		}
		if s, ok := firstString(obj, []string{"username", "name"}); ok {
			r.Username = s
		}
		if s, ok := firstString(obj, []string{"global_name", "globalName", "display_name", "displayName"}); ok {
			r.DisplayName = s
		}
		if s, ok := firstString(obj, []string{"nickname", "nick"}); ok {
			r.Nickname = s
		}
		recipients = append(recipients, r)
	}
	return recipients
}

// displayName picks the best user-facing name for a recipient.
func (r Recipient) displayName() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	if r.Nickname != "" {
		return r.Nickname
	}
	return r.Username
}
