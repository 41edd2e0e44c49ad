package normalize

// Alias tables. Order matters: earlier keys win. These are data, not
// logic — a new export revision that renames a field is handled by
// appending its key here.

// Message fields.
var (
	messageIDAliases  = []string{"ID", "Id", "id", "MessageID", "message_id", "messageId"}
	contentsAliases   = []string{"Contents", "contents", "Content", "content", "message", "text", "body"}
	timestampAliases  = []string{"Timestamp", "timestamp", "ts", "Date", "date", "sent_at", "created_at"}
	attachmentAliases = []string{"Attachments", "attachments", "Attachment", "attachment", "files"}
)

// Channel metadata fields. channelIDAliases deliberately excludes the
// bare "id"/"ID" keys a message object also carries; those only identify
// a channel in combination with other channel-shaped keys.
var (
	channelIDAliases     = []string{"channel_id", "channelId", "ChannelID", "channel"}
	channelIDBareAliases = []string{"id", "ID", "Id"}
	channelNameAliases   = []string{"name", "Name", "channel_name", "channelName", "title"}
	guildIDAliases       = []string{"guild_id", "guildId", "GuildID", "server_id", "serverId"}
	guildNameAliases     = []string{"guild_name", "guildName", "GuildName", "server_name", "serverName"}
	guildObjectAliases   = []string{"guild", "Guild", "server"}
	userIDsAliases       = []string{"user_ids", "userIds", "userids", "UserIDs", "recipient_ids"}
	recipientsAliases    = []string{"recipients", "Recipients", "users"}
	avatarAliases        = []string{"avatar", "Avatar", "avatar_hash", "avatarHash", "icon", "icon_hash"}
)

// firstValue returns the value of the first alias present in obj.
func firstValue(obj map[string]interface{}, aliases []string) (interface{}, bool) {
	for _, key := range aliases {
		if v, ok := obj[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// firstString returns the first alias present in obj whose value is a
// non-empty string.
func firstString(obj map[string]interface{}, aliases []string) (string, bool) {
	for _, key := range aliases {
		if v, ok := obj[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// hasAny reports whether any alias key is present in obj, regardless of
// its value.
func hasAny(obj map[string]interface{}, aliases []string) bool {
	for _, key := range aliases {
		if _, ok := obj[key]; ok {
			return true
		}
	}
	return false
}
