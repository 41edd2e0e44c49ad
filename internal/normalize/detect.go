package normalize

// IsMessageArray reports whether a decoded JSON value is a message
// transcript: a non-empty array whose first element is an object carrying
// at least one recognized contents or timestamp key. Alias matching is
// case-sensitive.
func IsMessageArray(v interface{}) bool {
	arr, ok := v.([]interface{})
	if !ok || len(arr) == 0 {
		return false
	}
	first, ok := arr[0].(map[string]interface{})
	if !ok {
		return false
	}
	return hasAny(first, contentsAliases) || hasAny(first, timestampAliases)
}

// IsChannelMeta reports whether a decoded JSON object is channel
// metadata: it carries an explicit channel-ID key, or pairs a guild key
// with a channel-name key, or pairs a user-IDs key with any channel-ID
// key (bare "id" included).
func IsChannelMeta(obj map[string]interface{}) bool {
	if hasAny(obj, channelIDAliases) {
		return true
	}
	hasGuild := hasAny(obj, guildIDAliases) || hasAny(obj, guildObjectAliases)
	if hasGuild && hasAny(obj, channelNameAliases) {
		return true
	}
	if hasAny(obj, userIDsAliases) && (hasAny(obj, channelIDAliases) || hasAny(obj, channelIDBareAliases)) {
		return true
	}
	return false
}
