package stats

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// emojiPattern matches custom-emoji shorthand tokens like :wave: or
// :~custom_1:. Emoji keys share the word frequency map; their delimiting
// colons are the shape tag that lets them be filtered apart afterward.
var emojiPattern = regexp.MustCompile(`(?i):[\w~]+:`)

// Tokenize lowercases contents, collapses all whitespace — including
// zero-width and other Unicode format characters — and returns the tokens
// longer than one rune.
func Tokenize(contents string) []string {
	lower := strings.ToLower(contents)
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.Is(unicode.Cf, r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// ScanEmojis returns every custom-emoji shorthand token in contents,
// lowercased.
func ScanEmojis(contents string) []string {
	return emojiPattern.FindAllString(strings.ToLower(contents), -1)
}

// IsEmojiKey reports whether a frequency-map key is emoji-shaped rather
// than word-shaped.
func IsEmojiKey(key string) bool {
	return len(key) > 2 && key[0] == ':' && key[len(key)-1] == ':' &&
		emojiPattern.MatchString(key)
}
