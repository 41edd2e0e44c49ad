package stats

import "strings"

// stopwordList holds common English function words excluded from word
// frequency counts.
var stopwordList = []string{
	"the", "be", "to", "of", "and", "a", "in", "that", "have", "i",
	"it", "for", "not", "on", "with", "he", "as", "you", "do", "at",
	"this", "but", "his", "by", "from", "they", "we", "say", "her", "she",
	"or", "an", "will", "my", "one", "all", "would", "there", "their", "what",
	"so", "up", "out", "if", "about", "who", "get", "which", "go", "me",
	"when", "make", "can", "like", "time", "no", "just", "him", "know", "take",
	"people", "into", "year", "your", "good", "some", "could", "them", "see", "other",
	"than", "then", "now", "look", "only", "come", "its", "over", "think", "also",
	"back", "after", "use", "two", "how", "our", "work", "first", "well", "way",
	"even", "new", "want", "because", "any", "these", "give", "day", "most", "us",
	"is", "was", "are", "were", "been", "being", "am", "has", "had", "did",
	"does", "doing", "having", "im", "ive", "dont", "cant", "wont", "didnt", "isnt",
	"thats", "youre", "id", "ill", "hes", "shes", "theyre", "weve", "youve", "wasnt",
	"yeah", "yes", "ok", "okay", "lol", "oh", "really", "very", "too", "much",
}

var stopwords = buildStopwords()

func buildStopwords() map[string]struct{} {
	set := make(map[string]struct{}, len(stopwordList))
	for _, w := range stopwordList {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// IsStopword reports whether the (already lowercased) token is excluded
// from word frequency counts.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
