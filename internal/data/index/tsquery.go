package index

import (
	"strings"
	"unicode"
)

// stopWords are dropped from lexical queries. Kept intentionally small;
// Postgres FTS stemming handles the rest.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "by": {}, "can": {}, "do": {}, "for": {}, "from": {},
	"how": {}, "i": {}, "in": {}, "is": {}, "it": {}, "me": {},
	"of": {}, "on": {}, "or": {}, "please": {}, "that": {}, "the": {},
	"this": {}, "to": {}, "us": {}, "we": {}, "what": {}, "which": {},
	"with": {}, "would": {}, "you": {},
}

// BuildOrQuery turns free text into a tsquery expression: lowercase,
// punctuation stripped, stop words removed, surviving tokens OR-joined.
// An all-stop-word input returns "" so callers degrade to a
// match-everything (vector-only) search instead of erroring.
func BuildOrQuery(text string) string {
	lowered := strings.ToLower(text)
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, lowered)

	var tokens []string
	seen := map[string]struct{}{}
	for _, tok := range strings.Fields(cleaned) {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}
	return strings.Join(tokens, " | ")
}
