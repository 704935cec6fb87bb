package extract

import (
	"strings"
	"unicode"
)

var stopwords = map[string]bool{
	"the": true, "an": true, "and": true, "or": true, "of": true,
	"to": true, "in": true, "on": true, "at": true, "by": true, "for": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "it": true,
	"that": true, "this": true, "with": true, "as": true, "from": true, "its": true,
}

// Terms returns the lowercased content words of text in order. Tokens
// shorter than two runes and common function words are dropped.
func Terms(text string) []string {
	var terms []string
	for _, token := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len([]rune(token)) < 2 || stopwords[token] {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}
