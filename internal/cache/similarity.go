package cache

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Similarity is the case-insensitive character-level SequenceMatcher
// ratio of a against b, in [0,1]. Two empty strings have ratio 1.
func Similarity(a, b string) float64 {
	return newMatcher(a, b).Ratio()
}

func newMatcher(a, b string) *difflib.SequenceMatcher {
	return difflib.NewMatcher(runes(a), runes(b))
}

func newMatcherFromRunes(a []string, b string) *difflib.SequenceMatcher {
	return difflib.NewMatcher(a, runes(b))
}

// runes splits lowercased text into one element per character
func runes(s string) []string {
	lower := strings.ToLower(s)
	out := make([]string, 0, len(lower))
	for _, r := range lower {
		out = append(out, string(r))
	}
	return out
}
