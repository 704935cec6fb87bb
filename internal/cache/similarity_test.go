package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "Vaccines cause autism", "Vaccines cause autism", 1.0},
		{"case insensitive", "VACCINES CAUSE AUTISM", "vaccines cause autism", 1.0},
		{"both empty", "", "", 1.0},
		{"one empty", "abc", "", 0.0},
		{"one substitution", "abc", "abd", 2.0 * 2 / 6},
		{"disjoint", "abc", "xyz", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	a := "The Eiffel Tower is in Paris"
	b := "the eiffel tower is in paris."
	assert.InDelta(t, Similarity(a, b), Similarity(b, a), 1e-9)
	assert.InDelta(t, 56.0/57.0, Similarity(a, b), 1e-9)
}

func TestSimilarity_MultibyteCharacters(t *testing.T) {
	// one element per rune, not per byte
	assert.InDelta(t, 2.0*3/8, Similarity("café", "cafe"), 1e-9)
}
