package retrieve

import (
	"testing"

	"github.com/ppiankov/veritas/internal/model"
)

func TestAuthorityClassifier_Classify(t *testing.T) {
	config := &model.AuthorityConfig{
		PrimaryDomains:   []string{"who.int", "nasa.gov", ".arxiv.org"},
		SecondaryDomains: []string{"wikipedia.org", "Reuters.com"},
		DomainMap: map[string]string{
			"blog.nasa.gov":     "tertiary",
			"factcheck.example": "2",
		},
		PathPatterns: []model.PathPattern{
			{Pattern: "^/statute/", Tier: "primary"},
			{Pattern: "([", Tier: "primary"}, // invalid, skipped
		},
	}
	classifier := NewAuthorityClassifier(config)

	tests := []struct {
		desc     string
		url      string
		expected model.AuthorityTier
	}{
		{"primary exact", "https://who.int/news", model.TierPrimary},
		{"primary subdomain", "https://www.nasa.gov/moon", model.TierPrimary},
		{"leading dot normalized", "https://arxiv.org/abs/1234", model.TierPrimary},
		{"secondary subdomain", "https://en.wikipedia.org/wiki/Moon", model.TierSecondary},
		{"case-insensitive", "https://WWW.REUTERS.COM/world", model.TierSecondary},
		{"explicit map overrides list", "https://blog.nasa.gov/post", model.TierTertiary},
		{"explicit numeric tier", "https://factcheck.example/x", model.TierSecondary},
		{"path pattern", "https://example.com/statute/42", model.TierPrimary},
		{"edu TLD", "https://physics.mit.edu/paper", model.TierPrimary},
		{"ac.uk", "https://www.ox.ac.uk/news", model.TierPrimary},
		{"port ignored", "https://who.int:8443/x", model.TierPrimary},
		{"lookalike not matched", "https://notwho.int/x", model.TierTertiary},
		{"unknown blog", "https://someblog.example/post", model.TierTertiary},
		{"relative URL", "/just/a/path", model.TierTertiary},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := classifier.Classify(tt.url); got != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, got)
			}
		})
	}
}

func TestAuthorityClassifier_Defaults(t *testing.T) {
	classifier := NewAuthorityClassifier(nil)

	if got := classifier.Classify("https://www.snopes.com/fact-check/x"); got != model.TierSecondary {
		t.Errorf("Expected secondary for snopes, got %v", got)
	}
	if got := classifier.Classify("https://www.gov.uk/guidance"); got != model.TierPrimary {
		t.Errorf("Expected primary for gov.uk, got %v", got)
	}
}

func TestParseTier(t *testing.T) {
	tests := map[string]model.AuthorityTier{
		"primary":   model.TierPrimary,
		"1":         model.TierPrimary,
		"Secondary": model.TierSecondary,
		"2":         model.TierSecondary,
		"tertiary":  model.TierTertiary,
		"bogus":     model.TierTertiary,
	}
	for input, want := range tests {
		if got := ParseTier(input); got != want {
			t.Errorf("ParseTier(%q) = %v, want %v", input, got, want)
		}
	}
}
