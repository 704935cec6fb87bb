package retrieve

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/ppiankov/veritas/internal/model"
)

// AuthorityClassifier places evidence sources into authority tiers; the tier
// weight scales how much a retrieved item counts toward a verdict
type AuthorityClassifier struct {
	domainMap    map[string]model.AuthorityTier
	primary      []string
	secondary    []string
	pathPatterns []compiledPattern
}

type compiledPattern struct {
	pattern *regexp.Regexp
	tier    model.AuthorityTier
}

// NewAuthorityClassifier creates a classifier; nil config uses the defaults.
// Invalid path patterns are skipped.
func NewAuthorityClassifier(config *model.AuthorityConfig) *AuthorityClassifier {
	if config == nil {
		config = &model.DefaultConfig().Authority
	}

	classifier := &AuthorityClassifier{
		domainMap: make(map[string]model.AuthorityTier, len(config.DomainMap)),
		primary:   normalizeDomains(config.PrimaryDomains),
		secondary: normalizeDomains(config.SecondaryDomains),
	}

	for domain, tier := range config.DomainMap {
		classifier.domainMap[strings.ToLower(domain)] = ParseTier(tier)
	}

	for _, pp := range config.PathPatterns {
		if re, err := regexp.Compile(pp.Pattern); err == nil {
			classifier.pathPatterns = append(classifier.pathPatterns, compiledPattern{
				pattern: re,
				tier:    ParseTier(pp.Tier),
			})
		}
	}

	return classifier
}

// Classify classifies a URL into an authority tier
func (a *AuthorityClassifier) Classify(rawURL string) model.AuthorityTier {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return model.TierTertiary
	}

	host := strings.ToLower(parsed.Hostname())

	// 1. Explicit mappings win
	if tier, ok := a.domainMap[host]; ok {
		return tier
	}

	// 2. Configured domain lists, subdomains included (foo.gov.uk matches gov.uk)
	if matchesAny(host, a.primary) {
		return model.TierPrimary
	}
	if matchesAny(host, a.secondary) {
		return model.TierSecondary
	}

	// 3. Path patterns
	for _, cp := range a.pathPatterns {
		if cp.pattern.MatchString(parsed.Path) {
			return cp.tier
		}
	}

	// 4. Institutional TLDs
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") || strings.HasSuffix(host, ".ac.uk") {
		return model.TierPrimary
	}

	return model.TierTertiary
}

// ParseTier converts a tier name or number to AuthorityTier; unknown names are tertiary
func ParseTier(tier string) model.AuthorityTier {
	switch strings.ToLower(strings.TrimSpace(tier)) {
	case "primary", "1":
		return model.TierPrimary
	case "secondary", "2":
		return model.TierSecondary
	default:
		return model.TierTertiary
	}
}

func normalizeDomains(domains []string) []string {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(d), "."))
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

func matchesAny(host string, domains []string) bool {
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
