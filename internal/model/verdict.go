package model

import "strings"

// Verdict is the categorical truth assessment of a claim
type Verdict string

const (
	VerdictTrue        Verdict = "TRUE"
	VerdictMostlyTrue  Verdict = "MOSTLY_TRUE"
	VerdictMostlyFalse Verdict = "MOSTLY_FALSE"
	VerdictFalse       Verdict = "FALSE"
	VerdictMixed       Verdict = "MIXED"
	VerdictUnverified  Verdict = "UNVERIFIED"
	VerdictError       Verdict = "ERROR"
)

// Verdicts lists every verdict in display order
var Verdicts = []Verdict{
	VerdictTrue,
	VerdictMostlyTrue,
	VerdictMixed,
	VerdictUnverified,
	VerdictMostlyFalse,
	VerdictFalse,
	VerdictError,
}

// Label returns the human-readable form ("MOSTLY TRUE")
func (v Verdict) Label() string {
	return strings.ReplaceAll(string(v), "_", " ")
}

// IsValid reports whether v is one of the enumerated verdicts
func (v Verdict) IsValid() bool {
	for _, known := range Verdicts {
		if v == known {
			return true
		}
	}
	return false
}

// normalizationRule maps a phrase found in free text to a verdict.
// Rules are evaluated top to bottom; the first match wins.
type normalizationRule[T any] struct {
	phrase string
	value  T
}

// verdictRules run only when the text is not an exact verdict label.
// They are ordered so that compound and negated phrases win over their
// parts: "mostly false" before "false", "untrue" and "not true" before
// "true", "partially true" before "true", "incorrect" before "correct".
var verdictRules = []normalizationRule[Verdict]{
	{"error", VerdictError},
	{"mostly false", VerdictMostlyFalse},
	{"mostly untrue", VerdictMostlyFalse},
	{"largely false", VerdictMostlyFalse},
	{"largely untrue", VerdictMostlyFalse},
	{"mostly true", VerdictMostlyTrue},
	{"largely true", VerdictMostlyTrue},
	{"unverified", VerdictUnverified},
	{"unverifiable", VerdictUnverified},
	{"not verified", VerdictUnverified},
	{"not enough", VerdictUnverified},
	{"insufficient", VerdictUnverified},
	{"unknown", VerdictUnverified},
	{"unsupported", VerdictUnverified},
	{"not supported", VerdictUnverified},
	{"mixed", VerdictMixed},
	{"conflicting", VerdictMixed},
	{"half true", VerdictMixed},
	{"partly", VerdictMixed},
	{"partially", VerdictMixed},
	{"untrue", VerdictFalse},
	{"not true", VerdictFalse},
	{"not correct", VerdictFalse},
	{"false", VerdictFalse},
	{"refuted", VerdictFalse},
	{"incorrect", VerdictFalse},
	{"true", VerdictTrue},
	{"supported", VerdictTrue},
	{"correct", VerdictTrue},
}

// ParseVerdict normalizes free text (typically oracle output) into a Verdict.
// Unrecognized text maps to UNVERIFIED.
func ParseVerdict(text string) Verdict {
	normalized := normalizePhrase(text)
	if normalized == "" {
		return VerdictUnverified
	}
	if v := Verdict(strings.ToUpper(strings.ReplaceAll(normalized, " ", "_"))); v.IsValid() {
		return v
	}
	return matchRules(normalized, verdictRules, VerdictUnverified)
}

// matchRules returns the value of the first rule whose phrase occurs in
// normalized, or fallback
func matchRules[T any](normalized string, rules []normalizationRule[T], fallback T) T {
	for _, rule := range rules {
		if strings.Contains(normalized, rule.phrase) {
			return rule.value
		}
	}
	return fallback
}

// verdictConfidence is the nominal confidence implied by a verdict label alone
var verdictConfidence = map[Verdict]float64{
	VerdictError:       0.0,
	VerdictFalse:       0.1,
	VerdictMostlyFalse: 0.3,
	VerdictMixed:       0.5,
	VerdictUnverified:  0.5,
	VerdictMostlyTrue:  0.75,
	VerdictTrue:        0.9,
}

// ConfidenceForVerdict returns the nominal confidence for a verdict string.
// Empty input yields 0.5.
func ConfidenceForVerdict(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0.5
	}
	return verdictConfidence[ParseVerdict(text)]
}

func normalizePhrase(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	lower = strings.NewReplacer("_", " ", "-", " ").Replace(lower)
	return strings.Join(strings.Fields(lower), " ")
}
