package model

// EvidenceItem is one piece of retrieved evidence for a claim
type EvidenceItem struct {
	Source    string         `json:"source"`              // URL or index document id
	Title     string         `json:"title,omitempty"`     // Document or page title
	Snippet   string         `json:"snippet"`             // Evidence text shown to the judge
	Stance    Stance         `json:"stance"`              // Relation to the claim
	Strength  float64        `json:"strength"`            // Weight in [0,1] used by aggregation
	Relevance float64        `json:"relevance,omitempty"` // Retrieval score before judgement
	Origin    EvidenceOrigin `json:"origin"`              // index, web, oracle
	Authority AuthorityTier  `json:"authority,omitempty"` // Source authority classification
	Reason    string         `json:"reason,omitempty"`    // Judge explanation
}

// Stance classifies an evidence item relative to a claim
type Stance string

const (
	StanceSupports      Stance = "SUPPORTS"
	StanceRefutes       Stance = "REFUTES"
	StanceNotEnoughInfo Stance = "NOT_ENOUGH_INFO"
)

// stanceRules run only when the text is not an exact stance label.
// Negated and qualified phrases come first so "unsupported", "disagrees"
// or "does not refute" never reach the bare "support", "agree" or
// "refute" rules below them.
var stanceRules = []normalizationRule[Stance]{
	{"not enough", StanceNotEnoughInfo},
	{"insufficient", StanceNotEnoughInfo},
	{"neutral", StanceNotEnoughInfo},
	{"unrelated", StanceNotEnoughInfo},
	{"irrelevant", StanceNotEnoughInfo},
	{"does not refute", StanceNotEnoughInfo},
	{"doesn't refute", StanceNotEnoughInfo},
	{"not refuted", StanceNotEnoughInfo},
	{"does not contradict", StanceNotEnoughInfo},
	{"not contradicted", StanceNotEnoughInfo},
	{"unconfirmed", StanceNotEnoughInfo},
	{"not confirmed", StanceNotEnoughInfo},
	{"unsupported", StanceNotEnoughInfo},
	{"not supported", StanceNotEnoughInfo},
	{"no support", StanceNotEnoughInfo},
	{"does not support", StanceRefutes},
	{"doesn't support", StanceRefutes},
	{"disagree", StanceRefutes},
	{"refute", StanceRefutes},
	{"contradict", StanceRefutes},
	{"disprove", StanceRefutes},
	{"support", StanceSupports},
	{"confirm", StanceSupports},
	{"agree", StanceSupports},
}

// stanceLabels maps the normalized enum spellings to their stance
var stanceLabels = map[string]Stance{
	"supports":        StanceSupports,
	"refutes":         StanceRefutes,
	"not enough info": StanceNotEnoughInfo,
	"nei":             StanceNotEnoughInfo,
}

// ParseStance normalizes free text into a Stance; unknown text is NOT_ENOUGH_INFO
func ParseStance(text string) Stance {
	normalized := normalizePhrase(text)
	if stance, ok := stanceLabels[normalized]; ok {
		return stance
	}
	return matchRules(normalized, stanceRules, StanceNotEnoughInfo)
}

// EvidenceOrigin records which retriever produced an item
type EvidenceOrigin string

const (
	OriginIndex  EvidenceOrigin = "index"
	OriginWeb    EvidenceOrigin = "web"
	OriginOracle EvidenceOrigin = "oracle"
)

// AuthorityTier represents the classification of source authority
type AuthorityTier int

const (
	TierUnknown   AuthorityTier = 0 // Not yet classified
	TierPrimary   AuthorityTier = 1 // Laws, statutes, academic papers, official documents
	TierSecondary AuthorityTier = 2 // Encyclopedias, major publishers, reputable media
	TierTertiary  AuthorityTier = 3 // Blogs, personal websites, tourism sites
)

func (t AuthorityTier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// Weight is the strength multiplier applied to evidence from this tier
func (t AuthorityTier) Weight() float64 {
	switch t {
	case TierPrimary:
		return 1.0
	case TierSecondary:
		return 0.8
	case TierTertiary:
		return 0.5
	default:
		return 0.6
	}
}
