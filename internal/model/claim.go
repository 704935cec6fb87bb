package model

// Claim represents a verifiable assertion extracted from the input
type Claim struct {
	Text      string `json:"text"`                // The claim text itself
	Heuristic string `json:"heuristic,omitempty"` // Which extraction rule matched (e.g., "keyword:according to")
	Sentence  int    `json:"sentence,omitempty"`  // Sentence index in source (0-based)
}

// ClaimAssessment is the aggregated outcome for one claim
type ClaimAssessment struct {
	Claim      string         `json:"claim"`
	Evidence   []EvidenceItem `json:"evidence"`
	Verdict    Verdict        `json:"verdict"`
	Confidence float64        `json:"confidence"`        // Always within [0,1]
	RawScore   float64        `json:"raw_score"`         // Supporting weight minus refuting weight
	Score      float64        `json:"score"`             // Normalized signed score in [-1,1]
	Signals    []Signal       `json:"signals,omitempty"` // Transparent scoring breakdown
	Error      string         `json:"error,omitempty"`   // Set when Verdict is ERROR
}

// ConfidencePercentage returns the confidence on a 0-100 scale
func (a ClaimAssessment) ConfidencePercentage() float64 {
	return Clamp01(a.Confidence) * 100
}

// Clamp01 limits v to [0,1]; NaN maps to 0
func Clamp01(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
