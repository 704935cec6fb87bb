package sentiment

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/veritas/internal/llm"
	"github.com/ppiankov/veritas/internal/model"
)

// OracleScorer asks an LLM for a sentiment judgement
type OracleScorer struct {
	provider llm.Provider
}

// NewOracleScorer creates a scorer backed by provider
func NewOracleScorer(provider llm.Provider) *OracleScorer {
	return &OracleScorer{provider: provider}
}

// Name returns the scorer name
func (s *OracleScorer) Name() string {
	return "oracle:" + s.provider.Name()
}

type oracleAnswer struct {
	Sentiment  string         `json:"sentiment"`
	Confidence *llm.FlexFloat `json:"confidence"`
	Emotion    string         `json:"emotion"`
	Reason     string         `json:"reason"`
}

// Score sends one prompt and parses the JSON answer. Any transport,
// timeout or parse failure is returned as an error.
func (s *OracleScorer) Score(ctx context.Context, text string, quality model.TextQualityMetrics, domain string) (Raw, error) {
	reply, err := s.provider.Generate(ctx, BuildPrompt(text, quality, domain))
	if err != nil {
		return Raw{}, fmt.Errorf("oracle call: %w", err)
	}

	var answer oracleAnswer
	if err := llm.DecodeJSON(reply, &answer); err != nil {
		return Raw{}, fmt.Errorf("parse oracle answer: %w", err)
	}

	raw := Raw{
		Sentiment:  answer.Sentiment,
		Confidence: 0.5,
		Emotion:    answer.Emotion,
		Reason:     answer.Reason,
	}
	if answer.Confidence != nil {
		raw.Confidence = float64(*answer.Confidence)
	}
	return raw, nil
}

// BuildPrompt renders the sentiment prompt with the quality context
func BuildPrompt(text string, quality model.TextQualityMetrics, domain string) string {
	var sb strings.Builder

	sb.WriteString("Analyze the sentiment of this text and provide a simple, clear response:\n\n")
	fmt.Fprintf(&sb, "TEXT: %s\n", text)
	if domain != "" {
		fmt.Fprintf(&sb, "\nDomain Context: %s\n", domain)
	}

	sb.WriteString("\nText Quality Assessment:\n")
	fmt.Fprintf(&sb, "- Readability: %.2f\n", quality.Readability)
	fmt.Fprintf(&sb, "- Completeness: %.2f\n", quality.Completeness)
	fmt.Fprintf(&sb, "- Coherence: %.2f\n", quality.Coherence)
	fmt.Fprintf(&sb, "- Noise Level: %.2f\n", quality.NoiseLevel)
	fmt.Fprintf(&sb, "- Overall Quality Score: %.2f\n", quality.Score())

	sb.WriteString(`
Return ONLY these 4 fields in JSON format:

{
    "sentiment": "Positive|Negative|Neutral|Mixed",
    "confidence": <float between 0.0 and 1.0>,
    "emotion": "<primary_emotion_name>",
    "reason": "<brief explanation, 1-2 sentences>"
}
`)
	return sb.String()
}
