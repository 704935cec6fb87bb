package sentiment

import (
	"context"

	"github.com/ppiankov/veritas/internal/model"
)

// DefaultReason is used when a scorer gives no explanation
const DefaultReason = "Sentiment analysis completed"

// UnavailableReason is reported when both scoring stages fail
const UnavailableReason = "Sentiment analysis unavailable"

// Raw is an uncalibrated scorer verdict
type Raw struct {
	Sentiment  string
	Confidence float64
	Emotion    string
	Reason     string
}

// Scorer produces a raw sentiment judgement for text
type Scorer interface {
	Name() string
	Score(ctx context.Context, text string, quality model.TextQualityMetrics, domain string) (Raw, error)
}
