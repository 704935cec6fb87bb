package sentiment

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/veritas/internal/model"
)

var (
	positiveWords = []string{"good", "great", "excellent", "amazing", "wonderful", "positive", "happy", "joy", "love", "best", "fantastic"}
	negativeWords = []string{"bad", "terrible", "awful", "horrible", "negative", "sad", "angry", "hate", "fear", "worst", "disgusting"}
)

// KeywordScorer is the deterministic fallback: it counts which fixed
// positive and negative terms occur as substrings of the lowercased text.
type KeywordScorer struct{}

// Name returns the scorer name
func (KeywordScorer) Name() string {
	return "keyword"
}

// Score never fails. Raw confidence is 1; the analyzer scales it down.
func (KeywordScorer) Score(_ context.Context, text string, _ model.TextQualityMetrics, _ string) (Raw, error) {
	positive, negative := CountKeywords(text)

	switch {
	case positive > negative:
		return Raw{
			Sentiment:  string(model.SentimentPositive),
			Confidence: 1,
			Emotion:    "Joy",
			Reason:     fmt.Sprintf("Positive keywords detected (%d positive words)", positive),
		}, nil
	case negative > positive:
		return Raw{
			Sentiment:  string(model.SentimentNegative),
			Confidence: 1,
			Emotion:    "Sadness",
			Reason:     fmt.Sprintf("Negative keywords detected (%d negative words)", negative),
		}, nil
	default:
		return Raw{
			Sentiment:  string(model.SentimentNeutral),
			Confidence: 1,
			Emotion:    "Neutral",
			Reason:     "No strong emotional indicators found",
		}, nil
	}
}

// CountKeywords returns how many distinct positive and negative terms appear
func CountKeywords(text string) (positive, negative int) {
	lower := strings.ToLower(text)
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			positive++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			negative++
		}
	}
	return positive, negative
}
