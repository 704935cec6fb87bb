package model

// Sentiment is the polarity label of a text
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentMixed    Sentiment = "Mixed"
)

var sentiments = []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral, SentimentMixed}

// ParseSentiment matches case-insensitively against the known labels; anything else is Neutral
func ParseSentiment(text string) Sentiment {
	normalized := normalizePhrase(text)
	for _, s := range sentiments {
		if normalized == normalizePhrase(string(s)) {
			return s
		}
	}
	return SentimentNeutral
}

// SentimentResult is the calibrated output of sentiment analysis
type SentimentResult struct {
	Sentiment  Sentiment `json:"sentiment"`
	Confidence float64   `json:"confidence"` // Quality-adjusted, within [0, quality score]
	Emotion    string    `json:"emotion"`
	Reason     string    `json:"reason"`
	Fallback   bool      `json:"fallback,omitempty"` // Produced by the keyword scorer
}

// TextQualityMetrics describes structural quality of an input text
type TextQualityMetrics struct {
	Readability       float64 `json:"readability"`
	Completeness      float64 `json:"completeness"`
	Coherence         float64 `json:"coherence"`
	NoiseLevel        float64 `json:"noise_level"`
	WordCount         int     `json:"word_count"`
	CharCount         int     `json:"char_count"`
	HasPunctuation    bool    `json:"has_punctuation"`
	HasCapitalization bool    `json:"has_capitalization"`
}

// Score returns the composite quality score in [0,1]
func (m TextQualityMetrics) Score() float64 {
	return Clamp01(0.3*m.Readability + 0.3*m.Completeness + 0.2*m.Coherence + 0.2*(1-m.NoiseLevel))
}
