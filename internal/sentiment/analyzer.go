package sentiment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ppiankov/veritas/internal/logging"
	"github.com/ppiankov/veritas/internal/model"
	"github.com/ppiankov/veritas/internal/quality"
)

// fallbackScale discounts keyword matching relative to oracle judgement
const fallbackScale = 0.3

// Analyzer runs the primary scorer and degrades to the fallback on any fault
type Analyzer struct {
	primary  Scorer
	fallback Scorer
	timeout  time.Duration
	logger   logging.Logger
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithTimeout bounds the primary scorer call
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) { a.timeout = d }
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// NewAnalyzer creates an analyzer. A nil primary means keyword scoring only.
func NewAnalyzer(primary Scorer, opts ...Option) *Analyzer {
	a := &Analyzer{
		primary:  primary,
		fallback: KeywordScorer{},
		timeout:  30 * time.Second,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze never fails. Confidence is capped by the text quality score.
func (a *Analyzer) Analyze(ctx context.Context, text, domain string) (result model.SentimentResult) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("sentiment", "analysis panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
			result = Unavailable()
		}
	}()

	metrics := quality.Assess(text)

	if a.primary != nil {
		raw, err := a.runPrimary(ctx, text, metrics, domain)
		if err == nil {
			res := calibrate(raw, metrics, 1)
			a.logger.Debug("sentiment", "oracle sentiment", map[string]interface{}{
				"sentiment":  res.Sentiment,
				"confidence": res.Confidence,
				"emotion":    res.Emotion,
			})
			return res
		}
		a.logger.Warn("sentiment", "primary scorer failed, using keyword fallback", map[string]interface{}{
			"scorer": a.primary.Name(),
			"error":  err,
		})
	}

	raw, err := a.fallback.Score(ctx, text, metrics, domain)
	if err != nil {
		a.logger.Error("sentiment", "fallback scorer failed", map[string]interface{}{"error": err})
		return Unavailable()
	}
	res := calibrate(raw, metrics, fallbackScale)
	res.Fallback = true
	return res
}

// runPrimary isolates the primary stage: a panic or deadline is an error like any other
func (a *Analyzer) runPrimary(ctx context.Context, text string, metrics model.TextQualityMetrics, domain string) (raw Raw, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scorer panic: %v", r)
		}
	}()

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	return a.primary.Score(ctx, text, metrics, domain)
}

// Unavailable is the result reported when no scorer could run
func Unavailable() model.SentimentResult {
	return model.SentimentResult{
		Sentiment:  model.SentimentNeutral,
		Confidence: 0,
		Emotion:    "Neutral",
		Reason:     UnavailableReason,
	}
}

func calibrate(raw Raw, metrics model.TextQualityMetrics, scale float64) model.SentimentResult {
	res := model.SentimentResult{
		Sentiment:  model.ParseSentiment(raw.Sentiment),
		Confidence: model.Clamp01(raw.Confidence) * metrics.Score() * scale,
		Emotion:    normalizeEmotion(raw.Emotion),
		Reason:     strings.TrimSpace(raw.Reason),
	}
	if res.Reason == "" {
		res.Reason = DefaultReason
	}
	return res
}

func normalizeEmotion(emotion string) string {
	emotion = strings.TrimSpace(emotion)
	if emotion == "" {
		return "Neutral"
	}
	return cases.Title(language.English).String(emotion)
}
