// Package factcheck serves a single fact-check request end to end:
// sentiment, cache lookup, the verification pipeline on a miss, cache
// write-back and the interaction log.
package factcheck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/veritas/internal/cache"
	"github.com/ppiankov/veritas/internal/extract"
	"github.com/ppiankov/veritas/internal/logging"
	"github.com/ppiankov/veritas/internal/model"
	"github.com/ppiankov/veritas/internal/render"
	"github.com/ppiankov/veritas/internal/retrieve"
	"github.com/ppiankov/veritas/internal/score"
	"github.com/ppiankov/veritas/internal/sentiment"
	"github.com/ppiankov/veritas/internal/session"
)

// ErrEmptyInput is returned for blank requests
var ErrEmptyInput = errors.New("empty input")

// ErrNoStats is returned when no persistent store backs the service
var ErrNoStats = errors.New("statistics require a persistent store")

// Pipeline runs full verification on preprocessed text
type Pipeline interface {
	Run(ctx context.Context, text string) (*model.PipelineResult, error)
}

// SentimentAnalyzer scores the tone of a text and never fails
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text, domain string) model.SentimentResult
}

// PageFetcher downloads URL inputs
type PageFetcher interface {
	FetchWithRetry(ctx context.Context, rawURL string) (*retrieve.FetchResult, error)
}

// StatsSource reports verification history
type StatsSource interface {
	Stats(ctx context.Context) (model.Stats, error)
}

// Service holds everything a fact-check request needs
type Service struct {
	pipeline  Pipeline
	sentiment SentimentAnalyzer
	cache     *cache.ResultCache
	log       *session.Log
	fetcher   PageFetcher
	stats     StatsSource
	domain    string
	logger    logging.Logger
}

// Option configures a Service
type Option func(*Service)

// WithCache enables cache lookup and write-back
func WithCache(c *cache.ResultCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithLog records every request in the interaction log
func WithLog(l *session.Log) Option {
	return func(s *Service) { s.log = l }
}

// WithFetcher lets URL inputs be downloaded and verified as page text
func WithFetcher(f PageFetcher) Option {
	return func(s *Service) { s.fetcher = f }
}

// WithStats sets the statistics source
func WithStats(src StatsSource) Option {
	return func(s *Service) { s.stats = src }
}

// WithDomain passes a subject-area hint to sentiment analysis
func WithDomain(domain string) Option {
	return func(s *Service) { s.domain = domain }
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a fact-check service
func NewService(pipeline Pipeline, analyzer SentimentAnalyzer, opts ...Option) *Service {
	s := &Service{
		pipeline:  pipeline,
		sentiment: analyzer,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// prepared is the outcome of input preprocessing and sentiment analysis
type prepared struct {
	text      string
	sentiment model.SentimentResult
	err       error
}

// Check verifies one input within sess. Only blank input is an error:
// pipeline failures come back as an ERROR verdict with confidence 0.
func (s *Service) Check(ctx context.Context, sess model.Session, input string) (*model.CheckResult, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}
	start := time.Now()

	steps := []model.ThinkingStep{
		{Title: "📊 Sentiment Analysis", Detail: "Analyzing emotional tone and sentiment of the text..."},
		{Title: "🔍 Checking Memory Cache", Detail: "Searching for similar previously verified claims..."},
	}

	var (
		prep  prepared
		match *model.CacheMatch
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		prep = s.prepare(gctx, input)
		return nil
	})
	g.Go(func() error {
		match = s.cache.Lookup(gctx, input)
		return nil
	})
	_ = g.Wait()

	steps = append(steps, model.ThinkingStep{
		Title:  "   ✅ Sentiment: " + string(prep.sentiment.Sentiment),
		Detail: fmt.Sprintf("Confidence: %s, Emotion: %s", render.Percent(prep.sentiment.Confidence, 1), prep.sentiment.Emotion),
	})

	result := &model.CheckResult{
		SessionID:      sess.ID,
		Input:          input,
		ProcessedInput: prep.text,
		Sentiment:      prep.sentiment,
	}

	if match != nil {
		result.Cached = true
		result.Match = match
		result.Verdict = match.Claim.Verdict
		result.Confidence = match.Claim.Confidence
		steps = append(steps, model.ThinkingStep{
			Title:  "✅ Cache Hit!",
			Detail: fmt.Sprintf("Found similar claim with %s confidence (similarity %s)", render.Percent(match.Claim.Confidence, 1), render.Percent(match.Ratio, 1)),
		})
		result.Report = render.CachedReport(*match, time.Since(start), prep.sentiment)
	} else {
		steps = append(steps, model.ThinkingStep{Title: "📭 No Cache Hit", Detail: "Running full verification pipeline..."})
		steps = s.verify(ctx, sess, prep, result, steps, start)
	}

	s.log.Record(ctx, sess.ID, input, prep.text, string(result.Verdict))

	result.Steps = steps
	result.Duration = time.Since(start)

	s.logger.Info("factcheck", "check complete", map[string]interface{}{
		"session_id": sess.ID,
		"verdict":    result.Verdict,
		"confidence": result.Confidence,
		"cached":     result.Cached,
		"duration":   result.Duration.String(),
	})
	return result, nil
}

// prepare turns the raw input into text and scores its sentiment. URL
// inputs are fetched first when a fetcher is configured.
func (s *Service) prepare(ctx context.Context, input string) prepared {
	var p prepared

	fetched := false
	if s.fetcher != nil && extract.IsURL(input) {
		page, err := s.fetcher.FetchWithRetry(ctx, strings.TrimSpace(input))
		if err != nil {
			p.err = fmt.Errorf("fetch input: %w", err)
			p.text = strings.TrimSpace(input)
		} else {
			p.text = extract.Preprocess(page.HTML)
			fetched = true
		}
	} else {
		p.text = extract.Preprocess(input)
	}

	if s.sentiment == nil {
		p.sentiment = sentiment.Unavailable()
		return p
	}
	// Typed input is scored as written, markup included; fetched pages on
	// their extracted text.
	toScore := input
	if fetched {
		toScore = p.text
	}
	p.sentiment = s.sentiment.Analyze(ctx, toScore, s.domain)
	return p
}

// verify runs the pipeline for a cache miss and fills result
func (s *Service) verify(ctx context.Context, sess model.Session, prep prepared, result *model.CheckResult, steps []model.ThinkingStep, start time.Time) []model.ThinkingStep {
	steps = append(steps,
		model.ThinkingStep{Title: "🔍 Step 1: Ingestion", Detail: "Processing and cleaning input text..."},
		model.ThinkingStep{Title: "🔍 Step 2: Claim Extraction", Detail: "Identifying main verifiable claims from the text..."},
	)

	err := prep.err
	var res *model.PipelineResult
	if err == nil {
		res, err = s.runPipeline(ctx, prep.text)
	}
	if err != nil {
		s.logger.Error("factcheck", "verification failed", map[string]interface{}{
			"session_id": sess.ID,
			"error":      err,
		})
		result.Verdict = model.VerdictError
		result.Confidence = 0
		result.Report = render.InconclusiveReport(err, prep.sentiment)
		return append(steps, model.ThinkingStep{Title: "⚠️ Verification Failed", Detail: err.Error()})
	}

	result.Pipeline = res
	result.Verdict = res.OverallVerdict
	result.Confidence = score.AverageConfidence(res.DetailedReports)
	result.Report = render.FreshReport(res.ComprehensiveReport, prep.sentiment)

	steps = append(steps,
		model.ThinkingStep{Title: "🔍 Step 3: Evidence Retrieval", Detail: "Searching the local index and the web for evidence..."},
		model.ThinkingStep{Title: "   📊 Total Evidence", Detail: fmt.Sprintf("Found %d evidence items", res.TotalEvidenceItems)},
		model.ThinkingStep{Title: "🔍 Step 4: Verification", Detail: fmt.Sprintf("Analyzing %d evidence items to determine if they SUPPORT or REFUTE the claim...", res.TotalEvidenceItems)},
		model.ThinkingStep{Title: "🔍 Step 5: Aggregation", Detail: "Combining evidence analysis to generate final verdict..."},
		model.ThinkingStep{Title: "🔍 Step 6: Report Generation", Detail: "Creating fact-check report with detailed analysis..."},
		model.ThinkingStep{Title: fmt.Sprintf("✅ Extracted %d Claims", len(res.Claims)), Detail: fmt.Sprintf("Identified %d verifiable claims from input", len(res.Claims))},
		model.ThinkingStep{Title: fmt.Sprintf("✅ Generated %d Detailed Reports", len(res.DetailedReports)), Detail: "Created analysis for each claim"},
		model.ThinkingStep{Title: "✅ Verification Complete!", Detail: fmt.Sprintf("Total time: %dms", time.Since(start).Milliseconds())},
	)

	if s.cache == nil || result.Verdict == model.VerdictError {
		return steps
	}
	err = s.cache.Store(ctx, cache.Entry{
		ClaimText:     result.Input,
		Verdict:       result.Verdict,
		Confidence:    result.Confidence,
		EvidenceCount: res.TotalEvidenceItems,
		SessionID:     sess.ID,
	})
	if err != nil {
		s.logger.Warn("factcheck", "failed to cache result", map[string]interface{}{"error": err})
		return steps
	}
	return append(steps, model.ThinkingStep{Title: "💾 Result Cached", Detail: "Stored for faster future lookups"})
}

// runPipeline isolates pipeline panics as errors
func (s *Service) runPipeline(ctx context.Context, text string) (res *model.PipelineResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline panic: %v", r)
		}
	}()
	if s.pipeline == nil {
		return nil, errors.New("no pipeline configured")
	}
	return s.pipeline.Run(ctx, text)
}

// Stats reports verification history from the persistent store
func (s *Service) Stats(ctx context.Context) (model.Stats, error) {
	if s.stats == nil {
		return model.Stats{}, ErrNoStats
	}
	return s.stats.Stats(ctx)
}
