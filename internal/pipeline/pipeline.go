// Package pipeline runs the full verification flow for one input: claim
// extraction, evidence retrieval, stance judgement and aggregation.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ppiankov/veritas/internal/extract"
	"github.com/ppiankov/veritas/internal/llm"
	"github.com/ppiankov/veritas/internal/logging"
	"github.com/ppiankov/veritas/internal/model"
	"github.com/ppiankov/veritas/internal/render"
	"github.com/ppiankov/veritas/internal/retrieve"
	"github.com/ppiankov/veritas/internal/score"
	"github.com/ppiankov/veritas/internal/verify"
	"github.com/ppiankov/veritas/internal/worker"
)

// ErrNoClaims is returned when the input holds nothing to verify
var ErrNoClaims = errors.New("no verifiable claims in input")

// Judge assigns stances to retrieved evidence
type Judge interface {
	Evaluate(ctx context.Context, claim string, evidence []model.EvidenceItem) []model.EvidenceItem
}

// Pipeline orchestrates the complete verification process
type Pipeline struct {
	extractor  *extract.ClaimExtractor
	retriever  retrieve.Retriever
	judge      Judge
	aggregator *score.Aggregator
	workers    int
	logger     logging.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithWorkers bounds how many claims are processed concurrently
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a pipeline from its stages
func New(extractor *extract.ClaimExtractor, retriever retrieve.Retriever, judge Judge, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor:  extractor,
		retriever:  retriever,
		judge:      judge,
		aggregator: score.NewAggregator(),
		workers:    3,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewFromConfig wires the configured retrievers and a judge backed by
// provider. A nil provider leaves judgement to the lexical heuristic.
func NewFromConfig(cfg *model.Config, provider llm.Provider, fetcher *retrieve.Fetcher, logger logging.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	retriever, err := retrieve.FromConfig(cfg, fetcher, logger)
	if err != nil {
		return nil, err
	}
	if retriever.Len() == 0 {
		logger.Warn("pipeline", "no evidence sources configured; claims will stay unverified", nil)
	}

	judge := verify.NewJudge(provider,
		verify.WithTimeout(cfg.LLM.CallTimeout()),
		verify.WithDirectVerdict(cfg.Pipeline.DirectJudge),
		verify.WithLogger(logger),
	)

	return New(extract.NewClaimExtractor(cfg.Pipeline.MaxClaims), retriever, judge,
		WithWorkers(cfg.Pipeline.Workers),
		WithLogger(logger),
	), nil
}

// claimJob verifies one claim on the worker pool
type claimJob struct {
	index    int
	claim    string
	pipeline *Pipeline
}

type claimResult struct {
	index      int
	assessment model.ClaimAssessment
	err        error
}

func (r *claimResult) GetError() error {
	return r.err
}

// Execute runs on a pool goroutine, so a panic in retrieval or judgement
// is converted into an ERROR assessment for this claim instead of
// unwinding the pool.
func (j *claimJob) Execute(ctx context.Context) (res worker.Result) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("claim verification panic: %v", r)
			j.pipeline.logger.Error("pipeline", "claim verification panicked", map[string]interface{}{
				"claim": j.claim,
				"error": err,
			})
			res = &claimResult{index: j.index, assessment: score.Failed(j.claim, err), err: err}
		}
	}()
	return &claimResult{index: j.index, assessment: j.pipeline.assess(ctx, j.claim)}
}

// assess retrieves, judges and aggregates evidence for one claim. A
// retrieval failure leaves the claim without evidence.
func (p *Pipeline) assess(ctx context.Context, claim string) model.ClaimAssessment {
	evidence, err := p.retriever.Retrieve(ctx, claim)
	if err != nil {
		p.logger.Warn("pipeline", "evidence retrieval failed", map[string]interface{}{
			"claim": claim,
			"error": err,
		})
		evidence = nil
	}

	judged := p.judge.Evaluate(ctx, claim, evidence)
	assessment := p.aggregator.Aggregate(claim, judged)

	p.logger.Debug("pipeline", "claim assessed", map[string]interface{}{
		"claim":      claim,
		"evidence":   len(judged),
		"verdict":    assessment.Verdict,
		"confidence": assessment.Confidence,
	})
	return assessment
}

// Run verifies every claim extracted from text
func (p *Pipeline) Run(ctx context.Context, text string) (*model.PipelineResult, error) {
	claims := p.extractor.ExtractText(text)
	if len(claims) == 0 {
		return nil, ErrNoClaims
	}

	pool := worker.NewPoolWithContext(ctx, p.workers)
	pool.Start()
	for i, c := range claims {
		pool.Submit(&claimJob{index: i, claim: c.Text, pipeline: p})
	}
	results := pool.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline interrupted: %w", err)
	}
	if len(results) != len(claims) {
		return nil, fmt.Errorf("pipeline: %d of %d claims completed", len(results), len(claims))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].(*claimResult).index < results[j].(*claimResult).index
	})

	out := &model.PipelineResult{
		Claims:      make([]string, len(claims)),
		Assessments: make([]model.ClaimAssessment, len(results)),
	}
	for i, c := range claims {
		out.Claims[i] = c.Text
	}
	for i, r := range results {
		a := r.(*claimResult).assessment
		out.Assessments[i] = a
		out.TotalEvidenceItems += len(a.Evidence)
	}

	out.DetailedReports = score.Reports(out.Assessments)
	out.OverallVerdict = score.Overall(out.Assessments)
	out.ComprehensiveReport = render.ComprehensiveReport(out.OverallVerdict, out.Assessments)

	p.logger.Info("pipeline", "pipeline complete", map[string]interface{}{
		"claims":   len(claims),
		"evidence": out.TotalEvidenceItems,
		"verdict":  out.OverallVerdict,
	})
	return out, nil
}
