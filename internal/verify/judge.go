// Package verify assigns stances to retrieved evidence. An LLM oracle
// judges each item; when it is missing or fails, a lexical heuristic
// takes over so every item still leaves with a stance and a strength.
package verify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ppiankov/veritas/internal/llm"
	"github.com/ppiankov/veritas/internal/logging"
	"github.com/ppiankov/veritas/internal/model"
)

const defaultWorkers = 4

// Judge evaluates evidence against a claim
type Judge struct {
	provider llm.Provider
	timeout  time.Duration
	workers  int
	direct   bool
	logger   logging.Logger
}

// Option configures a Judge
type Option func(*Judge)

// WithTimeout bounds each oracle call
func WithTimeout(d time.Duration) Option {
	return func(j *Judge) { j.timeout = d }
}

// WithWorkers limits concurrent oracle calls per claim
func WithWorkers(n int) Option {
	return func(j *Judge) {
		if n > 0 {
			j.workers = n
		}
	}
}

// WithDirectVerdict adds the oracle's own verdict on the claim as an
// extra evidence item
func WithDirectVerdict(enabled bool) Option {
	return func(j *Judge) { j.direct = enabled }
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(j *Judge) {
		if l != nil {
			j.logger = l
		}
	}
}

// NewJudge creates a judge. A nil provider means lexical judgement only.
func NewJudge(provider llm.Provider, opts ...Option) *Judge {
	j := &Judge{
		provider: provider,
		timeout:  30 * time.Second,
		workers:  defaultWorkers,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Evaluate returns judged copies of evidence in the same order, followed
// by the direct oracle verdict when enabled. Strength is scaled by the
// source authority tier. The input slice is not modified.
func (j *Judge) Evaluate(ctx context.Context, claim string, evidence []model.EvidenceItem) []model.EvidenceItem {
	judged := make([]model.EvidenceItem, len(evidence))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, j.workers)

	for i, item := range evidence {
		wg.Add(1)
		go func(idx int, it model.EvidenceItem) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				judged[idx] = j.lexical(claim, it)
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			judged[idx] = j.judgeItem(ctx, claim, it)
		}(i, item)
	}
	wg.Wait()

	if j.direct && j.provider != nil {
		if item, err := j.directVerdict(ctx, claim, evidence); err != nil {
			j.logger.Warn("verify", "direct verdict failed", map[string]interface{}{
				"claim": claim,
				"error": err,
			})
		} else {
			judged = append(judged, item)
		}
	}

	return judged
}

func (j *Judge) judgeItem(ctx context.Context, claim string, item model.EvidenceItem) model.EvidenceItem {
	if j.provider == nil {
		return j.lexical(claim, item)
	}

	out, err := j.oracleStance(ctx, claim, item)
	if err != nil {
		j.logger.Debug("verify", "oracle stance failed, using lexical judgement", map[string]interface{}{
			"source": item.Source,
			"error":  err,
		})
		return j.lexical(claim, item)
	}
	return out
}

type stanceAnswer struct {
	Stance   string         `json:"stance"`
	Strength *llm.FlexFloat `json:"strength"`
	Reason   string         `json:"reason"`
}

func (j *Judge) oracleStance(ctx context.Context, claim string, item model.EvidenceItem) (out model.EvidenceItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("oracle panic: %v", r)
		}
	}()

	reply, err := j.generate(ctx, StancePrompt(claim, item))
	if err != nil {
		return model.EvidenceItem{}, err
	}

	var answer stanceAnswer
	if err := llm.DecodeJSON(reply, &answer); err != nil {
		return model.EvidenceItem{}, fmt.Errorf("parse stance: %w", err)
	}

	strength := 0.5
	if answer.Strength != nil {
		strength = float64(*answer.Strength)
	}

	out = item
	out.Stance = model.ParseStance(answer.Stance)
	out.Strength = model.Clamp01(strength) * item.Authority.Weight()
	out.Reason = strings.TrimSpace(answer.Reason)
	return out, nil
}

type verdictAnswer struct {
	Verdict    string         `json:"verdict"`
	Confidence *llm.FlexFloat `json:"confidence"`
	Reason     string         `json:"reason"`
}

func (j *Judge) directVerdict(ctx context.Context, claim string, evidence []model.EvidenceItem) (item model.EvidenceItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("oracle panic: %v", r)
		}
	}()

	reply, err := j.generate(ctx, VerdictPrompt(claim, evidence))
	if err != nil {
		return model.EvidenceItem{}, err
	}

	var answer verdictAnswer
	if err := llm.DecodeJSON(reply, &answer); err != nil {
		return model.EvidenceItem{}, fmt.Errorf("parse verdict: %w", err)
	}

	confidence := 0.5
	if answer.Confidence != nil {
		confidence = float64(*answer.Confidence)
	}

	verdict := model.ParseVerdict(answer.Verdict)
	stance, scale := verdictStance(verdict)
	return model.EvidenceItem{
		Source:    "oracle:" + j.provider.Name(),
		Title:     "Oracle verdict: " + verdict.Label(),
		Snippet:   strings.TrimSpace(answer.Reason),
		Stance:    stance,
		Strength:  model.Clamp01(confidence) * scale,
		Relevance: 1,
		Origin:    model.OriginOracle,
		Reason:    strings.TrimSpace(answer.Reason),
	}, nil
}

// verdictStance maps an oracle verdict onto a stance and a strength scale
func verdictStance(v model.Verdict) (model.Stance, float64) {
	switch v {
	case model.VerdictTrue:
		return model.StanceSupports, 1
	case model.VerdictMostlyTrue:
		return model.StanceSupports, 0.6
	case model.VerdictFalse:
		return model.StanceRefutes, 1
	case model.VerdictMostlyFalse:
		return model.StanceRefutes, 0.6
	default:
		return model.StanceNotEnoughInfo, 0.5
	}
}

func (j *Judge) generate(ctx context.Context, prompt string) (string, error) {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}
	reply, err := j.provider.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("oracle call: %w", err)
	}
	return reply, nil
}

// StancePrompt renders the per-item stance prompt
func StancePrompt(claim string, item model.EvidenceItem) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CLAIM: %s\n\n", claim)
	fmt.Fprintf(&sb, "EVIDENCE (source: %s", item.Source)
	if item.Authority != model.TierUnknown {
		fmt.Fprintf(&sb, ", authority: %s", item.Authority)
	}
	sb.WriteString(")\n")
	if item.Title != "" {
		fmt.Fprintf(&sb, "Title: %s\n", item.Title)
	}
	fmt.Fprintf(&sb, "%s\n", item.Snippet)
	sb.WriteString(`
Does the evidence support or refute the claim? Return ONLY this JSON:

{
    "stance": "SUPPORTS|REFUTES|NOT_ENOUGH_INFO",
    "strength": <float between 0.0 and 1.0>,
    "reason": "<one sentence>"
}
`)
	return sb.String()
}

// VerdictPrompt renders the direct verdict prompt over all evidence snippets
func VerdictPrompt(claim string, evidence []model.EvidenceItem) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CLAIM: %s\n", claim)
	if len(evidence) > 0 {
		sb.WriteString("\nEVIDENCE:\n")
		for i, item := range evidence {
			fmt.Fprintf(&sb, "%d. [%s] %s\n", i+1, item.Source, item.Snippet)
		}
	}
	sb.WriteString(`
Fact-check the claim. Return ONLY this JSON:

{
    "verdict": "TRUE|MOSTLY_TRUE|MIXED|MOSTLY_FALSE|FALSE|UNVERIFIED",
    "confidence": <float between 0.0 and 1.0>,
    "reason": "<brief explanation, 1-2 sentences>"
}
`)
	return sb.String()
}
