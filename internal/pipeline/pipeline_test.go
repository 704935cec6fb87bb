package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/veritas/internal/extract"
	"github.com/ppiankov/veritas/internal/llm"
	"github.com/ppiankov/veritas/internal/model"
	"github.com/ppiankov/veritas/internal/retrieve"
	"github.com/ppiankov/veritas/internal/verify"
)

const twoClaims = "The Eiffel Tower is located in Paris. Water boils at 100 degrees Celsius at sea level."

type stubRetriever struct {
	mu    sync.Mutex
	items map[string][]model.EvidenceItem
	err   error
	seen  []string
}

func (s *stubRetriever) Name() string { return "stub" }

func (s *stubRetriever) Retrieve(_ context.Context, claim string) ([]model.EvidenceItem, error) {
	s.mu.Lock()
	s.seen = append(s.seen, claim)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.items[claim], nil
}

// stanceJudge assigns the same stance and strength to every item
type stanceJudge struct {
	stance   model.Stance
	strength float64
}

func (j stanceJudge) Evaluate(_ context.Context, _ string, evidence []model.EvidenceItem) []model.EvidenceItem {
	out := make([]model.EvidenceItem, len(evidence))
	for i, item := range evidence {
		item.Stance = j.stance
		item.Strength = j.strength
		out[i] = item
	}
	return out
}

type panicRetriever struct{}

func (panicRetriever) Name() string { return "broken" }

func (panicRetriever) Retrieve(context.Context, string) ([]model.EvidenceItem, error) {
	panic("retriever bug")
}

type panicJudge struct{}

func (panicJudge) Evaluate(context.Context, string, []model.EvidenceItem) []model.EvidenceItem {
	panic("judge bug")
}

func evidence(sources ...string) []model.EvidenceItem {
	items := make([]model.EvidenceItem, len(sources))
	for i, s := range sources {
		items[i] = model.EvidenceItem{Source: s, Snippet: "snippet " + s}
	}
	return items
}

func TestRun(t *testing.T) {
	retriever := &stubRetriever{items: map[string][]model.EvidenceItem{
		"The Eiffel Tower is located in Paris.":            evidence("a", "b", "c"),
		"Water boils at 100 degrees Celsius at sea level.": evidence("d", "e"),
	}}
	p := New(extract.NewClaimExtractor(5), retriever, stanceJudge{model.StanceSupports, 0.9}, WithWorkers(2))

	res, err := p.Run(context.Background(), twoClaims)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"The Eiffel Tower is located in Paris.",
		"Water boils at 100 degrees Celsius at sea level.",
	}, res.Claims)
	require.Len(t, res.Assessments, 2)
	require.Len(t, res.DetailedReports, 2)
	assert.Equal(t, res.Claims[0], res.Assessments[0].Claim)
	assert.Equal(t, res.Claims[1], res.DetailedReports[1].Claim)
	assert.Equal(t, 5, res.TotalEvidenceItems)

	for _, a := range res.Assessments {
		assert.Equal(t, model.VerdictTrue, a.Verdict)
	}
	assert.Equal(t, model.VerdictTrue, res.OverallVerdict)
	assert.Contains(t, res.ComprehensiveReport, "### Claim 2: Water boils")
	assert.Contains(t, res.ComprehensiveReport, "**Evidence Items:** 5")
	assert.Len(t, retriever.seen, 2)
}

func TestRun_NoClaims(t *testing.T) {
	p := New(extract.NewClaimExtractor(5), &stubRetriever{}, stanceJudge{})
	_, err := p.Run(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrNoClaims)
}

func TestRun_RetrievalFailureLeavesClaimUnverified(t *testing.T) {
	p := New(extract.NewClaimExtractor(5), &stubRetriever{err: errors.New("offline")}, stanceJudge{model.StanceSupports, 1})

	res, err := p.Run(context.Background(), "Short claim that is checked.")
	require.NoError(t, err)
	require.Len(t, res.Assessments, 1)
	assert.Equal(t, model.VerdictUnverified, res.Assessments[0].Verdict)
	assert.Equal(t, 0.5, res.Assessments[0].Confidence)
	assert.Equal(t, model.VerdictUnverified, res.OverallVerdict)
	assert.Equal(t, 0, res.TotalEvidenceItems)
}

func TestRun_RetrieverPanicBecomesError(t *testing.T) {
	p := New(extract.NewClaimExtractor(5), panicRetriever{}, stanceJudge{model.StanceSupports, 1})

	var res *model.PipelineResult
	var err error
	require.NotPanics(t, func() {
		res, err = p.Run(context.Background(), twoClaims)
	})
	require.NoError(t, err)
	require.Len(t, res.Assessments, 2)
	for _, a := range res.Assessments {
		assert.Equal(t, model.VerdictError, a.Verdict)
		assert.Equal(t, 0.0, a.Confidence)
		assert.Contains(t, a.Error, "retriever bug")
	}
}

func TestRun_JudgePanicBecomesError(t *testing.T) {
	retriever := &stubRetriever{items: map[string][]model.EvidenceItem{
		"Short claim that is checked.": evidence("a"),
	}}
	p := New(extract.NewClaimExtractor(5), retriever, panicJudge{})

	res, err := p.Run(context.Background(), "Short claim that is checked.")
	require.NoError(t, err)
	require.Len(t, res.Assessments, 1)
	assert.Equal(t, model.VerdictError, res.Assessments[0].Verdict)
	assert.Contains(t, res.Assessments[0].Error, "judge bug")
}

func TestRun_PanicInsideMultiIsPartialFailure(t *testing.T) {
	index := retrieve.NewIndex([]retrieve.Document{
		{ID: "eiffel", Text: "The Eiffel Tower is a wrought-iron lattice tower located in Paris, France."},
	}, 3, 0.05)
	p := New(extract.NewClaimExtractor(5), retrieve.NewMulti(nil, index, panicRetriever{}), stanceJudge{model.StanceSupports, 1})

	res, err := p.Run(context.Background(), "The Eiffel Tower is located in Paris.")
	require.NoError(t, err)
	require.Len(t, res.Assessments, 1)
	assert.NotEqual(t, model.VerdictError, res.Assessments[0].Verdict)
	assert.Equal(t, 1, res.TotalEvidenceItems)
}

func TestRun_MaxClaims(t *testing.T) {
	retriever := &stubRetriever{}
	p := New(extract.NewClaimExtractor(1), retriever, stanceJudge{})

	res, err := p.Run(context.Background(), twoClaims)
	require.NoError(t, err)
	assert.Len(t, res.Claims, 1)
	assert.Len(t, retriever.seen, 1)
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(extract.NewClaimExtractor(5), &stubRetriever{}, stanceJudge{})
	_, err := p.Run(ctx, twoClaims)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRun_EndToEndWithOracle(t *testing.T) {
	index := retrieve.NewIndex([]retrieve.Document{
		{ID: "eiffel", Text: "The Eiffel Tower is a wrought-iron lattice tower located in Paris, France."},
		{ID: "pasta", Text: "Boil pasta in salted water."},
	}, 3, 0.05)

	mock := &llm.MockProvider{Respond: func(prompt string) (string, error) {
		if strings.Contains(prompt, "Fact-check the claim") {
			return `{"verdict": "TRUE", "confidence": 0.9, "reason": "Well known."}`, nil
		}
		return `{"stance": "SUPPORTS", "strength": 1.0, "reason": "Names Paris."}`, nil
	}}
	judge := verify.NewJudge(mock, verify.WithDirectVerdict(true))

	p := New(extract.NewClaimExtractor(5), retrieve.NewMulti(nil, index), judge)
	res, err := p.Run(context.Background(), "The Eiffel Tower is located in Paris.")
	require.NoError(t, err)

	require.Len(t, res.Assessments, 1)
	a := res.Assessments[0]
	// index item 1.0 x unknown-tier 0.6, oracle verdict 0.9: (1.5)/(1.5+0.5)
	assert.InDelta(t, 0.75, a.Score, 1e-9)
	assert.Equal(t, model.VerdictTrue, a.Verdict)
	assert.Equal(t, 2, res.TotalEvidenceItems)
	assert.Equal(t, model.OriginOracle, a.Evidence[1].Origin)
}

func TestNewFromConfig(t *testing.T) {
	cfg := model.DefaultConfig()
	p, err := NewFromConfig(cfg, nil, nil, nil)
	require.NoError(t, err)

	res, err := p.Run(context.Background(), "The Moon is made of cheese.")
	require.NoError(t, err)
	assert.Equal(t, model.VerdictUnverified, res.OverallVerdict)

	cfg.Retrieval.IndexPath = "/nonexistent/index.yaml"
	_, err = NewFromConfig(cfg, nil, nil, nil)
	assert.Error(t, err)
}
