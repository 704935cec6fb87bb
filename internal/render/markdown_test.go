package render

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ppiankov/veritas/internal/model"
)

func TestSentimentIconAndColor(t *testing.T) {
	tests := []struct {
		sentiment model.Sentiment
		icon      string
		color     string
	}{
		{model.SentimentPositive, "😊", "#2ecc71"},
		{model.SentimentNegative, "😞", "#e74c3c"},
		{model.SentimentMixed, "😐", "#f39c12"},
		{model.SentimentNeutral, "😶", "#95a5a6"},
		{"", "😶", "#95a5a6"},
	}
	for _, tt := range tests {
		if got := SentimentIcon(tt.sentiment); got != tt.icon {
			t.Errorf("SentimentIcon(%q) = %q, want %q", tt.sentiment, got, tt.icon)
		}
		if got := SentimentColor(tt.sentiment); got != tt.color {
			t.Errorf("SentimentColor(%q) = %q, want %q", tt.sentiment, got, tt.color)
		}
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "82%", Percent(0.82, 0))
	assert.Equal(t, "82.5%", Percent(0.825, 1))
	assert.Equal(t, "100.0%", Percent(1.4, 1))
	assert.Equal(t, "0%", Percent(-1, 0))
}

func TestSentimentSection(t *testing.T) {
	out := SentimentSection(model.SentimentResult{
		Sentiment:  model.SentimentNegative,
		Confidence: 0.42,
		Emotion:    "Fear",
		Reason:     "Alarmist wording.",
	})
	assert.Contains(t, out, "**Sentiment:** 😞 **Negative**")
	assert.Contains(t, out, "**Confidence:** 42%")
	assert.Contains(t, out, "**Emotion:** Fear")
	assert.Contains(t, out, "**Reason:** Alarmist wording.")

	defaults := SentimentSection(model.SentimentResult{})
	assert.Contains(t, defaults, "**Neutral**")
	assert.Contains(t, defaults, "**Emotion:** Neutral")
	assert.Contains(t, defaults, "Sentiment analysis completed")
}

func TestThinkingSteps(t *testing.T) {
	out := ThinkingSteps([]model.ThinkingStep{
		{Title: "Checking Memory Cache", Detail: "Searching..."},
		{Title: "Cache Hit!", Detail: "Found it"},
	})
	assert.Equal(t, "**Checking Memory Cache**\n\nSearching...\n\n---\n\n**Cache Hit!**\n\nFound it\n\n---\n\n", out)
	assert.Empty(t, ThinkingSteps(nil))
}

func TestCachedReport(t *testing.T) {
	match := model.CacheMatch{
		Claim: model.CachedClaim{
			ClaimText:  "The Eiffel Tower is in Paris",
			Verdict:    model.VerdictMostlyTrue,
			Confidence: 0.815,
		},
		Ratio: 0.93,
	}
	out := CachedReport(match, 12*time.Millisecond, model.SentimentResult{Sentiment: model.SentimentNeutral})

	assert.True(t, strings.HasPrefix(out, "### ✅ Fact-Check Report: Cached Result"))
	assert.Contains(t, out, "(12ms, similarity 93.0%)")
	assert.Contains(t, out, "**Cached Claim:** The Eiffel Tower is in Paris")
	assert.Contains(t, out, "**Verdict:** **MOSTLY TRUE**")
	assert.Contains(t, out, "**Confidence:** 81.5%")
	assert.Contains(t, out, "re-run the verification")
}

func TestFreshAndInconclusiveReports(t *testing.T) {
	fresh := FreshReport("## Fact-Check Report\n\n", model.SentimentResult{Sentiment: model.SentimentPositive})
	assert.Contains(t, fresh, "## Fact-Check Report\n\n---\n\n### 📊 Sentiment Analysis")
	assert.Contains(t, fresh, "😊 **Positive**")

	bad := InconclusiveReport(errors.New("retrieval offline"), model.SentimentResult{})
	assert.Contains(t, bad, "Inconclusive")
	assert.Contains(t, bad, "**Verdict:** **ERROR**")
	assert.Contains(t, bad, "retrieval offline")
	assert.Contains(t, bad, "not cached")
}

func TestComprehensiveReport(t *testing.T) {
	assessments := []model.ClaimAssessment{
		{
			Claim:      "Water boils at 100 C at sea level",
			Verdict:    model.VerdictTrue,
			Confidence: 0.8,
			Evidence: []model.EvidenceItem{
				{Source: "index:water", Stance: model.StanceSupports, Strength: 0.9, Reason: "states | the fact"},
			},
			Signals: []model.Signal{
				{Type: model.SignalEvidenceVolume, Severity: model.SeverityWarning, Description: "1 directional evidence items"},
			},
		},
		{
			Claim:      "Nothing to see",
			Verdict:    model.VerdictUnverified,
			Confidence: 0.5,
		},
		{
			Claim:   "Broken",
			Verdict: model.VerdictError,
			Error:   "aggregation failed: NaN strength",
		},
	}

	out := ComprehensiveReport(model.VerdictTrue, assessments)
	assert.Contains(t, out, "**Overall Verdict:** ✅ **TRUE**")
	assert.Contains(t, out, "**Claims Analyzed:** 3")
	assert.Contains(t, out, "**Evidence Items:** 1")
	assert.Contains(t, out, "### Claim 1: Water boils at 100 C at sea level")
	assert.Contains(t, out, "(80.0% confidence)")
	assert.Contains(t, out, `| 1 | SUPPORTS | 0.90 | index:water | states \| the fact |`)
	assert.Contains(t, out, "- `evidence_volume` (warning): 1 directional evidence items")
	assert.Contains(t, out, "*No evidence found.*")
	assert.Contains(t, out, "*Assessment failed: aggregation failed: NaN strength*")
}
