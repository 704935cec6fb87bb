package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		input string
		want  Verdict
	}{
		{"TRUE", VerdictTrue},
		{"true", VerdictTrue},
		{"Mostly False", VerdictMostlyFalse},
		{"MOSTLY_FALSE", VerdictMostlyFalse},
		{"mostly-true", VerdictMostlyTrue},
		{"False", VerdictFalse},
		{"This claim is not true", VerdictFalse},
		{"refuted by evidence", VerdictFalse},
		{"Mixed", VerdictMixed},
		{"partly accurate", VerdictMixed},
		{"partially true", VerdictMixed},
		{"Partially correct", VerdictMixed},
		{"untrue", VerdictFalse},
		{"mostly untrue", VerdictMostlyFalse},
		{"not correct", VerdictFalse},
		{"incorrect", VerdictFalse},
		{"not supported by evidence", VerdictUnverified},
		{"Unverified", VerdictUnverified},
		{"not enough evidence", VerdictUnverified},
		{"ERROR", VerdictError},
		{"", VerdictUnverified},
		{"banana", VerdictUnverified},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseVerdict(tt.input))
		})
	}
}

func TestParseVerdict_AlwaysEnumerated(t *testing.T) {
	for _, input := range []string{"???", "It depends", "TRUE-ish", "\n\t", "mostly"} {
		assert.True(t, ParseVerdict(input).IsValid(), input)
	}
}

func TestConfidenceForVerdict(t *testing.T) {
	assert.Equal(t, 0.0, ConfidenceForVerdict("ERROR"))
	assert.Equal(t, 0.1, ConfidenceForVerdict("FALSE"))
	assert.Equal(t, 0.3, ConfidenceForVerdict("mostly false"))
	assert.Equal(t, 0.5, ConfidenceForVerdict("MIXED"))
	assert.Equal(t, 0.5, ConfidenceForVerdict("UNVERIFIED"))
	assert.Equal(t, 0.75, ConfidenceForVerdict("MOSTLY_TRUE"))
	assert.Equal(t, 0.9, ConfidenceForVerdict("TRUE"))
	assert.Equal(t, 0.5, ConfidenceForVerdict(""))
	assert.Equal(t, 0.5, ConfidenceForVerdict("   "))
}

func TestParseStance(t *testing.T) {
	tests := []struct {
		input string
		want  Stance
	}{
		{"SUPPORTS", StanceSupports},
		{"supported", StanceSupports},
		{"confirms the claim", StanceSupports},
		{"REFUTES", StanceRefutes},
		{"contradicts", StanceRefutes},
		{"does not support", StanceRefutes},
		{"disagrees", StanceRefutes},
		{"disagree with the claim", StanceRefutes},
		{"unsupported", StanceNotEnoughInfo},
		{"not supported", StanceNotEnoughInfo},
		{"no support found", StanceNotEnoughInfo},
		{"does not refute", StanceNotEnoughInfo},
		{"not contradicted", StanceNotEnoughInfo},
		{"unconfirmed", StanceNotEnoughInfo},
		{"not_enough_info", StanceNotEnoughInfo},
		{"agrees", StanceSupports},
		{"NOT_ENOUGH_INFO", StanceNotEnoughInfo},
		{"not enough information to support", StanceNotEnoughInfo},
		{"NEI", StanceNotEnoughInfo},
		{"", StanceNotEnoughInfo},
		{"whatever", StanceNotEnoughInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStance(tt.input))
		})
	}
}

func TestParseSentiment(t *testing.T) {
	assert.Equal(t, SentimentPositive, ParseSentiment("positive"))
	assert.Equal(t, SentimentNegative, ParseSentiment("NEGATIVE"))
	assert.Equal(t, SentimentMixed, ParseSentiment(" Mixed "))
	assert.Equal(t, SentimentNeutral, ParseSentiment("somewhat positive"))
	assert.Equal(t, SentimentNeutral, ParseSentiment(""))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.2))
	assert.Equal(t, 1.0, Clamp01(1.7))
	assert.Equal(t, 0.4, Clamp01(0.4))
	assert.Equal(t, 0.0, Clamp01(math.NaN()))
}

func TestTextQualityMetricsScore(t *testing.T) {
	m := TextQualityMetrics{Readability: 0.8, Completeness: 0.6, Coherence: 0.7, NoiseLevel: 0.1}
	assert.InDelta(t, 0.3*0.8+0.3*0.6+0.2*0.7+0.2*0.9, m.Score(), 1e-9)
}

func TestLLMConfigCallTimeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, LLMConfig{}.CallTimeout())
	assert.Equal(t, 5*time.Second, LLMConfig{Timeout: 5}.CallTimeout())
}
