package quality

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/veritas/internal/model"
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	punctuation   = regexp.MustCompile(`[.!?]`)
	capitals      = regexp.MustCompile(`[A-Z]`)
)

// Assess computes structural quality metrics for text. It never fails;
// empty input yields valid, low-scoring metrics.
func Assess(text string) model.TextQualityMetrics {
	words := len(strings.Fields(text))
	chars := utf8.RuneCountInString(text)

	m := model.TextQualityMetrics{
		WordCount:         words,
		CharCount:         chars,
		HasPunctuation:    punctuation.MatchString(text),
		HasCapitalization: capitals.MatchString(text),
	}

	m.Readability = readability(text, words)
	m.Completeness = completeness(words)

	switch {
	case m.HasPunctuation && m.HasCapitalization:
		m.Coherence = 0.7
	case m.HasPunctuation || m.HasCapitalization:
		m.Coherence = 0.5
	default:
		m.Coherence = 0.3
	}

	m.NoiseLevel = noise(text, chars)

	return m
}

// Score is shorthand for Assess(text).Score()
func Score(text string) float64 {
	return Assess(text).Score()
}

func readability(text string, words int) float64 {
	sentences := 0
	for _, s := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	if sentences < 1 {
		sentences = 1
	}

	avg := float64(words) / float64(sentences)
	switch {
	case avg >= 10 && avg <= 25:
		return 0.8
	case avg >= 5 && avg <= 30:
		return 0.6
	default:
		return 0.4
	}
}

func completeness(words int) float64 {
	if words >= 10 {
		return min(0.9, 0.5+float64(words)/100)
	}
	return max(0.2, float64(words)/20)
}

// noise combines the special-character ratio with the number of
// runs of four or more identical characters (newlines break runs).
func noise(text string, chars int) float64 {
	special := 0
	for _, r := range text {
		if !isASCIIAlnum(r) && !unicode.IsSpace(r) {
			special++
		}
	}

	ratio := float64(special) / float64(max(chars, 1))
	return model.Clamp01(min(1.0, ratio*2+0.1*float64(repeatedRuns(text))))
}

// repeatedRuns counts maximal runs of at least four identical runes
func repeatedRuns(text string) int {
	runs := 0
	var prev rune
	length := 0
	for _, r := range text {
		if length > 0 && r == prev && r != '\n' {
			length++
			continue
		}
		if length >= 4 {
			runs++
		}
		prev = r
		length = 1
	}
	if length >= 4 {
		runs++
	}
	return runs
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
