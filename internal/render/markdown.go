// Package render turns check results into markdown reports, JSON and
// terminal tables.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/veritas/internal/model"
)

// SentimentIcon returns the emoji shown next to a sentiment label
func SentimentIcon(s model.Sentiment) string {
	switch s {
	case model.SentimentPositive:
		return "😊"
	case model.SentimentNegative:
		return "😞"
	case model.SentimentMixed:
		return "😐"
	default:
		return "😶"
	}
}

// SentimentColor returns the hex color used for a sentiment label
func SentimentColor(s model.Sentiment) string {
	switch s {
	case model.SentimentPositive:
		return "#2ecc71"
	case model.SentimentNegative:
		return "#e74c3c"
	case model.SentimentMixed:
		return "#f39c12"
	default:
		return "#95a5a6"
	}
}

// VerdictIcon returns the badge emoji for a verdict
func VerdictIcon(v model.Verdict) string {
	switch v {
	case model.VerdictTrue, model.VerdictMostlyTrue:
		return "✅"
	case model.VerdictFalse, model.VerdictMostlyFalse:
		return "❌"
	case model.VerdictError:
		return "⚠️"
	default:
		return "⚖️"
	}
}

// Percent formats a [0,1] fraction with the given number of decimals
func Percent(v float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, model.Clamp01(v)*100)
}

// SentimentSection renders the four sentiment fields
func SentimentSection(res model.SentimentResult) string {
	sentiment := res.Sentiment
	if sentiment == "" {
		sentiment = model.SentimentNeutral
	}
	emotion := res.Emotion
	if emotion == "" {
		emotion = "Neutral"
	}
	reason := res.Reason
	if reason == "" {
		reason = "Sentiment analysis completed"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Sentiment:** %s **%s**\n\n", SentimentIcon(sentiment), sentiment)
	fmt.Fprintf(&sb, "**Confidence:** %s\n\n", Percent(res.Confidence, 0))
	fmt.Fprintf(&sb, "**Emotion:** %s\n\n", emotion)
	fmt.Fprintf(&sb, "**Reason:** %s\n", reason)
	return sb.String()
}

// ThinkingSteps renders processing steps as a markdown log
func ThinkingSteps(steps []model.ThinkingStep) string {
	var sb strings.Builder
	for _, step := range steps {
		fmt.Fprintf(&sb, "**%s**\n\n%s\n\n---\n\n", step.Title, step.Detail)
	}
	return sb.String()
}

// CachedReport renders a result served from the verified-claim cache
func CachedReport(match model.CacheMatch, elapsed time.Duration, sentiment model.SentimentResult) string {
	var sb strings.Builder
	sb.WriteString("### ✅ Fact-Check Report: Cached Result\n\n")
	fmt.Fprintf(&sb, "**Status:** Retrieved from memory cache (%dms, similarity %s)\n\n",
		elapsed.Milliseconds(), Percent(match.Ratio, 1))
	fmt.Fprintf(&sb, "**Cached Claim:** %s\n\n", match.Claim.ClaimText)
	fmt.Fprintf(&sb, "**Verdict:** **%s**\n\n", match.Claim.Verdict.Label())
	fmt.Fprintf(&sb, "**Confidence:** %s\n\n", Percent(match.Claim.Confidence, 1))
	sb.WriteString(SentimentSection(sentiment))
	sb.WriteString("\n*Note: For updated information, re-run the verification.*\n")
	return sb.String()
}

// FreshReport appends the sentiment section to a pipeline report
func FreshReport(comprehensive string, sentiment model.SentimentResult) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(comprehensive, "\n"))
	sb.WriteString("\n\n---\n\n### 📊 Sentiment Analysis\n\n")
	sb.WriteString(SentimentSection(sentiment))
	return sb.String()
}

// InconclusiveReport renders the report for a failed verification
func InconclusiveReport(err error, sentiment model.SentimentResult) string {
	var sb strings.Builder
	sb.WriteString("### ⚠️ Fact-Check Report: Inconclusive\n\n")
	sb.WriteString("**Verdict:** **ERROR**\n\n")
	sb.WriteString("**Confidence:** 0.0%\n\n")
	if err != nil {
		fmt.Fprintf(&sb, "The verification pipeline could not complete: %s\n\n", err)
	}
	sb.WriteString("This result was not cached.\n\n---\n\n### 📊 Sentiment Analysis\n\n")
	sb.WriteString(SentimentSection(sentiment))
	return sb.String()
}

// ComprehensiveReport renders the per-claim breakdown of a pipeline run
func ComprehensiveReport(overall model.Verdict, assessments []model.ClaimAssessment) string {
	total := 0
	for _, a := range assessments {
		total += len(a.Evidence)
	}

	var sb strings.Builder
	sb.WriteString("## Fact-Check Report\n\n")
	fmt.Fprintf(&sb, "**Overall Verdict:** %s **%s**\n\n", VerdictIcon(overall), overall.Label())
	fmt.Fprintf(&sb, "**Claims Analyzed:** %d\n\n", len(assessments))
	fmt.Fprintf(&sb, "**Evidence Items:** %d\n", total)

	for i, a := range assessments {
		fmt.Fprintf(&sb, "\n### Claim %d: %s\n\n", i+1, a.Claim)
		fmt.Fprintf(&sb, "**Verdict:** %s **%s** (%s confidence)\n", VerdictIcon(a.Verdict), a.Verdict.Label(), Percent(a.Confidence, 1))

		if a.Error != "" {
			fmt.Fprintf(&sb, "\n*Assessment failed: %s*\n", a.Error)
			continue
		}

		if len(a.Evidence) == 0 {
			sb.WriteString("\n*No evidence found.*\n")
		} else {
			sb.WriteString("\n| # | Stance | Strength | Source | Reason |\n")
			sb.WriteString("|---|--------|----------|--------|--------|\n")
			for j, ev := range a.Evidence {
				fmt.Fprintf(&sb, "| %d | %s | %.2f | %s | %s |\n",
					j+1, ev.Stance, ev.Strength, cell(ev.Source), cell(ev.Reason))
			}
		}

		if len(a.Signals) > 0 {
			sb.WriteString("\n")
			for _, s := range a.Signals {
				fmt.Fprintf(&sb, "- `%s` (%s): %s\n", s.Type, s.Severity, s.Description)
			}
		}
	}

	return sb.String()
}

// cell makes text safe for a single markdown table cell
func cell(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	return strings.ReplaceAll(text, "|", `\|`)
}
