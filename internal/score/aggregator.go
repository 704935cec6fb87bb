package score

import (
	"fmt"
	"math"

	"github.com/ppiankov/veritas/internal/model"
)

// Verdict band thresholds on the signed score
const (
	TrueThreshold       = 0.6
	MostlyTrueThreshold = 0.25
)

// DefaultPrior is added to the score denominator so that a single weak
// item cannot reach an extreme band
const DefaultPrior = 0.5

// neutralWeight is how much NOT_ENOUGH_INFO weight dilutes the score
const neutralWeight = 0.5

// Aggregator turns judged evidence into a verdict and calibrated confidence
type Aggregator struct {
	prior float64
}

// NewAggregator creates an aggregator with the default prior
func NewAggregator() *Aggregator {
	return &Aggregator{prior: DefaultPrior}
}

// tally holds per-stance weights for one claim
type tally struct {
	supports, refutes, neutral int
	s, r, n                    float64
	supportStrengths           []float64
	refuteStrengths            []float64
}

func (t tally) directional() int {
	return t.supports + t.refutes
}

// Aggregate never panics: any internal failure yields ERROR with zero confidence
func (a *Aggregator) Aggregate(claim string, evidence []model.EvidenceItem) (out model.ClaimAssessment) {
	defer func() {
		if r := recover(); r != nil {
			out = errorAssessment(claim, evidence, fmt.Errorf("aggregation panic: %v", r))
		}
	}()

	out = model.ClaimAssessment{
		Claim:    claim,
		Evidence: evidence,
	}

	// 1. No evidence: nothing to lean on either way
	if len(evidence) == 0 {
		out.Verdict = model.VerdictUnverified
		out.Confidence = 0.5
		out.Signals = []model.Signal{{
			Type:        model.SignalNoEvidence,
			Severity:    model.SeverityWarning,
			Description: "No evidence retrieved for this claim",
		}}
		return out
	}

	// 2. Weigh evidence by stance
	t, err := weigh(evidence)
	if err != nil {
		return errorAssessment(claim, evidence, err)
	}

	// 3. Signed score in [-1,1]
	denominator := t.s + t.r + neutralWeight*t.n + a.prior
	score := (t.s - t.r) / denominator
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return errorAssessment(claim, evidence, fmt.Errorf("non-finite score (S=%v R=%v N=%v)", t.s, t.r, t.n))
	}

	// 4. Confidence components
	volume := 1 - math.Pow(0.5, float64(t.directional()))

	majority := t.supportStrengths
	if t.r > t.s {
		majority = t.refuteStrengths
	}
	dispersion := stddev(majority)
	cohesion := 1 - dispersion

	conflict := 0.0
	if hi := math.Max(t.s, t.r); hi > 0 {
		conflict = math.Min(t.s, t.r) / hi
	}

	confidence := 0.5 + 0.5*math.Abs(score)*volume*cohesion - 0.25*conflict

	out.RawScore = t.s - t.r
	out.Score = score
	out.Verdict = Band(score, t.s > 0, t.r > 0)
	out.Confidence = model.Clamp01(confidence)
	out.Signals = signals(t, score, volume, dispersion, cohesion, conflict, a.prior)

	return out
}

// weigh sums clamped strengths per stance. A NaN strength is rejected.
func weigh(evidence []model.EvidenceItem) (tally, error) {
	var t tally
	for i, item := range evidence {
		if math.IsNaN(item.Strength) {
			return t, fmt.Errorf("evidence item %d (%s) has NaN strength", i, item.Source)
		}
		strength := model.Clamp01(item.Strength)

		switch model.ParseStance(string(item.Stance)) {
		case model.StanceSupports:
			t.supports++
			t.s += strength
			t.supportStrengths = append(t.supportStrengths, strength)
		case model.StanceRefutes:
			t.refutes++
			t.r += strength
			t.refuteStrengths = append(t.refuteStrengths, strength)
		default:
			t.neutral++
			t.n += strength
		}
	}
	return t, nil
}

// Band maps a signed score to a verdict. Scores in the middle band are
// MIXED when evidence points both ways, UNVERIFIED otherwise.
func Band(score float64, hasSupport, hasRefute bool) model.Verdict {
	switch {
	case math.IsNaN(score):
		return model.VerdictError
	case score >= TrueThreshold:
		return model.VerdictTrue
	case score >= MostlyTrueThreshold:
		return model.VerdictMostlyTrue
	case score <= -TrueThreshold:
		return model.VerdictFalse
	case score <= -MostlyTrueThreshold:
		return model.VerdictMostlyFalse
	case hasSupport && hasRefute:
		return model.VerdictMixed
	default:
		return model.VerdictUnverified
	}
}

// Failed is the ERROR assessment recorded for a claim whose verification
// could not complete
func Failed(claim string, err error) model.ClaimAssessment {
	return errorAssessment(claim, nil, err)
}

func errorAssessment(claim string, evidence []model.EvidenceItem, err error) model.ClaimAssessment {
	return model.ClaimAssessment{
		Claim:      claim,
		Evidence:   evidence,
		Verdict:    model.VerdictError,
		Confidence: 0,
		Error:      err.Error(),
		Signals: []model.Signal{{
			Type:        model.SignalAggregateError,
			Severity:    model.SeverityCritical,
			Description: "Assessment failed; result is inconclusive",
			Data:        map[string]interface{}{"error": err.Error()},
		}},
	}
}

// stddev is the population standard deviation; fewer than two values have none
func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / float64(len(values)))
}

func signals(t tally, score, volume, dispersion, cohesion, conflict, prior float64) []model.Signal {
	out := []model.Signal{
		{
			Type:        model.SignalEvidenceBalance,
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("Support %.2f vs refute %.2f (score %.2f)", t.s, t.r, score),
			Data: map[string]interface{}{
				"supports":       t.supports,
				"refutes":        t.refutes,
				"not_enough":     t.neutral,
				"support_weight": t.s,
				"refute_weight":  t.r,
				"neutral_weight": t.n,
				"prior":          prior,
				"score":          score,
				"formula":        "(S - R) / (S + R + 0.5*N + prior)",
			},
		},
		{
			Type:        model.SignalEvidenceVolume,
			Severity:    volumeSeverity(t.directional()),
			Description: fmt.Sprintf("%d directional evidence items", t.directional()),
			Data: map[string]interface{}{
				"directional": t.directional(),
				"volume":      volume,
				"formula":     "1 - 0.5^directional",
			},
		},
		{
			Type:        model.SignalCohesion,
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("Majority-stance strength spread %.2f", dispersion),
			Data: map[string]interface{}{
				"stddev":   dispersion,
				"cohesion": cohesion,
			},
		},
	}

	if conflict > 0 {
		severity := model.SeverityWarning
		if conflict >= 0.75 {
			severity = model.SeverityCritical
		}
		out = append(out, model.Signal{
			Type:        model.SignalConflict,
			Severity:    severity,
			Description: fmt.Sprintf("Conflicting evidence (ratio %.2f)", conflict),
			Data: map[string]interface{}{
				"conflict": conflict,
				"formula":  "min(S, R) / max(S, R)",
			},
		})
	}

	return out
}

func volumeSeverity(directional int) model.SignalSeverity {
	switch {
	case directional == 0:
		return model.SeverityCritical
	case directional < 2:
		return model.SeverityWarning
	default:
		return model.SeverityInfo
	}
}
