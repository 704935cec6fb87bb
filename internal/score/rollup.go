package score

import (
	"github.com/ppiankov/veritas/internal/model"
)

// AverageConfidence is the mean of per-claim confidence percentages
// scaled back to [0,1]. An empty report list yields 0.5.
func AverageConfidence(reports []model.DetailedReport) float64 {
	if len(reports) == 0 {
		return 0.5
	}
	total := 0.0
	for _, r := range reports {
		total += r.Result.ConfidencePercentage / 100
	}
	return model.Clamp01(total / float64(len(reports)))
}

// Overall combines per-claim assessments into one verdict for the input.
// ERROR claims are ignored unless every claim errored.
func Overall(assessments []model.ClaimAssessment) model.Verdict {
	if len(assessments) == 0 {
		return model.VerdictUnverified
	}

	var (
		sum      float64
		counted  int
		positive bool
		negative bool
		mixed    bool
		support  bool
		refute   bool
	)
	for _, a := range assessments {
		if a.Verdict == model.VerdictError {
			continue
		}
		counted++
		sum += a.Score

		switch a.Verdict {
		case model.VerdictTrue, model.VerdictMostlyTrue:
			positive = true
		case model.VerdictFalse, model.VerdictMostlyFalse:
			negative = true
		case model.VerdictMixed:
			mixed = true
		}
		if a.RawScore > 0 || a.Verdict == model.VerdictMixed {
			support = true
		}
		if a.RawScore < 0 || a.Verdict == model.VerdictMixed {
			refute = true
		}
	}

	if counted == 0 {
		return model.VerdictError
	}
	// Claims landing on opposite sides make the input as a whole mixed
	if positive && negative {
		return model.VerdictMixed
	}

	verdict := Band(sum/float64(counted), support, refute)
	if verdict == model.VerdictUnverified && mixed {
		return model.VerdictMixed
	}
	return verdict
}

// Reports builds the per-claim summary rows
func Reports(assessments []model.ClaimAssessment) []model.DetailedReport {
	reports := make([]model.DetailedReport, 0, len(assessments))
	for _, a := range assessments {
		reports = append(reports, model.DetailedReport{
			Claim: a.Claim,
			Result: model.ReportResult{
				Verdict:              a.Verdict,
				ConfidencePercentage: a.ConfidencePercentage(),
			},
		})
	}
	return reports
}
