package verify

import (
	"fmt"

	"github.com/ppiankov/veritas/internal/extract"
	"github.com/ppiankov/veritas/internal/model"
)

const (
	// minOverlap is the share of claim terms an item must mention to take a side
	minOverlap = 0.2

	// lexicalScale discounts term matching relative to oracle judgement
	lexicalScale = 0.5
)

var negationCues = map[string]bool{
	"not": true, "no": true, "never": true, "false": true, "myth": true,
	"hoax": true, "debunked": true, "incorrect": true, "untrue": true,
	"misleading": true, "fake": true, "disproved": true, "refuted": true,
}

// lexical judges an item by term overlap with the claim. An item that
// negates where the claim does not counts as refuting.
func (j *Judge) lexical(claim string, item model.EvidenceItem) model.EvidenceItem {
	out := item
	overlap, cue := LexicalStance(claim, item.Title+" "+item.Snippet)

	switch {
	case overlap < minOverlap:
		out.Stance = model.StanceNotEnoughInfo
		out.Strength = 0
		out.Reason = fmt.Sprintf("lexical: overlap %.2f below %.2f", overlap, minOverlap)
		return out
	case cue != "":
		out.Stance = model.StanceRefutes
		out.Reason = fmt.Sprintf("lexical: overlap %.2f, negation %q", overlap, cue)
	default:
		out.Stance = model.StanceSupports
		out.Reason = fmt.Sprintf("lexical: overlap %.2f", overlap)
	}
	out.Strength = model.Clamp01(lexicalScale*overlap) * item.Authority.Weight()
	return out
}

// LexicalStance returns the share of distinct claim terms found in text and
// the first negation cue text carries that the claim does not
func LexicalStance(claim, text string) (overlap float64, cue string) {
	claimTerms := make(map[string]bool)
	for _, term := range extract.Terms(claim) {
		claimTerms[term] = true
	}
	if len(claimTerms) == 0 {
		return 0, ""
	}

	matched := make(map[string]bool)
	for _, term := range extract.Terms(text) {
		if claimTerms[term] {
			matched[term] = true
			continue
		}
		if cue == "" && negationCues[term] {
			cue = term
		}
	}
	return float64(len(matched)) / float64(len(claimTerms)), cue
}
