package extract

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/ppiankov/veritas/internal/model"
)

// Sentence length bounds, in runes
const (
	minSentenceRunes = 15
	maxSentenceRunes = 500
)

// ClaimExtractor picks verifiable claims out of free text
type ClaimExtractor struct {
	keywords  []string
	verbs     map[string]bool
	maxClaims int
}

// NewClaimExtractor creates a new claim extractor; maxClaims <= 0 means no bound
func NewClaimExtractor(maxClaims int) *ClaimExtractor {
	return &ClaimExtractor{
		keywords: []string{
			"originated", "origin", "first", "introduced", "invented",
			"according to", "is defined as", "is legally", "under the law",
			"shall", "must", "is required", "established", "founded",
			"created", "discovered", "developed", "percent", "study",
			"studies", "scientists", "researchers", "reported", "announced",
			"confirmed", "proven", "causes", "cures", "prevents",
		},
		verbs: map[string]bool{
			"is": true, "are": true, "was": true, "were": true,
			"has": true, "have": true, "had": true, "will": true,
			"can": true, "cause": true, "contains": true, "killed": true,
		},
		maxClaims: maxClaims,
	}
}

// ExtractText returns the claims of plain text in input order. Non-empty
// input always yields at least one claim: when no sentence looks like an
// assertion the whole text is the claim.
func (e *ClaimExtractor) ExtractText(text string) []model.Claim {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	sentences := splitSentences(text)

	var claims []model.Claim
	for i, sentence := range sentences {
		if heuristic := e.classify(sentence); heuristic != "" {
			claims = append(claims, model.Claim{
				Text:      sentence,
				Heuristic: heuristic,
				Sentence:  i,
			})
		}
	}

	claims = dedupeClaims(claims)
	if len(claims) == 0 {
		claims = []model.Claim{{
			Text:      truncate(text, maxSentenceRunes),
			Heuristic: "whole-input",
		}}
	}

	if e.maxClaims > 0 && len(claims) > e.maxClaims {
		claims = claims[:e.maxClaims]
	}
	return claims
}

// Extract extracts claims from HTML content
func (e *ClaimExtractor) Extract(htmlContent string) ([]model.Claim, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}
	return e.ExtractText(collapseWhitespace(extractVisibleText(doc))), nil
}

// classify names the heuristic that marks sentence as a claim, or ""
func (e *ClaimExtractor) classify(sentence string) string {
	lower := strings.ToLower(sentence)
	for _, keyword := range e.keywords {
		if strings.Contains(lower, keyword) {
			return "keyword:" + keyword
		}
	}

	if strings.IndexFunc(sentence, unicode.IsDigit) >= 0 {
		return "numeric"
	}

	for _, word := range strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	}) {
		if e.verbs[word] {
			return "assertion:" + word
		}
	}
	return ""
}

// extractVisibleText extracts text nodes from HTML, skipping scripts/styles
func extractVisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "template":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

// splitSentences splits text into sentences (simple heuristic)
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		n := len([]rune(sentence))
		if n >= minSentenceRunes && n <= maxSentenceRunes {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	for i, r := range text {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// Look ahead to avoid splitting on abbreviations and decimals
			if i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t') {
				flush()
			}
		}
	}

	if current.Len() > 0 {
		flush()
	}

	return sentences
}

// dedupeClaims removes duplicate claims
func dedupeClaims(claims []model.Claim) []model.Claim {
	seen := make(map[string]bool)
	var unique []model.Claim

	for _, claim := range claims {
		key := strings.ToLower(strings.TrimSpace(claim.Text))
		if !seen[key] {
			seen[key] = true
			unique = append(unique, claim)
		}
	}

	return unique
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
