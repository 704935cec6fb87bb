package extract

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/ppiankov/veritas/internal/model"
)

func TestClaimExtractor_BasicExtraction(t *testing.T) {
	extractor := NewClaimExtractor(0)

	text := "Laksa originated in Malaysia in the 15th century based on documentation. " +
		"According to historians, this culinary tradition spread to coastal regions. " +
		"Wow, what a lovely afternoon for everyone!"

	claims := extractor.ExtractText(text)

	if len(claims) != 2 {
		t.Fatalf("Expected 2 claims, got %d: %+v", len(claims), claims)
	}
	if claims[0].Heuristic != "keyword:originated" {
		t.Errorf("Expected heuristic keyword:originated, got '%s'", claims[0].Heuristic)
	}
	if claims[1].Heuristic != "keyword:according to" {
		t.Errorf("Expected heuristic keyword:according to, got '%s'", claims[1].Heuristic)
	}
	if claims[1].Sentence != 1 {
		t.Errorf("Expected sentence index 1, got %d", claims[1].Sentence)
	}
}

func TestClaimExtractor_Heuristics(t *testing.T) {
	extractor := NewClaimExtractor(0)

	tests := []struct {
		text string
		want string
	}{
		{"Scientists say the ocean is warming faster.", "keyword:scientists"},
		{"Unemployment fell to 3.5 last month here.", "numeric"},
		{"The Eiffel Tower is in Paris.", "assertion:is"},
		{"Vaccines cause autism in children", "assertion:cause"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			claims := extractor.ExtractText(tt.text)
			if len(claims) != 1 {
				t.Fatalf("Expected 1 claim, got %d", len(claims))
			}
			if claims[0].Heuristic != tt.want {
				t.Errorf("Expected heuristic %s, got %s", tt.want, claims[0].Heuristic)
			}
		})
	}
}

func TestClaimExtractor_WholeInputFallback(t *testing.T) {
	extractor := NewClaimExtractor(0)

	claims := extractor.ExtractText("Moon landing hoax")
	if len(claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(claims))
	}
	if claims[0].Text != "Moon landing hoax" || claims[0].Heuristic != "whole-input" {
		t.Errorf("Unexpected fallback claim: %+v", claims[0])
	}
}

func TestClaimExtractor_EmptyInput(t *testing.T) {
	extractor := NewClaimExtractor(0)
	if claims := extractor.ExtractText("   \n\t"); len(claims) != 0 {
		t.Errorf("Expected no claims from blank input, got %d", len(claims))
	}
}

func TestClaimExtractor_MaxClaims(t *testing.T) {
	extractor := NewClaimExtractor(2)

	text := "The river was first mapped in 1820. The bridge was established in 1901. " +
		"The museum was founded in 1950. The park was created in 1977."

	claims := extractor.ExtractText(text)
	if len(claims) != 2 {
		t.Fatalf("Expected 2 claims, got %d", len(claims))
	}
	if !strings.Contains(claims[0].Text, "1820") || !strings.Contains(claims[1].Text, "1901") {
		t.Errorf("Expected first claims in input order, got %+v", claims)
	}
}

func TestClaimExtractor_SkipScripts(t *testing.T) {
	extractor := NewClaimExtractor(0)

	doc := `
	<html>
	<head>
		<script>
			var text = "The system was first developed in 1995.";
		</script>
		<style>
			/* This originated from CSS */
		</style>
	</head>
	<body>
		<p>The product was first introduced in 2020.</p>
	</body>
	</html>
	`

	claims, err := extractor.Extract(doc)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, claim := range claims {
		if strings.Contains(claim.Text, "1995") {
			t.Error("Should not extract claims from script tags")
		}
		if strings.Contains(claim.Text, "CSS") {
			t.Error("Should not extract claims from style tags")
		}
	}

	if len(claims) != 1 || !strings.Contains(claims[0].Text, "2020") {
		t.Errorf("Expected the body claim, got %+v", claims)
	}
}

func TestClaimExtractor_Deduplication(t *testing.T) {
	extractor := NewClaimExtractor(0)

	doc := `
	<html>
	<body>
		<p>The system was first introduced in 1990.</p>
		<p>The system was first introduced in 1990.</p>
		<p>THE SYSTEM WAS FIRST INTRODUCED IN 1990.</p>
	</body>
	</html>
	`

	claims, err := extractor.Extract(doc)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(claims) != 1 {
		t.Errorf("Expected 1 unique claim after deduplication, got %d", len(claims))
	}
}

func TestClaimExtractor_EmptyHTML(t *testing.T) {
	extractor := NewClaimExtractor(0)

	claims, err := extractor.Extract(`<html><body></body></html>`)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(claims) != 0 {
		t.Errorf("Expected 0 claims from empty HTML, got %d", len(claims))
	}
}

func TestExtractVisibleText_SkipInvisibleElements(t *testing.T) {
	doc := `
	<html>
	<head>
		<script>var x = "script content";</script>
		<style>body { color: red; }</style>
	</head>
	<body>
		<p>Visible paragraph text.</p>
		<noscript>Noscript content</noscript>
		<iframe src="example.com">Iframe content</iframe>
		<p>Another visible paragraph.</p>
	</body>
	</html>
	`

	node, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Failed to parse HTML: %v", err)
	}

	text := extractVisibleText(node)

	if !strings.Contains(text, "Visible paragraph") {
		t.Error("Expected to extract visible paragraph text")
	}
	if !strings.Contains(text, "Another visible paragraph") {
		t.Error("Expected to extract second visible paragraph")
	}

	for _, hidden := range []string{"script content", "color: red", "Noscript content", "Iframe content"} {
		if strings.Contains(text, hidden) {
			t.Errorf("Should not extract %q", hidden)
		}
	}
}

func TestSplitSentences_BasicSplitting(t *testing.T) {
	text := "This is the first sentence that is long enough. This is the second sentence that also qualifies! And this is the third sentence here?"

	sentences := splitSentences(text)

	if len(sentences) != 3 {
		t.Errorf("Expected 3 sentences, got %d", len(sentences))
	}

	for _, sentence := range sentences {
		if sentence != strings.TrimSpace(sentence) {
			t.Errorf("Expected sentence to be trimmed: '%s'", sentence)
		}
	}
}

func TestSplitSentences_MinMaxLength(t *testing.T) {
	shortText := "Short."
	goodText := "This sentence is long enough to be considered valid for extraction purposes."
	longText := strings.Repeat("word ", 120) + "end."

	sentences := splitSentences(shortText + " " + goodText + " " + longText)

	if len(sentences) != 1 || sentences[0] != goodText {
		t.Errorf("Expected only the well-sized sentence, got %q", sentences)
	}
}

func TestSplitSentences_DecimalsDoNotSplit(t *testing.T) {
	sentences := splitSentences("Inflation reached 3.5 percent in the spring.")
	if len(sentences) != 1 {
		t.Errorf("Expected 1 sentence, got %q", sentences)
	}
}

func TestDedupeClaims_CaseInsensitive(t *testing.T) {
	claims := []model.Claim{
		{Text: "This claim was first introduced in 1990."},
		{Text: "This claim was first introduced in 1990. "},
		{Text: "THIS CLAIM WAS FIRST INTRODUCED IN 1990."},
		{Text: "Different claim that was established later."},
	}

	unique := dedupeClaims(claims)

	if len(unique) != 2 {
		t.Errorf("Expected 2 unique claims, got %d", len(unique))
	}
}
