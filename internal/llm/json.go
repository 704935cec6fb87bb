package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoJSON is returned when a response contains no JSON object at all
var ErrNoJSON = errors.New("no JSON object in response")

// ExtractJSON locates the JSON object inside an oracle response.
// A ```json fenced block wins; otherwise the span from the first '{'
// to the last '}' is used.
func ExtractJSON(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrNoJSON
	}

	if block, ok := fencedBlock(trimmed); ok {
		trimmed = block
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("%w (payload snippet: %s)", ErrNoJSON, snippet(content))
	}
	return strings.TrimSpace(trimmed[start : end+1]), nil
}

// DecodeJSON extracts and unmarshals the JSON object in content into target
func DecodeJSON(content string, target any) error {
	payload, err := ExtractJSON(content)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(payload), target); err != nil {
		return fmt.Errorf("decode oracle JSON: %w (payload snippet: %s)", err, snippet(payload))
	}
	return nil
}

// fencedBlock returns the body of the first ```json fence, or of a
// bare ``` fence when the whole response is fenced.
func fencedBlock(content string) (string, bool) {
	lower := strings.ToLower(content)
	open := strings.Index(lower, "```json")
	skip := len("```json")
	if open < 0 {
		if !strings.HasPrefix(content, "```") {
			return "", false
		}
		open, skip = 0, 3
	}

	body := content[open+skip:]
	if end := strings.Index(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body), true
}

func snippet(content string) string {
	clean := strings.Join(strings.Fields(content), " ")
	if clean == "" {
		return "<empty>"
	}
	const limit = 160
	runes := []rune(clean)
	if len(runes) > limit {
		clean = string(runes[:limit]) + "..."
	}
	return clean
}

// FlexFloat accepts 0.8 as well as "0.8"
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("number: %w", err)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("number: %w", err)
	}
	*f = FlexFloat(n)
	return nil
}
