package extract

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	markupTag     = regexp.MustCompile(`(?i)<\s*/?\s*(html|head|body|p|div|span|br|a|article|section|main|h[1-6]|ul|ol|li|table|script|style)\b[^>]*>`)
)

// Preprocess turns raw user input into clean text: markup is reduced to its
// visible text, entities are decoded and whitespace is collapsed.
func Preprocess(input string) string {
	text := input
	if LooksLikeHTML(input) {
		if doc, err := html.Parse(strings.NewReader(input)); err == nil {
			text = extractVisibleText(doc)
		}
	} else {
		text = html.UnescapeString(text)
	}
	return collapseWhitespace(text)
}

// LooksLikeHTML reports whether input contains common HTML tags
func LooksLikeHTML(input string) bool {
	return markupTag.MatchString(input)
}

// IsURL reports whether input is a single absolute http(s) URL
func IsURL(input string) bool {
	s := strings.TrimSpace(input)
	if s == "" || strings.ContainsAny(s, " \t\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
