package extract

import (
	"net/url"
	"strings"
)

// ResolveURL resolves href against base. Anchors, javascript:, mailto: and
// non-http(s) targets resolve to "".
func ResolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}

	if strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := parsed
	if base != nil {
		resolved = base.ResolveReference(parsed)
	}

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	return resolved.String()
}

// UnwrapRedirect returns the target of a search-engine redirect link
// (a "uddg" or "url" query parameter), or rawURL unchanged.
func UnwrapRedirect(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	for _, key := range []string{"uddg", "url", "q"} {
		target := query.Get(key)
		if target == "" {
			continue
		}
		if t, err := url.Parse(target); err == nil && (t.Scheme == "http" || t.Scheme == "https") && t.Host != "" {
			return t.String()
		}
	}
	return rawURL
}

// Host returns the lowercased host of rawURL without port
func Host(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}

// MatchesDomain reports whether host equals domain or is a subdomain of it
func MatchesDomain(host, domain string) bool {
	host = strings.ToLower(host)
	domain = strings.ToLower(strings.TrimPrefix(domain, "."))
	return host == domain || strings.HasSuffix(host, "."+domain)
}
