package util

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/temoto/robotstxt"
)

// robotsTTL bounds how long a parsed robots.txt is trusted
const robotsTTL = 6 * time.Hour

// RobotsChecker checks robots.txt compliance before evidence pages are fetched
type RobotsChecker struct {
	cache      *cache.Cache
	httpClient *http.Client
	userAgent  string
	agent      string
}

// NewRobotsChecker creates a new robots.txt checker
func NewRobotsChecker(userAgent string, timeout time.Duration, client *http.Client) *RobotsChecker {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &RobotsChecker{
		cache:      cache.New(robotsTTL, robotsTTL/2),
		httpClient: client,
		userAgent:  userAgent,
		agent:      NormalizeUserAgent(userAgent),
	}
}

// CanFetch checks if the URL can be fetched according to robots.txt.
// Returns (allowed, crawlDelay). Unreachable robots.txt allows the fetch.
func (r *RobotsChecker) CanFetch(ctx context.Context, rawURL string) (bool, time.Duration) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false, 0
	}

	data, err := r.robotsFor(ctx, parsed)
	if err != nil {
		return true, 0
	}

	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}

	// TestAgent honors the allow-all/disallow-all states FindGroup cannot see
	allowed := data.TestAgent(path, r.agent)
	return allowed, data.FindGroup(r.agent).CrawlDelay
}

// IsAllowed is a convenience method that returns only the allowed status
func (r *RobotsChecker) IsAllowed(ctx context.Context, rawURL string) bool {
	allowed, _ := r.CanFetch(ctx, rawURL)
	return allowed
}

func (r *RobotsChecker) robotsFor(ctx context.Context, target *url.URL) (*robotstxt.RobotsData, error) {
	key := target.Scheme + "://" + target.Host
	if cached, ok := r.cache.Get(key); ok {
		return cached.(*robotstxt.RobotsData), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, key+"/robots.txt", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// FromResponse maps 4xx to allow-all and 5xx to disallow-all
	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	r.cache.Set(key, data, cache.DefaultExpiration)
	return data, nil
}

// Clear drops every cached robots.txt
func (r *RobotsChecker) Clear() {
	r.cache.Flush()
}

// NormalizeUserAgent reduces a user agent string to its product token
// ("VeritasBot/0.1 (+url)" -> "VeritasBot")
func NormalizeUserAgent(ua string) string {
	parts := strings.Fields(ua)
	if len(parts) == 0 {
		return ua
	}
	return strings.Split(parts[0], "/")[0]
}
