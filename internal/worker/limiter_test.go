package worker

import (
	"context"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}

	l3 := NewLimiter(0, 1)
	if l3.defaultRate != rate.Inf {
		t.Errorf("expected unlimited rate for 0 rps, got %v", l3.defaultRate)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/foo"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	if err := limiter.Wait(ctx, "http://google.com"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	if err := limiter.Wait(ctx, "/relative/path"); err == nil {
		t.Error("expected error for URL without host")
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	limiter := NewLimiter(0.1, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_ = limiter.Wait(ctx, "http://example.com")
	if err := limiter.Wait(ctx, "http://example.com"); err == nil {
		t.Error("expected second wait to fail once the context expires")
	}
}

func TestLimiter_RateLimit(t *testing.T) {
	limiter := NewLimiter(1, 1)
	ctx := context.Background()
	url := "http://example.com"

	if err := limiter.Wait(ctx, url); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	// burst 1: the token is consumed
	if limiter.Allow(url) {
		t.Errorf("expected allow to fail (exhausted tokens)")
	}

	// hosts are case-insensitive
	if limiter.Allow("http://EXAMPLE.com/other") {
		t.Errorf("expected same limiter for differently cased host")
	}

	if !limiter.Allow("http://other.com") {
		t.Errorf("expected allow for other domain")
	}
}

func TestLimiter_SetDomainRate(t *testing.T) {
	limiter := NewLimiter(10, 10)
	domain := "slow.com"

	limiter.SetDomainRate(domain, 0.1, 1)

	if !limiter.Allow("http://" + domain) {
		t.Errorf("first request should pass")
	}

	if limiter.Allow("http://" + domain) {
		t.Errorf("second request should fail")
	}

	if !limiter.Allow("http://fast.com") {
		t.Errorf("other domain should pass")
	}
}

func TestLimiter_ApplyCrawlDelay(t *testing.T) {
	limiter := NewLimiter(100, 5)

	limiter.ApplyCrawlDelay("https://polite.org/robots.txt", 10*time.Second)

	if !limiter.Allow("https://polite.org/a") {
		t.Error("first request should pass")
	}
	if limiter.Allow("https://polite.org/b") {
		t.Error("crawl delay should block the second request")
	}

	// a looser delay never relaxes an existing stricter limit
	limiter.ApplyCrawlDelay("https://polite.org/", time.Millisecond)
	if got := limiter.getLimiter("polite.org").Limit(); got != rate.Every(10*time.Second) {
		t.Errorf("expected limit to stay at crawl delay, got %v", got)
	}
}

func TestExtractHost(t *testing.T) {
	host, err := extractHost("http://Example.com:8080/foo")
	if err != nil {
		t.Fatalf("extractHost failed: %v", err)
	}
	if host != "example.com:8080" {
		t.Errorf("expected example.com:8080, got %s", host)
	}

	if _, err := extractHost("::invalid"); err == nil {
		t.Errorf("expected error for invalid URL")
	}
}
