package retrieve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/veritas/internal/util"
	"github.com/ppiankov/veritas/internal/worker"
)

func noSleep(t *testing.T) {
	t.Helper()
	orig := fetchSleepFunc
	fetchSleepFunc = func(time.Duration) {}
	t.Cleanup(func() { fetchSleepFunc = orig })
}

func newTestFetcher(opts ...FetcherOption) *Fetcher {
	return NewFetcher(5*time.Second, "VeritasBot/0.1 (+test)", 1<<20, "", "", "", opts...)
}

func TestFetch_Success(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<html><body>OK</body></html>")
	}))
	defer server.Close()

	result, err := newTestFetcher().Fetch(context.Background(), server.URL+"/news/moon-landing-anniversary.html")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.HTML != "<html><body>OK</body></html>" {
		t.Errorf("Unexpected HTML: %s", result.HTML)
	}
	if result.Subject != "moon landing anniversary" {
		t.Errorf("Unexpected subject: %s", result.Subject)
	}
	if result.ContentType != "text/html" {
		t.Errorf("Unexpected content type: %s", result.ContentType)
	}
	if gotUA != "VeritasBot/0.1 (+test)" {
		t.Errorf("Unexpected user agent: %s", gotUA)
	}
}

func TestFetch_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "0123456789")
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, "ua", 4, "", "", "")
	result, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.HTML != "0123" {
		t.Errorf("Expected truncated body, got %q", result.HTML)
	}
}

func TestFetchWithRetry_TransientThenSuccess(t *testing.T) {
	noSleep(t)
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = fmt.Fprint(w, "<html>OK</html>")
	}))
	defer server.Close()

	result, err := newTestFetcher().FetchWithRetry(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if result.HTML != "<html>OK</html>" {
		t.Errorf("Unexpected HTML: %s", result.HTML)
	}
	if attempts.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts.Load())
	}
}

func TestFetchWithRetry_PermanentFailure(t *testing.T) {
	noSleep(t)
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestFetcher().FetchWithRetry(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for 404, got nil")
	}
	if got := err.Error(); got != "unexpected status: 404 Not Found" {
		t.Errorf("Unexpected error: %s", got)
	}
	if attempts.Load() != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts.Load())
	}
}

func TestFetchWithRetry_AllRetriesExhausted(t *testing.T) {
	noSleep(t)
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestFetcher().FetchWithRetry(context.Background(), server.URL)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 status error, got %v", err)
	}
	if attempts.Load() != fetchMaxAttempts {
		t.Errorf("Expected %d attempts, got %d", fetchMaxAttempts, attempts.Load())
	}
}

func TestFetch_RobotsDisallowed(t *testing.T) {
	var pageHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: VeritasBot\nDisallow: /private\n")
			return
		}
		pageHits.Add(1)
		_, _ = fmt.Fprint(w, "<html>page</html>")
	}))
	defer server.Close()

	robots := util.NewRobotsChecker("VeritasBot/0.1 (+test)", 5*time.Second, server.Client())
	f := newTestFetcher(WithRobots(robots), WithLimiter(worker.NewLimiter(0, 1)))

	_, err := f.FetchWithRetry(context.Background(), server.URL+"/private/doc")
	if !errors.Is(err, ErrDisallowed) {
		t.Fatalf("Expected ErrDisallowed, got %v", err)
	}

	if _, err := f.Fetch(context.Background(), server.URL+"/public/doc"); err != nil {
		t.Fatalf("Expected public page to be fetched, got %v", err)
	}
	if pageHits.Load() != 1 {
		t.Errorf("Expected exactly 1 page hit, got %d", pageHits.Load())
	}
}

func TestIsRetryableFetchError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"503", &StatusError{Code: 503}, true},
		{"500", &StatusError{Code: 500}, true},
		{"429", &StatusError{Code: 429}, true},
		{"404", &StatusError{Code: 404}, false},
		{"403", &StatusError{Code: 403}, false},
		{"wrapped 502", fmt.Errorf("outer: %w", &StatusError{Code: 502}), true},
		{"disallowed", fmt.Errorf("%w: x", ErrDisallowed), false},
		{"canceled", context.Canceled, false},
		{"plain", errors.New("read body: unexpected EOF"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableFetchError(tt.err); got != tt.retryable {
				t.Errorf("isRetryableFetchError(%v) = %v, want %v", tt.err, got, tt.retryable)
			}
		})
	}
}

func TestExtractSubject(t *testing.T) {
	tests := map[string]string{
		"https://example.com/":                         "example.com",
		"https://example.com/wiki/Great_Wall_of_China": "Great Wall of China",
		"https://example.com/news/some-story.html":     "some story",
	}
	for input, want := range tests {
		if got := extractSubject(input); got != want {
			t.Errorf("extractSubject(%q) = %q, want %q", input, got, want)
		}
	}
}
