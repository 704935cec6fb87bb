package llm

import (
	"context"
	"sync/atomic"
	"time"
)

// MockProvider is a scripted Provider for tests and offline runs
type MockProvider struct {
	// Respond computes the answer; when nil, Response/Err are returned
	Respond func(prompt string) (string, error)

	Response  string
	Err       error
	Delay     time.Duration
	Available bool

	calls atomic.Int32
}

// Name returns the provider name
func (m *MockProvider) Name() string {
	return "mock"
}

// Generate returns the scripted response, honoring ctx during Delay
func (m *MockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	m.calls.Add(1)

	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(m.Delay):
		}
	}

	if m.Respond != nil {
		return m.Respond(prompt)
	}
	return m.Response, m.Err
}

// IsAvailable returns the scripted availability
func (m *MockProvider) IsAvailable(ctx context.Context) bool {
	return m.Available
}

// Calls returns how many times Generate was invoked
func (m *MockProvider) Calls() int {
	return int(m.calls.Load())
}
