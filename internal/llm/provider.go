package llm

import (
	"context"
	"errors"
	"time"

	"github.com/ppiankov/veritas/internal/logging"
)

// Provider defines the interface for LLM providers used as judgment oracles
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate sends a single prompt and returns the raw completion text.
	// Implementations make exactly one attempt; callers decide how to degrade.
	Generate(ctx context.Context, prompt string) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ErrUnknownProvider is returned by NewProvider for unsupported provider names
var ErrUnknownProvider = errors.New("unknown LLM provider")

// ErrEmptyResponse is returned when the oracle answers with no content
var ErrEmptyResponse = errors.New("empty response from LLM")

// SystemPrompt frames every oracle call
const SystemPrompt = "You are a careful fact-checking assistant. Answer only with the JSON object requested, without commentary."

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "gemini", "openai", "anthropic", "ollama", "" (disabled)
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for Gemini/OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, OpenAI-compatible gateways)
	BaseURL string

	// Timeout for each Generate call
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	Temperature float32

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string

	// Logger receives availability diagnostics; nil discards them
	Logger logging.Logger
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:    "gemini",
		Model:       GeminiDefaultModel,
		Timeout:     30,
		MaxTokens:   1024,
		Temperature: 0.2,
	}
}

// timeout returns the per-call deadline, defaulting to 30s
func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

func (c Config) logger() logging.Logger {
	if c.Logger == nil {
		return logging.NewNop()
	}
	return c.Logger
}

func (c Config) maxTokens() int {
	if c.MaxTokens <= 0 {
		return 1024
	}
	return c.MaxTokens
}
