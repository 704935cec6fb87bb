package llm

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/veritas/internal/model"
)

// NewProvider creates a new LLM provider based on configuration.
// An empty or "none" provider returns (nil, nil): the oracle is disabled
// and every consumer runs its fallback path.
func NewProvider(config Config) (Provider, error) {
	var (
		provider Provider
		err      error
	)

	switch strings.ToLower(config.Provider) {
	case "gemini", "google":
		provider, err = unwrap(NewGeminiProvider(config))

	case "openai":
		provider, err = unwrap(NewOpenAIProvider(config))

	case "anthropic", "claude":
		provider, err = unwrap(NewAnthropicProvider(config))

	case "ollama":
		provider, err = unwrap(NewOllamaProvider(config))

	case "", "none":
		return nil, nil

	default:
		return nil, fmt.Errorf("%w: %s (supported: gemini, openai, anthropic, ollama, none)", ErrUnknownProvider, config.Provider)
	}

	if err != nil {
		return nil, err
	}
	return provider, nil
}

// unwrap keeps a typed nil pointer from becoming a non-nil Provider
func unwrap[P Provider](p P, err error) (Provider, error) {
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ConfigFromModel converts model.Config to llm.Config, filling the API key
// from the provider's conventional environment variable when unset.
func ConfigFromModel(cfg *model.Config) Config {
	c := Config{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Timeout:     cfg.LLM.Timeout,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		HTTPProxy:   cfg.Retrieval.HTTPProxy,
		HTTPSProxy:  cfg.Retrieval.HTTPSProxy,
		NoProxy:     cfg.Retrieval.NoProxy,
	}
	if c.APIKey == "" {
		c.APIKey = APIKeyFromEnv(c.Provider)
	}
	if c.BaseURL == "" && strings.EqualFold(c.Provider, "ollama") {
		c.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}
	return c
}

// APIKeyFromEnv returns the API key environment value for a provider
func APIKeyFromEnv(provider string) string {
	switch strings.ToLower(provider) {
	case "gemini", "google":
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
		return os.Getenv("GOOGLE_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic", "claude":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}
