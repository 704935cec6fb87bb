package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const (
	// GeminiBaseURL is Google's OpenAI-compatible endpoint
	GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

	// GeminiDefaultModel is used when no model is configured for gemini
	GeminiDefaultModel = "gemini-2.5-flash"
)

// OpenAIProvider implements the Provider interface for OpenAI-compatible chat APIs
type OpenAIProvider struct {
	client *openai.Client
	config Config
	name   string
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return newChatProvider("openai", config), nil
}

// NewGeminiProvider creates a provider for Gemini through its OpenAI-compatible endpoint
func NewGeminiProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if config.BaseURL == "" {
		config.BaseURL = GeminiBaseURL
	}
	if config.Model == "" {
		config.Model = GeminiDefaultModel
	}
	return newChatProvider("gemini", config), nil
}

func newChatProvider(name string, config Config) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(config.BaseURL, "/")
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
		name:   name,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return p.name
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.config.timeout())
	defer cancel()

	// Listing models is the cheapest authenticated call
	if _, err := p.client.ListModels(ctx); err != nil {
		p.config.logger().Warn("llm", "API check failed", map[string]interface{}{
			"provider": p.name,
			"error":    err,
		})
		return false
	}
	return true
}

// Generate runs one chat completion for the prompt
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	model := p.config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.timeout())
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   p.config.maxTokens(),
		Temperature: p.config.Temperature,
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("%s API error: %w", p.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", p.name, ErrEmptyResponse)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%s: %w", p.name, ErrEmptyResponse)
	}
	return text, nil
}
