package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	anthropicDefaultModel = "claude-3-5-haiku-20241022"
	anthropicAPIVersion   = "2023-06-01"
)

// AnthropicProvider implements the Provider interface for Anthropic Claude models
type AnthropicProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	config     Config
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Messages    []anthropicMessage `json:"messages"`
	System      string             `json:"system,omitempty"`
	Temperature float32            `json:"temperature,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

type anthropicError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewAnthropicProvider creates a new Anthropic provider
func NewAnthropicProvider(config Config) (*AnthropicProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}

	return &AnthropicProvider{
		apiKey:  config.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: config.timeout(),
		},
		config: config,
	}, nil
}

// Name returns the provider name
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// IsAvailable sends a minimal completion to verify the key
func (p *AnthropicProvider) IsAvailable(ctx context.Context) bool {
	req := anthropicRequest{
		Model:     anthropicDefaultModel,
		MaxTokens: 10,
		Messages:  []anthropicMessage{{Role: "user", Content: "Hi"}},
	}

	if _, err := p.makeRequest(ctx, req); err != nil {
		p.config.logger().Warn("llm", "API check failed", map[string]interface{}{
			"provider": "anthropic",
			"error":    err,
		})
		return false
	}
	return true
}

// Generate sends the prompt to the Messages API
func (p *AnthropicProvider) Generate(ctx context.Context, prompt string) (string, error) {
	model := p.config.Model
	if model == "" {
		model = anthropicDefaultModel
	}

	apiReq := anthropicRequest{
		Model:       model,
		MaxTokens:   p.config.maxTokens(),
		System:      SystemPrompt,
		Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
		Temperature: p.config.Temperature,
	}

	resp, err := p.makeRequest(ctx, apiReq)
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("anthropic: %w", ErrEmptyResponse)
	}
	return text, nil
}

func (p *AnthropicProvider) makeRequest(ctx context.Context, apiReq anthropicRequest) (*anthropicResponse, error) {
	call := apiCall{
		client:   p.httpClient,
		endpoint: p.baseURL + "/v1/messages",
		headers: map[string]string{
			"x-api-key":         p.apiKey,
			"anthropic-version": anthropicAPIVersion,
		},
		apiMessage: func(body []byte) string {
			var apiErr anthropicError
			if json.Unmarshal(body, &apiErr) != nil || apiErr.Error.Message == "" {
				return ""
			}
			return apiErr.Error.Type + " - " + apiErr.Error.Message
		},
	}

	var resp anthropicResponse
	if err := call.do(ctx, apiReq, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
