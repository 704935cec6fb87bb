package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/veritas/internal/util"
)

// OllamaProvider implements the Provider interface for Ollama local models
type OllamaProvider struct {
	baseURL    string
	httpClient *http.Client
	config     Config
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	System  string        `json:"system,omitempty"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"` // Max tokens
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type ollamaError struct {
	Error string `json:"error"`
}

// NewOllamaProvider creates a new Ollama provider
func NewOllamaProvider(config Config) (*OllamaProvider, error) {
	if config.Model == "" {
		return nil, fmt.Errorf("ollama model must be specified (e.g., llama3.1:8b, mistral)")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	// Local models are slower to answer than hosted APIs
	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &OllamaProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
			},
		},
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// IsAvailable checks that the Ollama daemon answers /api/tags
func (p *OllamaProvider) IsAvailable(ctx context.Context) bool {
	url := fmt.Sprintf("%s/api/tags", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		p.config.logger().Warn("llm", "Ollama availability check failed: request creation", map[string]interface{}{
			"error": err,
		})
		return false
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.config.logger().Warn("llm", "Ollama availability check failed: connection", map[string]interface{}{
			"base_url": p.baseURL,
			"error":    err,
		})
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		p.config.logger().Warn("llm", "Ollama availability check failed: unexpected status", map[string]interface{}{
			"base_url": p.baseURL,
			"status":   resp.StatusCode,
		})
		return false
	}

	return true
}

// Generate runs a non-streaming completion, asking Ollama for JSON output
func (p *OllamaProvider) Generate(ctx context.Context, prompt string) (string, error) {
	apiReq := ollamaRequest{
		Model:  p.config.Model,
		Prompt: prompt,
		Stream: false,
		System: SystemPrompt,
		Format: "json",
		Options: ollamaOptions{
			Temperature: p.config.Temperature,
			NumPredict:  p.config.maxTokens(),
		},
	}

	resp, err := p.makeRequest(ctx, apiReq)
	if err != nil {
		return "", fmt.Errorf("ollama API error: %w", err)
	}

	text := strings.TrimSpace(resp.Response)
	if text == "" {
		return "", fmt.Errorf("ollama: %w", ErrEmptyResponse)
	}
	return text, nil
}

func (p *OllamaProvider) makeRequest(ctx context.Context, apiReq ollamaRequest) (*ollamaResponse, error) {
	call := apiCall{
		client:   p.httpClient,
		endpoint: p.baseURL + "/api/generate",
		apiMessage: func(body []byte) string {
			var apiErr ollamaError
			if json.Unmarshal(body, &apiErr) != nil {
				return ""
			}
			return apiErr.Error
		},
	}

	var resp ollamaResponse
	if err := call.do(ctx, apiReq, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
