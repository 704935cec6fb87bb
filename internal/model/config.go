package model

import "time"

// Config is the complete runtime configuration
type Config struct {
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Retrieval RetrievalConfig `yaml:"retrieval" mapstructure:"retrieval"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Authority AuthorityConfig `yaml:"authority" mapstructure:"authority"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// LLMConfig configures the judgment oracle
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"` // gemini, openai, anthropic, ollama, none
	Model       string  `yaml:"model" mapstructure:"model"`
	APIKey      string  `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL     string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout     int     `yaml:"timeout" mapstructure:"timeout"` // seconds, applied per call
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float32 `yaml:"temperature" mapstructure:"temperature"`
}

// CallTimeout is the per-call oracle deadline, 30s when unset
func (c LLMConfig) CallTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// CacheConfig configures the verified-claim cache
type CacheConfig struct {
	Enabled   bool    `yaml:"enabled" mapstructure:"enabled"`
	Backend   string  `yaml:"backend" mapstructure:"backend"` // sqlite or memory
	Path      string  `yaml:"path" mapstructure:"path"`
	Window    int     `yaml:"window" mapstructure:"window"`       // most recent rows compared on lookup
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"` // hit requires ratio strictly above
	Retention int     `yaml:"retention" mapstructure:"retention"` // hours, memory backend only; 0 keeps forever
}

// RetrievalConfig configures evidence retrieval
type RetrievalConfig struct {
	IndexPath       string   `yaml:"index_path" mapstructure:"index_path"`
	TopK            int      `yaml:"top_k" mapstructure:"top_k"`
	MinRelevance    float64  `yaml:"min_relevance" mapstructure:"min_relevance"`
	WebEnabled      bool     `yaml:"web_enabled" mapstructure:"web_enabled"`
	WikiEnabled     bool     `yaml:"wikipedia_enabled" mapstructure:"wikipedia_enabled"`
	WikiLang        string   `yaml:"wikipedia_lang" mapstructure:"wikipedia_lang"`
	WikiAPI         string   `yaml:"wikipedia_api,omitempty" mapstructure:"wikipedia_api"`
	SearchURL       string   `yaml:"search_url" mapstructure:"search_url"` // %s is replaced with the escaped query
	ResultSelector  string   `yaml:"result_selector" mapstructure:"result_selector"`
	LinkSelector    string   `yaml:"link_selector" mapstructure:"link_selector"`
	SnippetSelector string   `yaml:"snippet_selector" mapstructure:"snippet_selector"`
	UserAgent       string   `yaml:"user_agent" mapstructure:"user_agent"`
	Timeout         int      `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxBodyBytes    int64    `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots   bool     `yaml:"respect_robots" mapstructure:"respect_robots"`
	RequestsPerSec  float64  `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize       int      `yaml:"burst_size" mapstructure:"burst_size"`
	HTTPProxy       string   `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy      string   `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy         string   `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
	ExcludeDomains  []string `yaml:"exclude_domains,omitempty" mapstructure:"exclude_domains"`
}

// PipelineConfig configures claim processing
type PipelineConfig struct {
	MaxClaims   int  `yaml:"max_claims" mapstructure:"max_claims"`
	Workers     int  `yaml:"workers" mapstructure:"workers"`
	DirectJudge bool `yaml:"direct_judge" mapstructure:"direct_judge"` // ask the oracle for its own verdict as extra evidence
}

// AuthorityConfig configures source authority classification
type AuthorityConfig struct {
	PrimaryDomains   []string          `yaml:"primary_domains" mapstructure:"primary_domains"`
	SecondaryDomains []string          `yaml:"secondary_domains" mapstructure:"secondary_domains"`
	DomainMap        map[string]string `yaml:"domain_map,omitempty" mapstructure:"domain_map"`
	PathPatterns     []PathPattern     `yaml:"path_patterns,omitempty" mapstructure:"path_patterns"`
}

// PathPattern maps a URL path regex to a tier name
type PathPattern struct {
	Pattern string `yaml:"pattern" mapstructure:"pattern"`
	Tier    string `yaml:"tier" mapstructure:"tier"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	File       string `yaml:"file,omitempty" mapstructure:"file"`
	JSON       bool   `yaml:"json" mapstructure:"json"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "gemini",
			Model:       "gemini-2.5-flash",
			Timeout:     30,
			MaxTokens:   1024,
			Temperature: 0.2,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Backend:   "sqlite",
			Path:      "veritas.db",
			Window:    20,
			Threshold: 0.85,
		},
		Retrieval: RetrievalConfig{
			TopK:            3,
			MinRelevance:    0.05,
			WebEnabled:      false,
			WikiEnabled:     false,
			WikiLang:        "en",
			SearchURL:       "https://html.duckduckgo.com/html/?q=%s",
			ResultSelector:  ".result",
			LinkSelector:    "a.result__a",
			SnippetSelector: ".result__snippet",
			UserAgent:       "VeritasBot/0.1 (+https://github.com/ppiankov/veritas)",
			Timeout:         15,
			MaxBodyBytes:    2 * 1024 * 1024,
			RespectRobots:   true,
			RequestsPerSec:  1,
			BurstSize:       2,
		},
		Pipeline: PipelineConfig{
			MaxClaims:   5,
			Workers:     3,
			DirectJudge: true,
		},
		Authority: AuthorityConfig{
			PrimaryDomains: []string{
				"gov", "gov.uk", "europa.eu", "who.int", "un.org",
				"nasa.gov", "nih.gov", "arxiv.org", "nature.com", "science.org",
			},
			SecondaryDomains: []string{
				"wikipedia.org", "britannica.com", "reuters.com", "apnews.com",
				"bbc.co.uk", "bbc.com", "snopes.com", "politifact.com", "factcheck.org",
			},
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}
