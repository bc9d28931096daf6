package model

import "time"

// Config is the complete claimlens configuration
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Search   SearchConfig   `yaml:"search"`
	LLM      LLMConfig      `yaml:"llm"`
	Embed    EmbedConfig    `yaml:"embed"`
	Classify ClassifyConfig `yaml:"classify"`
	Evidence EvidenceConfig `yaml:"evidence"`
	Verdict  VerdictConfig  `yaml:"verdict"`
	Cache    CacheConfig    `yaml:"cache"`
	History  HistoryConfig  `yaml:"history"`
	Output   OutputConfig   `yaml:"output"`
}

// HTTPConfig controls outbound HTTP behavior
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	HTTPProxy     string        `yaml:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy"`
	RespectRobots bool          `yaml:"respect_robots"`
	RatePerDomain float64       `yaml:"rate_per_domain"` // requests per second per domain
	RateBurst     int           `yaml:"rate_burst"`
}

// SearchConfig configures the web search collaborators
type SearchConfig struct {
	TavilyAPIKey   string `yaml:"tavily_api_key"`
	SearXNGBaseURL string `yaml:"searxng_base_url"`
	MaxResults     int    `yaml:"max_results"` // URLs returned per claim
	Timeout        int    `yaml:"timeout"`     // seconds
}

// LLMConfig configures the generation collaborator
type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, anthropic, ollama
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// EmbedConfig configures the embedding collaborator
type EmbedConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model"`
}

// ClassifyConfig bounds sentence segmentation
type ClassifyConfig struct {
	MinSentenceLen int `yaml:"min_sentence_len"`
	MaxSentenceLen int `yaml:"max_sentence_len"`
}

// EvidenceConfig bounds evidence gathering
type EvidenceConfig struct {
	MaxSourcesPerClaim int           `yaml:"max_sources_per_claim"`
	ChunksPerSource    int           `yaml:"chunks_per_source"`
	FetchTimeout       time.Duration `yaml:"fetch_timeout"`
	Concurrency        int           `yaml:"concurrency"`
	BatchSize          int           `yaml:"batch_size"`
	ContentMaxChars    int           `yaml:"content_max_chars"`
}

// VerdictConfig bounds verdict generation
type VerdictConfig struct {
	BatchSize int `yaml:"batch_size"`
}

// CacheConfig controls the article extraction cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// HistoryConfig controls the analysis history store
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	Limit   int    `yaml:"limit"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Claimlens/0.1 (+https://github.com/claimlens/claimlens)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
			RatePerDomain: 2.0,
			RateBurst:     5,
		},
		Search: SearchConfig{
			MaxResults: 3,
			Timeout:    20,
		},
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			Timeout:   60,
			MaxTokens: 4000,
		},
		Embed: EmbedConfig{
			Model: "text-embedding-3-small",
		},
		Classify: ClassifyConfig{
			MinSentenceLen: 30,
			MaxSentenceLen: 300,
		},
		Evidence: EvidenceConfig{
			MaxSourcesPerClaim: 3,
			ChunksPerSource:    3,
			FetchTimeout:       30 * time.Second,
			Concurrency:        10,
			BatchSize:          10,
			ContentMaxChars:    4000,
		},
		Verdict: VerdictConfig{
			BatchSize: 5,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		History: HistoryConfig{
			Enabled: true,
			Limit:   50,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
