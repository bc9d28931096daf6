package llm

import (
	"context"

	"github.com/claimlens/claimlens/internal/model"
)

// Provider is the generation collaborator. Every call is treated as
// nondeterministic and fallible; callers validate and normalize the output
// and degrade to placeholder results when it cannot be parsed.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a prompt and returns the raw text response
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest is the provider-agnostic input to a generation call
type CompletionRequest struct {
	// System sets the system prompt (provider-specific placement)
	System string

	// Prompt is the user-facing prompt body
	Prompt string

	// MaxTokens limits the response length; 0 uses the configured default
	MaxTokens int

	// Temperature controls sampling; kept low for classification work
	Temperature float64
}

// Config holds LLM provider configuration
type Config struct {
	Provider  string // "openai", "anthropic", "ollama", ""
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int

	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "openai",
		Timeout:   60,
		MaxTokens: 4000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:  mc.Provider,
		Model:     mc.Model,
		APIKey:    mc.APIKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
	}
}
