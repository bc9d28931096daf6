package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/claimlens/claimlens/internal/model"
)

// buildConfig assembles the effective configuration: defaults, then config
// file and CLAIMLENS_* environment values, then the well-known provider key
// variables.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("llm.base_url"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := viper.GetString("search.searxng_base_url"); v != "" {
		cfg.Search.SearXNGBaseURL = v
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetString("history.dir"); v != "" {
		cfg.History.Dir = v
	}

	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	cfg.Search.TavilyAPIKey = os.Getenv("TAVILY_API_KEY")
	cfg.Embed.APIKey = os.Getenv("OPENAI_API_KEY")

	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = defaultStateDir("cache")
	}
	if cfg.History.Dir == "" {
		cfg.History.Dir = defaultStateDir("")
	}

	cfg.Output.Verbose = verbose

	return cfg
}

func defaultStateDir(sub string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".claimlens", sub)
	}
	return filepath.Join(home, ".claimlens", sub)
}

// requireLLMKey fails early when the configured provider needs a key that
// is not set
func requireLLMKey(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	}
	return nil
}
