package llm

import (
	"fmt"
	"os"

	"github.com/abhisek/aisurvival/internal/apperr"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "openai", "anthropic", "gemini", "openrouter", "mock"
	Provider string `yaml:"provider"`

	OpenAI     OpenAIConfig     `yaml:"openai"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "gpt-4o-mini"
	BaseURL string `yaml:"base_url"` // Optional. Override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "claude-haiku"
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "gemini-flash"
	BaseURL string `yaml:"base_url"` // Optional: custom endpoint
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "openai/gpt-4o-mini"
	BaseURL string `yaml:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with the models the diagnostic was tuned on.
func DefaultConfig() Config {
	return Config{
		Provider: "openai",
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "openai/gpt-4o-mini",
		},
	}
}

// ApplyEnv overrides cfg with AISURVIVAL_* environment variables.
func (c *Config) ApplyEnv() {
	setFromEnv(&c.Provider, "AISURVIVAL_LLM_PROVIDER")

	setFromEnv(&c.OpenAI.APIKey, "AISURVIVAL_OPENAI_API_KEY")
	setFromEnv(&c.OpenAI.Model, "AISURVIVAL_OPENAI_MODEL")
	setFromEnv(&c.OpenAI.BaseURL, "AISURVIVAL_OPENAI_BASE_URL")

	setFromEnv(&c.Anthropic.APIKey, "AISURVIVAL_ANTHROPIC_API_KEY")
	setFromEnv(&c.Anthropic.Model, "AISURVIVAL_ANTHROPIC_MODEL")

	setFromEnv(&c.Gemini.APIKey, "AISURVIVAL_GEMINI_API_KEY")
	setFromEnv(&c.Gemini.Model, "AISURVIVAL_GEMINI_MODEL")
	setFromEnv(&c.Gemini.BaseURL, "AISURVIVAL_GEMINI_BASE_URL")

	setFromEnv(&c.OpenRouter.APIKey, "AISURVIVAL_OPENROUTER_API_KEY")
	setFromEnv(&c.OpenRouter.Model, "AISURVIVAL_OPENROUTER_MODEL")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// hasKey reports whether the selected provider already has credentials.
func (c Config) hasKey() bool {
	switch c.Provider {
	case "openai":
		return c.OpenAI.APIKey != ""
	case "anthropic":
		return c.Anthropic.APIKey != ""
	case "gemini":
		return c.Gemini.APIKey != ""
	case "openrouter":
		return c.OpenRouter.APIKey != ""
	case "mock":
		return true
	}
	return false
}

// DiscoverConfig fills in credentials from the conventional vendor env vars
// (OPENAI_API_KEY, ANTHROPIC_API_KEY, GEMINI_API_KEY, OPENROUTER_API_KEY) when
// the configured provider has none. The configured provider wins if its key
// is present; otherwise the first vendor key found selects the provider, in
// OpenAI → Anthropic → Gemini → OpenRouter order. Returns false if nothing
// usable was found.
func DiscoverConfig(cfg Config) (Config, bool) {
	if cfg.hasKey() {
		return cfg, true
	}

	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return cfg, false
}

// Validate checks that the selected provider has its required API key set.
// Errors match apperr.ErrConfiguration.
func (c Config) Validate() error {
	switch c.Provider {
	case "openai", "anthropic", "gemini", "openrouter":
		if !c.hasKey() {
			return fmt.Errorf("%w: AISURVIVAL_%s_API_KEY is required for the %s provider",
				apperr.ErrConfiguration, envName(c.Provider), c.Provider)
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("%w: unknown LLM provider %q", apperr.ErrConfiguration, c.Provider)
	}
	return nil
}

func envName(provider string) string {
	switch provider {
	case "openai":
		return "OPENAI"
	case "anthropic":
		return "ANTHROPIC"
	case "gemini":
		return "GEMINI"
	default:
		return "OPENROUTER"
	}
}
