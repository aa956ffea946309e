package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "mock"
	Provider string `yaml:"provider"`

	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`

	// Timeout bounds a single oracle call including retries.
	Timeout time.Duration `yaml:"timeout"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "gemini-3-flash"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "gpt-mini"
	BaseURL string `yaml:"base_url"` // Optional. Any OpenAI-compatible endpoint.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "claude-haiku"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "google/gemini-2.5-flash"
	BaseURL string `yaml:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Gemini: GeminiConfig{
			Model: "gemini-3-flash",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 45 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overlays EDUCAREER_* variables onto c. When no provider was
// named explicitly and the configured one has no key, the first provider
// found by DiscoverConfig is selected instead.
func (c *Config) ApplyEnv() {
	explicit := false
	if p := os.Getenv("EDUCAREER_LLM_PROVIDER"); p != "" {
		c.Provider = p
		explicit = true
	}

	setIf(&c.Gemini.APIKey, "EDUCAREER_GEMINI_API_KEY")
	setIf(&c.Gemini.Model, "EDUCAREER_GEMINI_MODEL")

	setIf(&c.OpenAI.APIKey, "EDUCAREER_OPENAI_API_KEY")
	setIf(&c.OpenAI.Model, "EDUCAREER_OPENAI_MODEL")
	setIf(&c.OpenAI.BaseURL, "EDUCAREER_OPENAI_BASE_URL")

	setIf(&c.Anthropic.APIKey, "EDUCAREER_ANTHROPIC_API_KEY")
	setIf(&c.Anthropic.Model, "EDUCAREER_ANTHROPIC_MODEL")

	setIf(&c.OpenRouter.APIKey, "EDUCAREER_OPENROUTER_API_KEY")
	setIf(&c.OpenRouter.Model, "EDUCAREER_OPENROUTER_MODEL")

	if v := os.Getenv("EDUCAREER_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}

	if explicit || c.hasKey() {
		return
	}
	if found, ok := DiscoverConfig(); ok {
		c.Provider = found.Provider
		switch found.Provider {
		case ProviderGemini:
			c.Gemini.APIKey = found.Gemini.APIKey
		case ProviderOpenAI:
			c.OpenAI.APIKey = found.OpenAI.APIKey
		case ProviderAnthropic:
			c.Anthropic.APIKey = found.Anthropic.APIKey
		case ProviderOpenRouter:
			c.OpenRouter.APIKey = found.OpenRouter.APIKey
		}
	}
}

func setIf(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func (c Config) hasKey() bool {
	switch c.Provider {
	case ProviderGemini:
		return c.Gemini.APIKey != ""
	case ProviderOpenAI:
		return c.OpenAI.APIKey != ""
	case ProviderAnthropic:
		return c.Anthropic.APIKey != ""
	case ProviderOpenRouter:
		return c.OpenRouter.APIKey != ""
	case ProviderMock:
		return true
	}
	return false
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini, OpenAI, Anthropic, OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	for _, env := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if k := os.Getenv(env); k != "" {
			cfg.Provider = ProviderGemini
			cfg.Gemini.APIKey = k
			return cfg, true
		}
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter:
		if !c.hasKey() {
			return fmt.Errorf("an API key is required for the %s provider (set EDUCAREER_%s_API_KEY)",
				c.Provider, envName(c.Provider))
		}
	case ProviderMock:
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1")
	}
	return nil
}

func envName(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI"
	case ProviderAnthropic:
		return "ANTHROPIC"
	case ProviderOpenRouter:
		return "OPENROUTER"
	}
	return "GEMINI"
}
