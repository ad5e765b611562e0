package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single LLM request
	// (including retries). Default: 60s.
	Timeout time.Duration

	// MaxTokens caps the response length of a single request.
	MaxTokens int
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string // Default: "claude-sonnet"
	BaseURL string // Optional. Proxy or gateway in front of the API.
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenRouter or compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string // Default: "gemini-flash"
	BaseURL string // Optional.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-exp"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "anthropic",
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout:   60 * time.Second,
		MaxTokens: 4096,
	}
}

// providerEnv binds one provider's settings to its environment variables.
// Order matters: DiscoverConfig picks the first provider with a bare key.
type providerEnv struct {
	name    string
	bareKey string
	fields  func(*Config) (apiKey, model, baseURL *string)
}

var providerEnvs = []providerEnv{
	{"anthropic", "ANTHROPIC_API_KEY", func(c *Config) (*string, *string, *string) {
		return &c.Anthropic.APIKey, &c.Anthropic.Model, &c.Anthropic.BaseURL
	}},
	{"openai", "OPENAI_API_KEY", func(c *Config) (*string, *string, *string) {
		return &c.OpenAI.APIKey, &c.OpenAI.Model, &c.OpenAI.BaseURL
	}},
	{"gemini", "GEMINI_API_KEY", func(c *Config) (*string, *string, *string) {
		return &c.Gemini.APIKey, &c.Gemini.Model, &c.Gemini.BaseURL
	}},
	{"openrouter", "OPENROUTER_API_KEY", func(c *Config) (*string, *string, *string) {
		return &c.OpenRouter.APIKey, &c.OpenRouter.Model, &c.OpenRouter.BaseURL
	}},
}

// envName is the lessonhub-prefixed variable for a provider setting,
// e.g. LESSONHUB_GEMINI_BASE_URL.
func (p providerEnv) envName(setting string) string {
	return "LESSONHUB_" + strings.ToUpper(p.name) + "_" + setting
}

// ConfigFromEnv builds a Config from LESSONHUB_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("LESSONHUB_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	for _, p := range providerEnvs {
		key, model, baseURL := p.fields(&cfg)
		setFromEnv(key, p.envName("API_KEY"))
		setFromEnv(model, p.envName("MODEL"))
		setFromEnv(baseURL, p.envName("BASE_URL"))
	}
	if t := os.Getenv("LESSONHUB_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// DiscoverConfig looks for the vendors' own key variables (ANTHROPIC_API_KEY
// and friends) and selects the first provider that has one. It reports false
// when none is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, p := range providerEnvs {
		if k := os.Getenv(p.bareKey); k != "" {
			cfg.Provider = p.name
			key, _, _ := p.fields(&cfg)
			*key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has its API key set. The mock
// provider needs none.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	for _, p := range providerEnvs {
		if p.name != c.Provider {
			continue
		}
		if key, _, _ := p.fields(&c); *key == "" {
			return fmt.Errorf("%s is required for the %s provider", p.envName("API_KEY"), p.name)
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider: %q", c.Provider)
}
