package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderNone       = "none"
	ProviderAuto       = "auto"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the LLM provider. It is filled from the
// environment by the config package.
type Config struct {
	// Provider is one of the Provider* names. "none" disables LLM features;
	// "auto" picks the first provider whose standard API key is set.
	Provider string        `env:"SOULSENSE_LLM_PROVIDER" envDefault:"none"`
	Timeout  time.Duration `env:"SOULSENSE_LLM_TIMEOUT" envDefault:"20s"`

	Anthropic  EndpointConfig `envPrefix:"SOULSENSE_ANTHROPIC_"`
	OpenAI     EndpointConfig `envPrefix:"SOULSENSE_OPENAI_"`
	Gemini     EndpointConfig `envPrefix:"SOULSENSE_GEMINI_"`
	OpenRouter EndpointConfig `envPrefix:"SOULSENSE_OPENROUTER_"`

	Retry RetryConfig
}

// EndpointConfig holds the credentials for one provider.
type EndpointConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL"`
	BaseURL string `env:"BASE_URL"`
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `env:"SOULSENSE_LLM_RETRY_ATTEMPTS" envDefault:"3"`
	InitialWait time.Duration `env:"SOULSENSE_LLM_RETRY_WAIT" envDefault:"1s"`
	MaxWait     time.Duration `env:"SOULSENSE_LLM_RETRY_MAX_WAIT" envDefault:"8s"`
	Multiplier  float64       `env:"SOULSENSE_LLM_RETRY_MULTIPLIER" envDefault:"2"`
}

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderGemini:     "gemini-flash",
	ProviderOpenRouter: "google/gemini-2.0-flash-001",
}

// DefaultConfig is the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderNone,
		Timeout:  20 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     8 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// Endpoint returns the endpoint config for the selected provider with its
// default model and base URL filled in.
func (c Config) Endpoint() EndpointConfig {
	var e EndpointConfig
	switch c.Provider {
	case ProviderAnthropic:
		e = c.Anthropic
	case ProviderOpenAI:
		e = c.OpenAI
	case ProviderGemini:
		e = c.Gemini
	case ProviderOpenRouter:
		e = c.OpenRouter
		if e.BaseURL == "" {
			e.BaseURL = defaultOpenRouterBaseURL
		}
	}
	if e.Model == "" {
		e.Model = defaultModels[c.Provider]
	}
	return e
}

// Enabled reports whether an LLM provider is configured.
func (c Config) Enabled() bool {
	return c.Provider != "" && c.Provider != ProviderNone
}

// Discover resolves "auto" by probing the providers' conventional API key
// variables in order: Anthropic, OpenAI, Gemini, OpenRouter. It returns
// the config unchanged for any other provider, and falls back to "none"
// when no key is found.
func (c Config) Discover() Config {
	if c.Provider != ProviderAuto {
		return c
	}
	probes := []struct {
		provider string
		envKey   string
		target   *EndpointConfig
	}{
		{ProviderAnthropic, "ANTHROPIC_API_KEY", &c.Anthropic},
		{ProviderOpenAI, "OPENAI_API_KEY", &c.OpenAI},
		{ProviderGemini, "GEMINI_API_KEY", &c.Gemini},
		{ProviderOpenRouter, "OPENROUTER_API_KEY", &c.OpenRouter},
	}
	for _, p := range probes {
		if p.target.APIKey != "" {
			c.Provider = p.provider
			return c
		}
		if k := os.Getenv(p.envKey); k != "" {
			p.target.APIKey = k
			c.Provider = p.provider
			return c
		}
	}
	c.Provider = ProviderNone
	return c
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderNone, ProviderMock, "":
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.Endpoint().APIKey == "" {
			return fmt.Errorf("SOULSENSE_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}
