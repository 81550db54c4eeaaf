// Package llm provides provider configuration and chat clients for the
// language models used by the tailoring tools.
package llm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderAnthropic is Anthropic Claude through its OpenAI-compatible endpoint
	ProviderAnthropic Provider = "anthropic"
	// ProviderOpenAI is OpenAI or any server speaking its API
	ProviderOpenAI Provider = "openai"
	// ProviderGoogle is Google Gemini
	ProviderGoogle Provider = "google"
	// ProviderProxy is a LiteLLM-style OpenAI-compatible proxy
	ProviderProxy Provider = "proxy"
)

// Temperature is used for every completion.
const Temperature = 0.3

// AnthropicBaseURL is Anthropic's OpenAI-compatible API root.
const AnthropicBaseURL = "https://api.anthropic.com/v1/"

// ProviderInfo describes a provider's selectable models.
type ProviderInfo struct {
	Label   string
	Models  []string
	Default string
}

// Providers is the provider catalog.
var Providers = map[Provider]ProviderInfo{
	ProviderAnthropic: {
		Label:   "Claude (Anthropic)",
		Models:  []string{"claude-sonnet-4-20250514", "claude-haiku-4-5-20251001"},
		Default: "claude-sonnet-4-20250514",
	},
	ProviderOpenAI: {
		Label:   "GPT (OpenAI)",
		Models:  []string{"gpt-4o", "gpt-4o-mini", "gpt-4.1"},
		Default: "gpt-4o",
	},
	ProviderGoogle: {
		Label:   "Gemini (Google)",
		Models:  []string{"gemini-2.0-flash", "gemini-2.5-pro"},
		Default: "gemini-2.0-flash",
	},
	ProviderProxy: {
		Label:   "LiteLLM / Proxy",
		Default: "claude-sonnet-4",
	},
}

// ProviderOrder lists the catalog in display order.
func ProviderOrder() []Provider {
	return []Provider{ProviderAnthropic, ProviderOpenAI, ProviderGoogle, ProviderProxy}
}

// DefaultModel returns the provider's default model, or "" for unknown providers.
func DefaultModel(p Provider) string {
	return Providers[p].Default
}

// ParseProvider normalizes a provider name. Empty input selects Anthropic and
// "gemini" is accepted for Google.
func ParseProvider(name string) Provider {
	p := Provider(strings.ToLower(strings.TrimSpace(name)))
	switch p {
	case "":
		return ProviderAnthropic
	case "gemini":
		return ProviderGoogle
	}
	return p
}

// Config selects a provider, its credentials and the model to call.
type Config struct {
	Provider Provider `validate:"required,oneof=anthropic openai google proxy"`
	APIKey   string   `validate:"required_unless=Provider proxy"`
	BaseURL  string   `validate:"omitempty,url"`
	Model    string   `validate:"required"`
}

// WithModel returns a copy of the config using model. An empty model keeps
// the current one.
func (c *Config) WithModel(model string) *Config {
	out := *c
	if model != "" {
		out.Model = model
	}
	return &out
}

// Validate checks the configuration and reports the first problem in terms of
// the environment variable that fixes it.
func (c *Config) Validate() error {
	if c.Provider == ProviderProxy && c.BaseURL == "" {
		return &ConfigError{Provider: c.Provider, Message: "set PROXY_BASE_URL (e.g. https://your-litellm-proxy.com)"}
	}

	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ConfigError{Provider: c.Provider, Message: "invalid configuration", Cause: err}
	}
	switch fieldErrs[0].Field() {
	case "Provider":
		return &ConfigError{Provider: c.Provider, Message: fmt.Sprintf("unknown provider %q", c.Provider), Cause: err}
	case "APIKey":
		return &ConfigError{Provider: c.Provider, Message: "set " + keyVariable(c.Provider), Cause: err}
	case "BaseURL":
		return &ConfigError{Provider: c.Provider, Message: fmt.Sprintf("invalid base URL %q", c.BaseURL), Cause: err}
	default:
		return &ConfigError{Provider: c.Provider, Message: "set AI_MODEL", Cause: err}
	}
}

func keyVariable(p Provider) string {
	switch p {
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderGoogle:
		return "GOOGLE_API_KEY"
	case ProviderProxy:
		return "PROXY_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

// ConfigFromEnv builds and validates a Config from environment variables:
// AI_PROVIDER, AI_MODEL and the provider's key and base URL variables.
func ConfigFromEnv(getenv func(string) string) (*Config, error) {
	first := func(keys ...string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(getenv(k)); v != "" {
				return v
			}
		}
		return ""
	}

	cfg := &Config{Provider: ParseProvider(getenv("AI_PROVIDER"))}
	switch cfg.Provider {
	case ProviderProxy:
		cfg.APIKey = first("PROXY_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "ANTHROPIC_AUTH_TOKEN")
		cfg.BaseURL = first("PROXY_BASE_URL", "OPENAI_BASE_URL", "ANTHROPIC_BASE_URL")
		if cfg.BaseURL != "" && !strings.HasSuffix(cfg.BaseURL, "/v1") {
			cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/") + "/v1"
		}
	case ProviderAnthropic:
		cfg.APIKey = first("ANTHROPIC_API_KEY", "ANTHROPIC_AUTH_TOKEN")
		cfg.BaseURL = AnthropicBaseURL
	case ProviderGoogle:
		cfg.APIKey = first("GOOGLE_API_KEY")
	default:
		cfg.APIKey = first("OPENAI_API_KEY")
		cfg.BaseURL = first("OPENAI_BASE_URL")
	}
	cfg.Model = first("AI_MODEL")
	if cfg.Model == "" {
		cfg.Model = DefaultModel(cfg.Provider)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
