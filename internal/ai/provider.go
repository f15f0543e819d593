package ai

import (
	"fmt"
	"strings"

	"staffmatch/internal/config"
)

const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"

	DefaultGroqModel   = "llama-3.1-8b-instant"
	DefaultOpenAIModel = "gpt-3.5-turbo"

	GroqBaseURL = "https://api.groq.com/openai/v1"

	defaultTemperature = 0.7
	defaultMaxTokens   = 2000
)

// Settings is a fully resolved provider configuration. Two equal Settings values
// produce interchangeable clients.
type Settings struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	MaxTokens   int64
}

// ConfigError reports a configuration that must not reach the provider. It is
// terminal for the invocation that hit it.
type ConfigError struct {
	Provider string
	Reason   string
}

func (e *ConfigError) Error() string {
	if e.Provider == "" {
		return "ai config: " + e.Reason
	}
	return fmt.Sprintf("ai config (%s): %s", e.Provider, e.Reason)
}

// Resolve picks provider, model and credential from cfg. An empty provider means
// groq; an empty model falls back to the provider default.
func Resolve(cfg config.AIConfig) (Settings, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderGroq
	}

	s := Settings{
		Provider:    provider,
		BaseURL:     strings.TrimSpace(cfg.BaseURL),
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}
	if s.Temperature <= 0 {
		s.Temperature = defaultTemperature
	}
	if s.MaxTokens <= 0 {
		s.MaxTokens = defaultMaxTokens
	}

	switch provider {
	case ProviderGroq:
		s.APIKey = strings.TrimSpace(cfg.GroqAPIKey)
		s.Model = firstNonEmpty(cfg.GroqModel, DefaultGroqModel)
		if s.BaseURL == "" {
			s.BaseURL = GroqBaseURL
		}
		if s.APIKey == "" {
			return Settings{}, &ConfigError{Provider: provider, Reason: "GROQ_API_KEY is not set"}
		}
	case ProviderOpenAI:
		s.APIKey = strings.TrimSpace(cfg.OpenAIAPIKey)
		s.Model = firstNonEmpty(cfg.OpenAIModel, DefaultOpenAIModel)
		if s.APIKey == "" {
			return Settings{}, &ConfigError{Provider: provider, Reason: "OPENAI_API_KEY is not set"}
		}
	default:
		return Settings{}, &ConfigError{
			Provider: provider,
			Reason:   fmt.Sprintf("unsupported provider (expected %s or %s)", ProviderGroq, ProviderOpenAI),
		}
	}
	return s, nil
}

func firstNonEmpty(v, fallback string) string {
	if t := strings.TrimSpace(v); t != "" {
		return t
	}
	return fallback
}
