package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AIConfig carries the model provider settings. Keys are kept empty when unset so
// the adapter can report exactly which credential is missing.
type AIConfig struct {
	Provider     string
	GroqAPIKey   string
	GroqModel    string
	OpenAIAPIKey string
	OpenAIModel  string
	BaseURL      string
	Temperature  float64
	MaxTokens    int64
	Timeout      time.Duration
}

func setAIDefaults(v *viper.Viper) {
	v.SetDefault("AI_PROVIDER", "groq")
	v.SetDefault("AI_TEMPERATURE", 0.7)
	v.SetDefault("AI_MAX_TOKENS", 2000)
	v.SetDefault("AI_TIMEOUT", time.Duration(0))
}

func aiFromViper(v *viper.Viper) AIConfig {
	return AIConfig{
		Provider:     strings.ToLower(strings.TrimSpace(v.GetString("AI_PROVIDER"))),
		GroqAPIKey:   strings.TrimSpace(v.GetString("GROQ_API_KEY")),
		GroqModel:    strings.TrimSpace(v.GetString("GROQ_MODEL")),
		OpenAIAPIKey: strings.TrimSpace(v.GetString("OPENAI_API_KEY")),
		OpenAIModel:  strings.TrimSpace(v.GetString("OPENAI_MODEL")),
		BaseURL:      strings.TrimSpace(v.GetString("AI_BASE_URL")),
		Temperature:  v.GetFloat64("AI_TEMPERATURE"),
		MaxTokens:    v.GetInt64("AI_MAX_TOKENS"),
		Timeout:      v.GetDuration("AI_TIMEOUT"),
	}
}

// AIFromEnv re-reads the model settings from the live environment. The matching
// pipeline calls it once per invocation.
func AIFromEnv() AIConfig {
	return aiFromViper(viper.GetViper())
}
