package config

import (
	"os"
	"strconv"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/pricing"
)

// AIConfig holds the model endpoint settings and the sampling
// parameters shared by every run.
type AIConfig struct {
	APIKey  string `json:"-"` // Never serialize
	BaseURL string `json:"baseUrl"`

	// DefaultModel is used when a question does not pin one.
	DefaultModel string `json:"defaultModel"`

	TimeoutMS int `json:"timeoutMs"`

	// MaxOutputTokens stays small: the model is asked for a single
	// name and only the first token is collapsed.
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopLogprobs     int     `json:"topLogprobs"`
	Temperature     float64 `json:"temperature"`

	Prices pricing.Table `json:"-"`
}

// DefaultAIConfig returns the default AI configuration.
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:          os.Getenv("OPENAI_API_KEY"),
		BaseURL:         getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		DefaultModel:    getEnvOrDefault("GPT_MODEL", "gpt-4o-mini"),
		TimeoutMS:       getEnvIntOrDefault("OPENAI_TIMEOUT_MS", 30000),
		MaxOutputTokens: 3,
		TopLogprobs:     20,
		Temperature:     0,
		Prices:          pricing.DefaultTable(),
	}
}

// IsEnabled returns true if the AI API is configured.
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
