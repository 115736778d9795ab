package config

import "time"

type AIConfig struct {
	Enabled bool          `yaml:"enabled"`
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

func loadAIConfig() *AIConfig {
	apiKey := getEnv("AI_API_KEY", "")
	return &AIConfig{
		Enabled: getEnvAsBool("AI_ENABLED", apiKey != ""),
		BaseURL: getEnv("AI_BASE_URL", "https://api.openai.com/v1"),
		APIKey:  apiKey,
		Model:   getEnv("AI_MODEL", "gpt-4o-mini"),
		Timeout: getEnvAsDuration("AI_TIMEOUT", 30*time.Second),
	}
}
