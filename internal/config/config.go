package config

import (
	"os"
	"strconv"
	"time"

	"datalens/internal/errors"
)

// Config represents the complete application configuration.
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Upload UploadConfig
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Port    string
	GinMode string
}

// AIConfig holds the LLM advisory settings. An empty APIKey disables the
// advisory feature; it never blocks startup.
type AIConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// UploadConfig holds dataset upload limits.
type UploadConfig struct {
	MaxFileSizeBytes int64
	MaxRows          int
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		AI: AIConfig{
			APIKey:      os.Getenv("OPENAI_API_KEY"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			MaxTokens:   getEnvInt("AI_MAX_TOKENS", 1024),
			Temperature: getEnvFloat("AI_TEMPERATURE", 0.2),
			Timeout:     time.Duration(getEnvInt("AI_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Upload: UploadConfig{
			MaxFileSizeBytes: int64(getEnvInt("UPLOAD_MAX_FILE_MB", 50)) * 1024 * 1024,
			MaxRows:          getEnvInt("UPLOAD_MAX_ROWS", 500000),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	if cfg.Upload.MaxFileSizeBytes <= 0 {
		return errors.ConfigInvalid("UPLOAD_MAX_FILE_MB must be positive")
	}
	if cfg.AI.Timeout <= 0 {
		return errors.ConfigInvalid("AI_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// AdvisoryEnabled reports whether an LLM credential was supplied.
func (c *Config) AdvisoryEnabled() bool {
	return c.AI.APIKey != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}
