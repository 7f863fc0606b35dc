// Package config provides configuration for the chat service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the service configuration. User-facing settings (API key,
// model, system prompt) are persisted in the store instead; see domain.Settings.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Completion backend
	CompletionBaseURL string
	VisionModel       string
	LLMTimeout        time.Duration

	// Memory compaction
	CompactThreshold int
	CompactKeep      int
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:          getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:       getEnv("DATABASE_URL", "file:turbochat.db?cache=shared&mode=rwc"),
		CompletionBaseURL: getEnv("COMPLETION_BASE_URL", "https://openrouter.ai/api/v1"),
		VisionModel:       getEnv("VISION_MODEL", "openai/gpt-4o-mini"),
		LLMTimeout:        time.Duration(getEnvInt("LLM_TIMEOUT_MS", 120000)) * time.Millisecond,
		CompactThreshold:  getEnvInt("COMPACT_THRESHOLD", 8),
		CompactKeep:       getEnvInt("COMPACT_KEEP", 4),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
