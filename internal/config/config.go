// Package config provides configuration for the chat service.
package config

import (
	"os"
	"strconv"
	"time"
)

// ModeMock selects the keyless mock backends for local development.
const ModeMock = "MOCK"

// Config holds the chat service configuration.
type Config struct {
	// Server settings
	Port int

	// Database
	DatabaseURL string

	// Anthropic settings
	AnthropicAPIKey string
	AgentModel      string
	DocModel        string

	// Data API settings
	DataAPIURL     string
	DataAPIKey     string
	DataAPITimeout time.Duration

	// Timeouts
	RequestTimeout time.Duration

	// Mode: empty for live backends, MOCK for lorem-backed mocks
	Mode string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:            getEnvInt("PORT", 8080),
		DatabaseURL:     getEnv("DATABASE_URL", "file:chatd.db?cache=shared&mode=rwc"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AgentModel:      getEnv("CHATD_AGENT_MODEL", "claude-sonnet-4-5"),
		DocModel:        getEnv("CHATD_DOC_MODEL", "claude-sonnet-4-5"),
		DataAPIURL:      getEnv("DATA_API_URL", "http://localhost:9090"),
		DataAPIKey:      getEnv("DATA_API_KEY", ""),
		DataAPITimeout:  time.Duration(getEnvInt("DATA_API_TIMEOUT_MS", 30000)) * time.Millisecond,
		RequestTimeout:  time.Duration(getEnvInt("CHATD_REQUEST_TIMEOUT_MS", 300000)) * time.Millisecond,
		Mode:            getEnv("CHATD_MODE", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
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
