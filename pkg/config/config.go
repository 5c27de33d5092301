package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds server configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string

	// Storage roots
	SchemaRoot    string
	SpecRoot      string
	AlternateRoot string

	// MCP
	MCPAddr      string
	MCPAuthToken string

	// Merchant discovery
	DiscoveryTimeout          time.Duration
	DiscoveryFailureThreshold int
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		SchemaRoot:    getEnv("UCP_SCHEMA_ROOT", "schemas"),
		SpecRoot:      getEnv("UCP_SPEC_ROOT", "specs"),
		AlternateRoot: getEnv("UCP_ALTERNATE_ROOT", "upstream"),

		MCPAddr:      getEnv("MCP_ADDR", "0.0.0.0:8082"),
		MCPAuthToken: getEnv("MCP_AUTH_TOKEN", ""),

		DiscoveryTimeout:          getDurationEnv("UCP_DISCOVERY_TIMEOUT", 10*time.Second),
		DiscoveryFailureThreshold: getIntEnv("UCP_DISCOVERY_FAILURE_THRESHOLD", 5),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
