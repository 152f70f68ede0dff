// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"imgsafe-backend/internal/stats"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Moderation ModerationConfig
	Stats      StatsConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type DatabaseConfig struct {
	URI      string
	Database string
}

type AuthConfig struct {
	TokenSecret string
}

type ModerationConfig struct {
	APIURL string
	APIKey string
}

// StatsConfig controls how usage telemetry is bucketed for display.
type StatsConfig struct {
	// Timezone is "local" or "utc". Day buckets follow the original
	// dashboard behavior (viewer-local) by default; deployments that need
	// server/client consistency set "utc".
	Timezone string
	// ParametricPrefixes are the route prefixes whose trailing segment is
	// a dynamic id, for endpoint-pattern collapsing. New parametric routes
	// are added here, never inferred.
	ParametricPrefixes []string
}

func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "7001"),
			Host: getEnvOrDefault("HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			URI:      os.Getenv("MONGODB_URI"),
			Database: getEnvOrDefault("MONGODB_DATABASE", "imgsafe"),
		},
		Auth: AuthConfig{
			TokenSecret: os.Getenv("TOKEN_SECRET"),
		},
		Moderation: ModerationConfig{
			APIURL: os.Getenv("MODERATION_API_URL"),
			APIKey: os.Getenv("MODERATION_API_KEY"),
		},
		Stats: StatsConfig{
			Timezone:           getEnvOrDefault("STATS_TIMEZONE", "local"),
			ParametricPrefixes: getEnvAsList("STATS_PARAMETRIC_PREFIXES", stats.DefaultParametricPrefixes),
		},
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.Database.URI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.Auth.TokenSecret == "" {
		return fmt.Errorf("TOKEN_SECRET is required")
	}
	if c.Moderation.APIURL == "" {
		return fmt.Errorf("MODERATION_API_URL is required")
	}
	if tz := c.Stats.Timezone; tz != "local" && tz != "utc" {
		return fmt.Errorf("STATS_TIMEZONE must be \"local\" or \"utc\", got %q", tz)
	}
	return nil
}

// Location resolves the configured stats timezone policy.
func (c *StatsConfig) Location() *time.Location {
	if c.Timezone == "utc" {
		return time.UTC
	}
	return time.Local
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
