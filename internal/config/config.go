package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DataPath        string
	TemplatesPath   string
	StaticFilesPath string
	SessionSecret   string
	SessionDuration time.Duration
	LoginRateLimit  int
	LoginRateWindow time.Duration
	ESPNBaseURL     string
	UpstreamTimeout time.Duration
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DataPath:        getEnv("DATA_PATH", "./data"),
		TemplatesPath:   getEnv("TEMPLATES_PATH", "./internal/templates"),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),
		SessionSecret:   getEnv("SESSION_SECRET", "change-this-to-something-secret"),
		SessionDuration: getDuration("SESSION_DURATION", 24*time.Hour),
		LoginRateLimit:  getInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: getDuration("LOGIN_RATE_WINDOW", time.Minute),
		ESPNBaseURL:     getEnv("ESPN_API_URL", ""),
		UpstreamTimeout: getDuration("ESPN_TIMEOUT", 10*time.Second),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
