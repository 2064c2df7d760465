// Package config loads runtime configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port        int
	DBPath      string
	LogLevel    string
	CorsOrigins []string
	CallDomain  string // base domain for provisioned video-call rooms
}

// Load reads configuration from the environment, applying defaults.
func Load() Config {
	return Config{
		Port:        envOrInt("PORT", 8080),
		DBPath:      envOr("DB_PATH", "data/codecollab.db"),
		LogLevel:    envOr("LOG_LEVEL", "info"),
		CorsOrigins: parseCSV(envOr("CORS_ORIGINS", "")),
		CallDomain:  envOr("CALL_DOMAIN", "https://codecollab.daily.co"),
	}
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func parseCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
