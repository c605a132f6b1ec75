package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer          string        // Issuer claim for tokens (default: userhub)
	TokenTTL        time.Duration // Access token lifetime (default: 1h)
	TokenSecretFile string        // Path to the HMAC signing secret file (default: ./token-secret)

	DatabaseFile string // Path to SQLite database file (default: ./userhub.db)
	PepperFile   string // Path to the password-hashing pepper file (default: ./pepper)

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Port      int    // HTTP server port (default: 8080)

	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:          getEnvOrDefault("USERHUB_ISSUER", "userhub"),
		TokenTTL:        getEnvDurationOrDefault("USERHUB_TOKEN_TTL", time.Hour),
		TokenSecretFile: getEnvOrDefault("USERHUB_TOKEN_SECRET_FILE", "token-secret"),

		DatabaseFile: getEnvOrDefault("USERHUB_DATABASE_FILE", "userhub.db"),
		PepperFile:   getEnvOrDefault("USERHUB_PEPPER_FILE", "pepper"),

		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Port:      getEnvIntOrDefault("PORT", 8080),

		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Durations like "1h", "30m", "90s"
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are taken as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
