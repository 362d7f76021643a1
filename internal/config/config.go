// Package config manages application configuration
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port        string
	Environment string // "development" or "production"

	// Database
	DatabaseURL string

	// Security
	SecretKey  string // For password-reset token signing
	BcryptCost int

	// Session settings
	SessionDuration    time.Duration // default login
	RememberMeDuration time.Duration // "remember me" login
	ResetTokenDuration time.Duration

	// Validation
	PasswordMinLength int
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		Port:               getEnv("OLIBRANCH_PORT", "8080"),
		Environment:        getEnv("OLIBRANCH_ENV", "development"),
		DatabaseURL:        getEnv("OLIBRANCH_DATABASE_URL", "olibranch.db"),
		SecretKey:          getEnv("OLIBRANCH_SECRET_KEY", "dev-secret-key-change-in-production"),
		BcryptCost:         getIntEnv("OLIBRANCH_BCRYPT_COST", 12),
		SessionDuration:    getDurationEnv("OLIBRANCH_SESSION_DURATION", 24*time.Hour),
		RememberMeDuration: getDurationEnv("OLIBRANCH_REMEMBER_ME_DURATION", 30*24*time.Hour),
		ResetTokenDuration: getDurationEnv("OLIBRANCH_RESET_TOKEN_DURATION", time.Hour),
		PasswordMinLength:  getIntEnv("OLIBRANCH_PASSWORD_MIN_LENGTH", 8),
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
