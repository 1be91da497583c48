// Package config loads process configuration from the environment. Backend
// selection for the session slot and blob store is handled by their own
// factories; this covers the remaining knobs.
package config

import "os"

// Config holds the portal process settings.
type Config struct {
	Env        string // development|production
	LogLevel   string
	Passphrase string // shared demo passphrase
}

// Load reads configuration from the environment with development defaults.
func Load() (*Config, error) {
	return &Config{
		Env:        GetEnv("STAFFPORTAL_ENV", "development"),
		LogLevel:   GetEnv("STAFFPORTAL_LOG_LEVEL", "info"),
		Passphrase: GetEnv("STAFFPORTAL_PASSPHRASE", "password123"),
	}, nil
}

// GetEnv returns the variable's value, or defaultValue when unset.
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
