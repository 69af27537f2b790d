// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"sparkfund/pkg/db" // Import db package for its Config struct
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort     string
	DB             db.Config
	MailServiceURL string
	SweepInterval  time.Duration // Completion and resend sweep period
	DedupTTL       time.Duration // Duplicate-submission debounce window
}

// LoadConfig loads configuration from environment variables.
// Missing variables fall back to local-development defaults.
func LoadConfig() (*AppConfig, error) {
	serverPort := envOr("SERVER_PORT", "8080")

	dbHost := envOr("DB_HOST", "localhost")
	dbPort, err := strconv.Atoi(envOr("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbUser := envOr("DB_USER", "user")
	dbPassword := envOr("DB_PASSWORD", "password")
	dbName := envOr("DB_NAME", "sparkfund")
	dbSSLMode := envOr("DB_SSLMODE", "disable")

	mailURL := envOr("MAIL_SVC_URL", "http://localhost:8081")

	sweepInterval, err := time.ParseDuration(envOr("SWEEP_INTERVAL", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_INTERVAL: %w", err)
	}
	dedupTTL, err := time.ParseDuration(envOr("DEDUP_TTL", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEDUP_TTL: %w", err)
	}

	return &AppConfig{
		ServerPort:     serverPort,
		MailServiceURL: mailURL,
		SweepInterval:  sweepInterval,
		DedupTTL:       dedupTTL,
		DB: db.Config{
			Host:     dbHost,
			Port:     dbPort,
			User:     dbUser,
			Password: dbPassword,
			DBName:   dbName,
			SSLMode:  dbSSLMode,
		},
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
