package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Duplicate-sequence policies applied before each docket entry insert.
const (
	DuplicateSkip   = "skip"
	DuplicateInsert = "insert"
)

// Config holds all application configuration
type Config struct {
	// Database settings
	DatabaseDSN string

	// Logging settings
	LogLevel  string
	LogFormat string

	// Normalization settings
	TitleMaxLen int
	FilerMaxLen int

	// Classification settings
	RulesPath string

	// Attorney settings
	EmailDomain string

	// Load settings
	DuplicatePolicy string

	// Report settings
	TopFilerCount int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not an error if .env doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		DatabaseDSN: getEnv("DATABASE_DSN", "./data/docket.db"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		RulesPath:   getEnv("CLASSIFICATION_RULES", ""),
		EmailDomain: getEnv("ATTORNEY_EMAIL_DOMAIN", "law.example.com"),
	}

	// Parse integer values
	var err error
	cfg.TitleMaxLen, err = strconv.Atoi(getEnv("TITLE_MAX_LEN", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid TITLE_MAX_LEN: %w", err)
	}
	// The shortener reserves three bytes for the ellipsis marker.
	if cfg.TitleMaxLen < 4 {
		return nil, fmt.Errorf("TITLE_MAX_LEN must be at least 4, got %d", cfg.TitleMaxLen)
	}

	cfg.FilerMaxLen, err = strconv.Atoi(getEnv("FILER_MAX_LEN", "255"))
	if err != nil {
		return nil, fmt.Errorf("invalid FILER_MAX_LEN: %w", err)
	}
	if cfg.FilerMaxLen < 1 {
		return nil, fmt.Errorf("FILER_MAX_LEN must be positive, got %d", cfg.FilerMaxLen)
	}

	cfg.TopFilerCount, err = strconv.Atoi(getEnv("TOP_FILER_COUNT", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOP_FILER_COUNT: %w", err)
	}
	if cfg.TopFilerCount < 0 {
		return nil, fmt.Errorf("TOP_FILER_COUNT must not be negative, got %d", cfg.TopFilerCount)
	}

	cfg.DuplicatePolicy = getEnv("DUPLICATE_SEQUENCE_POLICY", DuplicateSkip)
	if cfg.DuplicatePolicy != DuplicateSkip && cfg.DuplicatePolicy != DuplicateInsert {
		return nil, fmt.Errorf("invalid DUPLICATE_SEQUENCE_POLICY: %q", cfg.DuplicatePolicy)
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
