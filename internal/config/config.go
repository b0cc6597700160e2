package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	APIBaseURL        string
	FetchTimeoutSecs  int
	MaxRetries        int
	RetryDelayMs      int
	RequestsPerSecond float64
	AccuracyPrecision int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:chessinsights.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		APIBaseURL:        envOr("CHESS_API_BASE_URL", "https://api.chess.com"),
		FetchTimeoutSecs:  envIntOr("FETCH_TIMEOUT_SECONDS", 15),
		MaxRetries:        envIntOr("MAX_RETRIES", 3),
		RetryDelayMs:      envIntOr("RETRY_DELAY_MS", 1000),
		RequestsPerSecond: envFloatOr("REQUESTS_PER_SECOND", 2),
		AccuracyPrecision: envIntOr("ACCURACY_PRECISION", 0),
	}
}

// Validate checks the loaded configuration and returns every problem found.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be DEBUG, INFO, WARN or ERROR, got %q", c.LogLevel))
	}
	if c.APIBaseURL == "" {
		problems = append(problems, "CHESS_API_BASE_URL cannot be empty")
	}
	if c.FetchTimeoutSecs < 1 {
		problems = append(problems, "FETCH_TIMEOUT_SECONDS must be at least 1")
	}
	if c.MaxRetries < 1 {
		problems = append(problems, "MAX_RETRIES must be at least 1")
	}
	if c.RetryDelayMs < 0 {
		problems = append(problems, "RETRY_DELAY_MS cannot be negative")
	}
	if c.RequestsPerSecond <= 0 {
		problems = append(problems, "REQUESTS_PER_SECOND must be positive")
	}
	if c.AccuracyPrecision < 0 || c.AccuracyPrecision > 2 {
		problems = append(problems, "ACCURACY_PRECISION must be between 0 and 2")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}
