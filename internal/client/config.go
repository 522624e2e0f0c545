package client

import (
	"log/slog"
	"os"
	"time"
)

// DefaultBaseURL is where the engine listens when run locally.
const DefaultBaseURL = "http://localhost:8000"

// Config holds engine client configuration.
type Config struct {
	// Timeout bounds a single Next call, including retries. Default: 3s.
	Timeout time.Duration

	Retry RetryConfig

	// Logger receives fallback warnings. Default: slog.Default().
	Logger *slog.Logger
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout: 3 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 100 * time.Millisecond,
			MaxWait:     1 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// BaseURLFromEnv returns ADAPTIVE_ENGINE_URL, or DefaultBaseURL when unset.
func BaseURLFromEnv() string {
	if v := os.Getenv("ADAPTIVE_ENGINE_URL"); v != "" {
		return v
	}
	return DefaultBaseURL
}
