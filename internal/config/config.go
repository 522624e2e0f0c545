package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/adaptive/internal/adaptive"
)

// Config holds all service configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	History    HistoryConfig    `yaml:"history"`
	Curriculum CurriculumConfig `yaml:"curriculum"`
	Tuning     adaptive.Tuning  `yaml:"tuning"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`

	// RateLimit is the sustained requests per second across all clients.
	// Zero disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// HistoryConfig configures the attempt store.
type HistoryConfig struct {
	DBPath string `yaml:"db_path"`

	// Window is how many recent attempts are evaluated after recording an
	// answer. Zero evaluates the full history.
	Window int `yaml:"window"`
}

// CurriculumConfig points at an optional curriculum file.
type CurriculumConfig struct {
	File string `yaml:"file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8000",
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  5 * time.Second,
			RateLimit:       100,
			RateBurst:       200,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		History: HistoryConfig{
			Window: 5,
		},
		Tuning: adaptive.DefaultTuning(),
	}
}

// Load builds a Config from defaults, then the YAML file at path (if any),
// then environment variables. A .env file in the working directory is
// loaded first when present.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("ADAPTIVE_CONFIG")
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides fields from ADAPTIVE_* environment variables.
func (c *Config) applyEnv() error {
	if v := os.Getenv("ADAPTIVE_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("ADAPTIVE_SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ADAPTIVE_SHUTDOWN_TIMEOUT=%q is not a valid duration: %w", v, err)
		}
		c.Server.ShutdownTimeout = d
	}
	if v := os.Getenv("ADAPTIVE_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ADAPTIVE_REQUEST_TIMEOUT=%q is not a valid duration: %w", v, err)
		}
		c.Server.RequestTimeout = d
	}
	if v := os.Getenv("ADAPTIVE_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("ADAPTIVE_RATE_LIMIT=%q is not a number: %w", v, err)
		}
		c.Server.RateLimit = f
	}
	if v := os.Getenv("ADAPTIVE_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ADAPTIVE_RATE_BURST=%q is not an integer: %w", v, err)
		}
		c.Server.RateBurst = n
	}
	if v := os.Getenv("ADAPTIVE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ADAPTIVE_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("ADAPTIVE_DB"); v != "" {
		c.History.DBPath = v
	}
	if v := os.Getenv("ADAPTIVE_HISTORY_WINDOW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ADAPTIVE_HISTORY_WINDOW=%q is not an integer: %w", v, err)
		}
		c.History.Window = n
	}
	if v := os.Getenv("ADAPTIVE_CURRICULUM"); v != "" {
		c.Curriculum.File = v
	}
	return nil
}

// Validate checks the configuration for values the service cannot run with.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must be >= 0, got %g", c.Server.RateLimit)
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		return fmt.Errorf("server.rate_burst must be >= 1 when rate limiting, got %d", c.Server.RateBurst)
	}
	if c.History.Window < 0 {
		return fmt.Errorf("history.window must be >= 0, got %d", c.History.Window)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format: %q", c.Log.Format)
	}
	return c.Tuning.Validate()
}

// NewLogger builds the process logger described by c.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unknown log level: %q", s)
	}
	return level, nil
}
