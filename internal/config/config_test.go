package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/adaptive/internal/adaptive"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ADAPTIVE_CONFIG", "ADAPTIVE_ADDR", "ADAPTIVE_SHUTDOWN_TIMEOUT",
		"ADAPTIVE_REQUEST_TIMEOUT", "ADAPTIVE_RATE_LIMIT", "ADAPTIVE_RATE_BURST",
		"ADAPTIVE_LOG_LEVEL", "ADAPTIVE_LOG_FORMAT", "ADAPTIVE_DB",
		"ADAPTIVE_HISTORY_WINDOW", "ADAPTIVE_CURRICULUM",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate(): %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8000" {
		t.Errorf("Addr = %q, want :8000", cfg.Server.Addr)
	}
	if cfg.History.Window != 5 {
		t.Errorf("Window = %d, want 5", cfg.History.Window)
	}
	if cfg.Tuning != adaptive.DefaultTuning() {
		t.Errorf("Tuning = %+v, want defaults", cfg.Tuning)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "adaptive.yaml", `
server:
  addr: ":9000"
  shutdown_timeout: 3s
history:
  window: 8
tuning:
  low_mastery: 0.3
`)
	t.Setenv("ADAPTIVE_ADDR", ":9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9100" {
		t.Errorf("Addr = %q, want env override :9100", cfg.Server.Addr)
	}
	if cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("ShutdownTimeout = %s, want 3s", cfg.Server.ShutdownTimeout)
	}
	if cfg.History.Window != 8 {
		t.Errorf("Window = %d, want 8", cfg.History.Window)
	}
	if cfg.Tuning.LowMastery != 0.3 {
		t.Errorf("LowMastery = %v, want 0.3", cfg.Tuning.LowMastery)
	}
	// Unset tuning keys keep their defaults.
	if cfg.Tuning.HighMastery != 0.75 {
		t.Errorf("HighMastery = %v, want 0.75", cfg.Tuning.HighMastery)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		file    string
		wantSub string
	}{
		{"bad duration", map[string]string{"ADAPTIVE_SHUTDOWN_TIMEOUT": "soon"}, "", "ADAPTIVE_SHUTDOWN_TIMEOUT"},
		{"bad window", map[string]string{"ADAPTIVE_HISTORY_WINDOW": "-1"}, "", "history.window"},
		{"bad level", map[string]string{"ADAPTIVE_LOG_LEVEL": "loud"}, "", "log level"},
		{"bad format", map[string]string{"ADAPTIVE_LOG_FORMAT": "xml"}, "", "log format"},
		{"bad tuning", nil, "tuning:\n  streak_length: 0\n", "streak_length"},
		{"bad yaml", nil, "server: [", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeFile(t, "c.yaml", tt.file)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not contain %q", err, tt.wantSub)
			}
		})
	}
}

func TestLogConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "child_id", "kid-1")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(out, `"child_id":"kid-1"`) {
		t.Errorf("expected JSON attribute in output, got %q", out)
	}
}
