package app

import (
	"context"
	"log/slog"
	"testing"

	"github.com/sundayezeilo/repohub/internal/repos"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := setupLogger(tt.level)
			if !logger.Enabled(context.Background(), tt.want) {
				t.Errorf("level %v should be enabled", tt.want)
			}
			if tt.want > slog.LevelDebug && logger.Enabled(context.Background(), tt.want-1) {
				t.Errorf("level below %v should be disabled", tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	t.Setenv("SERVER_PORT", "0")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_READ_TIMEOUT", "1s")
	t.Setenv("SERVER_WRITE_TIMEOUT", "1s")
	t.Setenv("SERVER_IDLE_TIMEOUT", "1s")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "1s")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("APP_ID_VERSION", "v7")

	a, err := New(context.Background())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	r, err := a.Store.Create(context.Background(), repos.Input{Title: "wired"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if r.ID.Version() != 7 {
		t.Errorf("UUID version = %d, want 7 (from APP_ID_VERSION)", r.ID.Version())
	}
	if err := a.Shutdown(); err != nil {
		t.Errorf("Shutdown() = %v", err)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("APP_ENV", "production")

	if _, err := New(context.Background()); err == nil {
		t.Fatal("New() should fail with invalid config")
	}
}
