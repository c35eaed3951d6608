package config

import (
	"os"
	"slices"
	"testing"
	"time"
)

func baseEnv() map[string]string {
	return map[string]string{
		"SERVER_PORT":             "8080",
		"SERVER_HOST":             "0.0.0.0",
		"SERVER_READ_TIMEOUT":     "10s",
		"SERVER_WRITE_TIMEOUT":    "10s",
		"SERVER_IDLE_TIMEOUT":     "120s",
		"SERVER_SHUTDOWN_TIMEOUT": "30s",

		"APP_ENV":   "test",
		"LOG_LEVEL": "debug",
	}
}

// setEnv sets vars for the test and unsets the optional ones so values from
// the host environment cannot leak in.
func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for _, key := range []string{"APP_ID_VERSION", "CORS_ALLOWED_ORIGINS", "SERVICE_NAME", "SERVICE_VERSION"} {
		unsetEnv(t, key)
	}
	for key, value := range vars {
		t.Setenv(key, value)
	}
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "") // registers restore on cleanup
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s: %v", key, err)
	}
}

func TestLoad_Success(t *testing.T) {
	env := baseEnv()
	env["APP_ID_VERSION"] = "v7"
	env["CORS_ALLOWED_ORIGINS"] = "https://a.example.com,https://b.example.com"
	env["SERVICE_NAME"] = "repohub-test"
	env["SERVICE_VERSION"] = "1.2.3"
	setEnv(t, env)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %s, want 0.0.0.0", cfg.Server.Host)
	}
	if got := cfg.Server.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("Server.Addr() = %s, want 0.0.0.0:8080", got)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 10s", cfg.Server.ReadTimeout)
	}
	if cfg.App.Environment != "test" {
		t.Errorf("App.Environment = %s, want test", cfg.App.Environment)
	}
	if cfg.App.LogLevel != "debug" {
		t.Errorf("App.LogLevel = %s, want debug", cfg.App.LogLevel)
	}
	if cfg.App.IDVersion != "v7" {
		t.Errorf("App.IDVersion = %s, want v7", cfg.App.IDVersion)
	}
	wantOrigins := []string{"https://a.example.com", "https://b.example.com"}
	if !slices.Equal(cfg.CORS.AllowedOrigins, wantOrigins) {
		t.Errorf("CORS.AllowedOrigins = %v, want %v", cfg.CORS.AllowedOrigins, wantOrigins)
	}
	if cfg.Service.Name != "repohub-test" || cfg.Service.Version != "1.2.3" {
		t.Errorf("Service = %+v", cfg.Service)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, baseEnv())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.App.IDVersion != "v4" {
		t.Errorf("App.IDVersion = %s, want v4", cfg.App.IDVersion)
	}
	if len(cfg.CORS.AllowedOrigins) != 0 {
		t.Errorf("CORS.AllowedOrigins = %v, want empty", cfg.CORS.AllowedOrigins)
	}
	if cfg.Service.Name != "repohub" {
		t.Errorf("Service.Name = %s, want repohub", cfg.Service.Name)
	}
	if cfg.Service.Version != "dev" {
		t.Errorf("Service.Version = %s, want dev", cfg.Service.Version)
	}
}

func TestLoad_MissingRequiredVariable(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "SERVER_HOST", "SERVER_READ_TIMEOUT", "APP_ENV", "LOG_LEVEL"} {
		t.Run("missing "+key, func(t *testing.T) {
			setEnv(t, baseEnv())
			unsetEnv(t, key)

			if _, err := Load(); err == nil {
				t.Errorf("Load() should fail when %s is missing", key)
			}
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"invalid duration", "SERVER_READ_TIMEOUT", "invalid"},
		{"zero duration", "SERVER_WRITE_TIMEOUT", "0s"},
		{"negative duration", "SERVER_IDLE_TIMEOUT", "-1s"},
		{"unknown environment", "APP_ENV", "qa"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
		{"unknown id version", "APP_ID_VERSION", "v1"},
		{"empty service name", "SERVICE_NAME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := baseEnv()
			env[tt.envVar] = tt.value
			setEnv(t, env)

			if _, err := Load(); err == nil {
				t.Errorf("Load() should fail when %s=%q", tt.envVar, tt.value)
			}
		})
	}
}

func TestLoad_DurationParsing(t *testing.T) {
	env := baseEnv()
	env["SERVER_READ_TIMEOUT"] = "5m"
	env["SERVER_WRITE_TIMEOUT"] = "30s"
	env["SERVER_IDLE_TIMEOUT"] = "2h"
	env["SERVER_SHUTDOWN_TIMEOUT"] = "1m30s"
	setEnv(t, env)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.ReadTimeout != 5*time.Minute {
		t.Errorf("Server.ReadTimeout = %v, want 5m", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("Server.WriteTimeout = %v, want 30s", cfg.Server.WriteTimeout)
	}
	if cfg.Server.IdleTimeout != 2*time.Hour {
		t.Errorf("Server.IdleTimeout = %v, want 2h", cfg.Server.IdleTimeout)
	}
	if cfg.Server.ShutdownTimeout != 90*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 1m30s", cfg.Server.ShutdownTimeout)
	}
}

func TestAppConfig_IDGenerator(t *testing.T) {
	tests := []struct {
		version string
		want    int
	}{
		{"v4", 4},
		{"v7", 7},
		{"", 4},
	}

	for _, tt := range tests {
		t.Run("version "+tt.version, func(t *testing.T) {
			c := AppConfig{IDVersion: tt.version}
			id, err := c.IDGenerator().Generate()
			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if int(id.Version()) != tt.want {
				t.Errorf("UUID version = %d, want %d", id.Version(), tt.want)
			}
		})
	}
}
