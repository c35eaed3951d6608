package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/sundayezeilo/repohub/internal/idgen"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	App     AppConfig
	CORS    CORSConfig
	Service ServiceConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"SERVER_PORT" required:"true"`
	Host            string        `envconfig:"SERVER_HOST" required:"true"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" required:"true"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" required:"true"`
	IdleTimeout     time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" required:"true"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" required:"true"`
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if c.Host == "" {
		return fmt.Errorf("host cannot be empty")
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	return nil
}

// Addr returns the host:port the server listens on.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// AppConfig holds application-specific configuration.
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" required:"true"`   // development, staging, production, test
	LogLevel    string `envconfig:"LOG_LEVEL" required:"true"` // debug, info, warn, error
	IDVersion   string `envconfig:"APP_ID_VERSION" default:"v4"`
}

// Validate validates the app configuration.
func (c *AppConfig) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Environment)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if _, err := idgen.ParseVersion(c.IDVersion); err != nil {
		return err
	}
	return nil
}

// IDGenerator returns the repository id generator selected by APP_ID_VERSION.
// Call it only on a validated config.
func (c *AppConfig) IDGenerator() idgen.Generator {
	v, err := idgen.ParseVersion(c.IDVersion)
	if err != nil {
		v = idgen.V4
	}
	return idgen.New(v)
}

// CORSConfig holds cross-origin settings. An empty list allows every origin.
type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
}

// ServiceConfig identifies the running service in health responses and logs.
type ServiceConfig struct {
	Name    string `envconfig:"SERVICE_NAME" default:"repohub"`
	Version string `envconfig:"SERVICE_VERSION" default:"dev"`
}

// Validate validates the service configuration.
func (c *ServiceConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("service name cannot be empty")
	}
	return nil
}

// Load loads configuration from environment variables only.
// (.env loading happens in the app package, for development and test.)
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process("", &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load Server config: %w", err)
	}
	if err := cfg.Server.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Server config: %w", err)
	}

	if err := envconfig.Process("", &cfg.App); err != nil {
		return nil, fmt.Errorf("failed to load App config: %w", err)
	}
	if err := cfg.App.Validate(); err != nil {
		return nil, fmt.Errorf("invalid App config: %w", err)
	}

	if err := envconfig.Process("", &cfg.CORS); err != nil {
		return nil, fmt.Errorf("failed to load CORS config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Service); err != nil {
		return nil, fmt.Errorf("failed to load Service config: %w", err)
	}
	if err := cfg.Service.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Service config: %w", err)
	}

	return cfg, nil
}
