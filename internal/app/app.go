package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/sundayezeilo/repohub/internal/config"
	"github.com/sundayezeilo/repohub/internal/repos"
	"github.com/sundayezeilo/repohub/internal/server"
)

// App holds the application dependencies and configuration.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Store   repos.Store
	Server  *server.Server
	Handler *repos.Handler
}

// New initializes and returns a new App instance with all dependencies wired up.
func New(_ context.Context) (*App, error) {
	loadEnv()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger(cfg.App.LogLevel)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"env", cfg.App.Environment,
		"service", cfg.Service.Name,
		"version", cfg.Service.Version,
	)

	store := repos.NewMemoryStore(&repos.StoreConfig{
		IDGenerator: cfg.App.IDGenerator(),
	})
	handler := repos.NewHandler(repos.HandlerConfig{
		Store:  store,
		Logger: logger,
	})

	srv := server.New(cfg, logger, handler)

	logger.Info("application initialized",
		"addr", cfg.Server.Addr(),
		"id_version", cfg.App.IDVersion,
	)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Server:  srv,
		Handler: handler,
	}, nil
}

// Start starts the application server.
func (a *App) Start(ctx context.Context) error {
	a.Logger.Info("server starting", "addr", a.Config.Server.Addr())

	if err := a.Server.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown releases application resources. The repository collection lives
// only in memory and is discarded with the process.
func (a *App) Shutdown() error {
	a.Logger.Info("shutting down application")
	return nil
}

// loadEnv loads a .env file only in development and test environments.
func loadEnv() {
	env := os.Getenv("APP_ENV")
	if env != "development" && env != "test" {
		return
	}
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found", "error", err)
	}
}

// setupLogger creates a structured logger based on the log level.
func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}
