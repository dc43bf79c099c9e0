// Package main implements the entry point for the wishlist API server,
// which manages per-user wish records behind a uniform error envelope.
package main

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/phrazzld/wishlist-api/internal/config"
	"github.com/phrazzld/wishlist-api/internal/platform/logger"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, and wires the
// application components.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"durable_store", cfg.Database.URL != "")

	return newApplication(cfg, appLogger)
}
