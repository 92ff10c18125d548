// Package main implements the entry point for the cash card API server,
// which stores per-owner cash card records behind JWT authentication.
package main

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/maxsplawski/cashcard-rest-api/internal/config"
	"github.com/maxsplawski/cashcard-rest-api/internal/platform/logger"
)

// main loads configuration, sets up logging, wires the application
// dependencies, and runs the HTTP server until it is signalled to stop.
func main() {
	cfg, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app, err := newApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to wire application: %v", err)
	}
	defer app.close()

	if err := app.run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application logging.
// Returns the loaded config and any initialization error.
func initializeApp() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if _, err := logger.Setup(cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	return cfg, nil
}
