package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/maxsplawski/cashcard-rest-api/internal/config"
)

// Setup initializes the application's logging system from the provided
// configuration. It creates a structured JSON logger with the configured
// log level, sets it as the process-wide default, and returns it.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	// Parse the log level from configuration (case-insensitive)
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		// Fall back to info and warn about the bad value
		level = slog.LevelInfo

		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	log := slog.New(handler)

	// Allow using the slog package functions directly (slog.Info, ...)
	slog.SetDefault(log)

	return log, nil
}
