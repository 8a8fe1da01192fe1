// Package logger provides structured logging functionality for the application.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/phrazzld/pagamentos-api/internal/config"
)

// Setup initializes and configures the application's logging system based on
// the provided configuration. It builds the handler for the configured format,
// sets the resulting logger as the process default and returns it.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	logger := slog.New(NewHandler(os.Stdout, cfg))

	// Allows the slog package functions (slog.Info, slog.Error, ...) to be used directly.
	slog.SetDefault(logger)

	return logger, nil
}

// NewHandler creates the slog.Handler for cfg writing to out. The "text"
// format produces colourised human-readable output for local development;
// anything else produces JSON.
func NewHandler(out io.Writer, cfg config.ServerConfig) slog.Handler {
	level := ParseLevel(cfg.LogLevel)

	if strings.EqualFold(cfg.LogFormat, "text") {
		return tint.NewHandler(out, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}

	return slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
}

// ParseLevel maps a configured level name to a slog.Level (case-insensitive).
// Unknown names fall back to info with a warning on stderr.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", name,
			"default_level", "info")
		return slog.LevelInfo
	}
}
