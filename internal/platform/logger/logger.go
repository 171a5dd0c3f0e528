// Package logger provides structured logging functionality for the
// application.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/roamcar/roamcar/internal/config"
)

// Setup initializes the application's logging based on the provided
// configuration: a structured JSON logger writing to w (stderr keeps
// stdout free for the interactive console) at the configured level, set
// as the process default.
//
// An invalid level falls back to info with a warning rather than failing
// startup.
func Setup(cfg config.AppConfig, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

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
		level = slog.LevelInfo
		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}
