package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"sportify-api/internal/config"
)

// New builds the process logger from LOG_LEVEL and LOG_FORMAT.
func New(cfg config.Log) *slog.Logger {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg config.Log, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h)
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
