package config

import (
	"io"
	"log/slog"
)

// NewLogger builds the process logger from the [log] section. The config is
// expected to be validated; an unknown level falls back to info.
func NewLogger(cfg LogConfig, w io.Writer) *slog.Logger {
	level, _ := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
