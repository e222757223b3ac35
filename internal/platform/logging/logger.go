// Package logging configures the process-wide slog logger. Log output goes to
// its own writer (stderr in the CLI) so it never mixes with dashboard output.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/jobtrack/jobtrack-go/internal/platform/correlation"
)

// ParseLevel accepts the slog level names ("debug", "INFO", "warn+2", ...).
// Empty or unknown input falls back to warn.
func ParseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelWarn
	}
	return lvl
}

// New builds a logger writing to w. format "json" selects the JSON handler,
// anything else text. Records carry the request ID of their context.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var h slog.Handler = slog.NewTextHandler(w, opts)
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(correlation.Handler(h))
}

// InitLogger installs New(w, level, format) as the slog default.
func InitLogger(w io.Writer, level, format string) {
	slog.SetDefault(New(w, level, format))
}
