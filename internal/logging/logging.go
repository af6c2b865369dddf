package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds the JSON logger of the service. Unknown levels fall back to info.
func New(service, level string) *slog.Logger {
	return newWithWriter(os.Stdout, service, level)
}

func newWithWriter(w io.Writer, service, level string) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(h).With("service", service)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
