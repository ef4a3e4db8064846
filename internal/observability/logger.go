package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel selects the log level: debug, info, warn or error.
const EnvLevel = "NEXUS_LOG_LEVEL"

// NewLogger returns a text logger on stderr tagged with the component name.
func NewLogger(component string) *slog.Logger {
	return NewLoggerTo(os.Stderr, component)
}

func NewLoggerTo(w io.Writer, component string) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelFromEnv()})
	return slog.New(h).With("component", component)
}

// Discard is used by tests and by frontends that own the terminal.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvLevel))) {
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
