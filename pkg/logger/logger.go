package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Log is the process-wide structured logger. It defaults to info-level
// JSON so code paths that log stay safe before Init runs.
var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Init configures the process-wide JSON logger. Level is one of debug,
// info, warn, error; anything else falls back to info.
func Init(level string) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	Log = slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
