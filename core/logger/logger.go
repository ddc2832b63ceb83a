package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu  sync.RWMutex
	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
)

// Init replaces the default logger with one at the given level ("debug",
// "info", "warn", "error"). Safe to call before or after logging has started.
func Init(level string) {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(level)})
	mu.Lock()
	log = slog.New(h).With(slog.String("service", "appointease-api"))
	mu.Unlock()
}

func parseLevel(level string) slog.Level {
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

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Info logs at info level. Args are alternating key/value pairs; a trailing
// bare error is logged under the "error" key.
func Info(msg string, args ...any) {
	current().Info(msg, normalize(args)...)
}

func Debug(msg string, args ...any) {
	current().Debug(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	current().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	current().Error(msg, normalize(args)...)
}

// normalize tolerates call sites that pass a bare error (or any odd trailing
// value) instead of a key/value pair.
func normalize(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}
	last := args[len(args)-1]
	out := make([]any, 0, len(args)+1)
	out = append(out, args[:len(args)-1]...)
	if err, ok := last.(error); ok {
		return append(out, slog.Any("error", err))
	}
	return append(out, slog.Any("detail", last))
}
