package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Fields carries structured attributes for a log line
type Fields map[string]any

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
	level            = new(slog.LevelVar)
	logger *slog.Logger
)

// ParseLevel maps a config string to a slog level, defaulting to info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// Init (re)builds the package logger with the given level name
func Init(levelName string) {
	mu.Lock()
	defer mu.Unlock()
	level.Set(ParseLevel(levelName))
	logger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))
}

// SetOutput redirects log output, mainly for tests. Passing nil restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	if w == nil {
		w = os.Stderr
	}
	output = w
	logger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))
	mu.Unlock()
}

// Get returns the configured logger, initializing it at info level on first use
func Get() *slog.Logger {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l == nil {
		Init("info")
		mu.Lock()
		l = logger
		mu.Unlock()
	}
	return l
}

// With returns a child logger carrying the given fields
func With(fields Fields) *slog.Logger {
	return Get().With(attrs(fields)...)
}

func Debug(msg string, fields ...Fields) { Get().Debug(msg, attrs(fields...)...) }
func Info(msg string, fields ...Fields)  { Get().Info(msg, attrs(fields...)...) }
func Warn(msg string, fields ...Fields)  { Get().Warn(msg, attrs(fields...)...) }
func Error(msg string, fields ...Fields) { Get().Error(msg, attrs(fields...)...) }

// Infof logs a formatted info message.
func Infof(format string, args ...any) {
	Get().Info(fmt.Sprintf(format, args...))
}

// Errorf logs a formatted error message.
func Errorf(format string, args ...any) {
	Get().Error(fmt.Sprintf(format, args...))
}

func attrs(fields ...Fields) []any {
	result := []any{}
	for _, field := range fields {
		for k, v := range field {
			result = append(result, k, v)
		}
	}
	return result
}
