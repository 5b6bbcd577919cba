package core

import (
	"io"
	"log/slog"
	"os"
	"strings"

	tlog "go.temporal.io/sdk/log"
)

// ParseLevel maps a config string to a slog level, defaulting to info
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

// NewLogger creates the process logger writing text records to stdout
func NewLogger(level string) *slog.Logger {
	return NewLoggerTo(os.Stdout, level)
}

// NewLoggerTo creates a text logger writing to w
func NewLoggerTo(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}

// NewTemporalLogger adapts a slog logger for Temporal clients and workers
func NewTemporalLogger(logger *slog.Logger) tlog.Logger {
	return NewFilteredLogger(tlog.NewStructuredLogger(logger))
}

// FilteredLogger wraps a Temporal logger and filters out specific warning messages
type FilteredLogger struct {
	logger tlog.Logger
}

// NewFilteredLogger creates a new filtered logger that suppresses HTTP 204 warnings
func NewFilteredLogger(logger tlog.Logger) *FilteredLogger {
	return &FilteredLogger{logger: logger}
}

// shouldFilter checks if a warning message should be filtered out
func (f *FilteredLogger) shouldFilter(msg string) bool {
	// HTTP 204 warning about missing content-type header
	return strings.Contains(msg, "204 (No Content)") &&
		strings.Contains(msg, "malformed header: missing HTTP content-typ")
}

// Debug logs a debug message
func (f *FilteredLogger) Debug(msg string, keyvals ...interface{}) {
	f.logger.Debug(msg, keyvals...)
}

// Info logs an info message
func (f *FilteredLogger) Info(msg string, keyvals ...interface{}) {
	f.logger.Info(msg, keyvals...)
}

// Warn logs a warning message, but filters out the HTTP 204 warning
func (f *FilteredLogger) Warn(msg string, keyvals ...interface{}) {
	if f.shouldFilter(msg) {
		return
	}
	f.logger.Warn(msg, keyvals...)
}

// Error logs an error message
func (f *FilteredLogger) Error(msg string, keyvals ...interface{}) {
	f.logger.Error(msg, keyvals...)
}

// With returns a new logger with additional key-value pairs
func (f *FilteredLogger) With(keyvals ...interface{}) tlog.Logger {
	return &FilteredLogger{logger: tlog.With(f.logger, keyvals...)}
}
