package common

import (
	"context"
	"time"
)

// Log levels understood by Logger implementations
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARNING"
	LevelError = "ERROR"
)

// Logger provides structured logging for application code
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return &noOpLogger{}
}

type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {}

// LoggingMiddleware logs every request with its outcome and duration
func LoggingMiddleware(nameOf func(Request) string) Middleware {
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		logger := LoggerFromContext(ctx)
		name := nameOf(request)
		start := time.Now()

		resp, err := next(ctx, request)

		meta := map[string]interface{}{
			"request":     name,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			meta["error"] = err.Error()
			logger.Log(LevelWarn, "request failed", meta)
			return resp, err
		}
		logger.Log(LevelDebug, "request handled", meta)
		return resp, err
	}
}
