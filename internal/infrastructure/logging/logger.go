package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/infrastructure/config"
)

// NewLogger builds the process logger from config. The returned closer
// releases the log file when output is "file".
func NewLogger(cfg config.LoggingConfig, service string) (*slog.Logger, io.Closer, error) {
	writer, closer, err := openOutput(cfg)
	if err != nil {
		return nil, nil, err
	}
	return newLogger(writer, cfg, service), closer, nil
}

func newLogger(w io.Writer, cfg config.LoggingConfig, service string) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: cfg.IncludeCaller,
		Level:     parseLevel(cfg.Level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String("timestamp", a.Value.Time().Format("2006-01-02T15:04:05Z07:00"))
			}
			if a.Key == slog.MessageKey {
				return slog.String("message", a.Value.String())
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With("service", service)
}

func openOutput(cfg config.LoggingConfig) (io.Writer, io.Closer, error) {
	switch cfg.Output {
	case "", "stderr":
		return os.Stderr, nopCloser{}, nil
	case "stdout":
		return os.Stdout, nopCloser{}, nil
	case "file":
		if cfg.FilePath == "" {
			return nil, nil, fmt.Errorf("logging.file_path is required when output is file")
		}
		if !cfg.Rotation.Enabled {
			f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to open log file: %w", err)
			}
			return f, f, nil
		}
		rotator := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.Rotation.MaxSize,
			MaxBackups: cfg.Rotation.MaxBackups,
			MaxAge:     cfg.Rotation.MaxAge,
			Compress:   cfg.Rotation.Compress,
		}
		return rotator, rotator, nil
	default:
		return nil, nil, fmt.Errorf("unsupported log output: %s", cfg.Output)
	}
}

func parseLevel(level string) slog.Level {
	switch level {
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

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SlogAdapter exposes an slog.Logger through the application Logger interface
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps an slog logger
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log implements common.Logger
func (a *SlogAdapter) Log(level, message string, metadata map[string]interface{}) {
	attrs := make([]slog.Attr, 0, len(metadata))
	for k, v := range metadata {
		attrs = append(attrs, slog.Any(k, v))
	}
	a.logger.LogAttrs(context.Background(), toSlogLevel(level), message, attrs...)
}

func toSlogLevel(level string) slog.Level {
	switch level {
	case common.LevelDebug:
		return slog.LevelDebug
	case common.LevelWarn:
		return slog.LevelWarn
	case common.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var _ common.Logger = (*SlogAdapter)(nil)
