// Package slogobs adapts Go's standard library log/slog to the
// observability.Logger interface.
package slogobs

import (
	"log/slog"
	"os"
	"strings"

	"github.com/llmc-dev/llmc/providers/observability"
)

// Logger routes structured log events through a slog.Logger.
type Logger struct {
	logger *slog.Logger
}

var _ observability.Logger = (*Logger)(nil)

// Option configures a Logger built by New.
type Option func(*config)

type config struct {
	logger *slog.Logger
	level  slog.Leveler
}

// WithLogger uses an existing slog.Logger instead of constructing one.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) { cfg.logger = logger }
}

// WithLevel sets the minimum level for the constructed handler. Ignored when
// WithLogger is used.
func WithLevel(level slog.Leveler) Option {
	return func(cfg *config) { cfg.level = level }
}

// New creates a slog-backed Logger. Without options it writes text to stderr
// at the level named by the LLMC_LOG_LEVEL environment variable (debug, info,
// warn, error), defaulting to info.
func New(opts ...Option) *Logger {
	cfg := config{level: levelFromEnv()}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.level}))
	}
	return &Logger{logger: logger}
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LLMC_LOG_LEVEL")) {
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

func (l *Logger) Debug(msg string, attrs ...observability.Attribute) {
	l.logger.Debug(msg, toSlogArgs(attrs)...)
}

func (l *Logger) Info(msg string, attrs ...observability.Attribute) {
	l.logger.Info(msg, toSlogArgs(attrs)...)
}

func (l *Logger) Warn(msg string, attrs ...observability.Attribute) {
	l.logger.Warn(msg, toSlogArgs(attrs)...)
}

func (l *Logger) Error(msg string, attrs ...observability.Attribute) {
	l.logger.Error(msg, toSlogArgs(attrs)...)
}

func toSlogArgs(attrs []observability.Attribute) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, slog.Any(attr.Key, attr.Value))
	}
	return args
}
