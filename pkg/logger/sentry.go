package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `yaml:"dsn" env:"SENTRY_DSN"`
	Environment string `yaml:"environment" env:"SENTRY_ENVIRONMENT"`
	// MinLevel is "warn" (warnings and errors, default) or "error".
	MinLevel string `yaml:"min_level" env:"SENTRY_MIN_LEVEL"`
}

// NewWithSentry creates a logger that sends logs to both stdout and Sentry.
// If DSN is empty, only stdout logging is enabled.
// Context extractors are applied to logs sent to both destinations.
func NewWithSentry(cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	stdoutHandler := newJSONHandler(os.Stdout, slog.LevelInfo)

	sentryHandler, ok := newSentryHandler(cfg, stdoutHandler)
	if !ok {
		return slog.New(NewLogHandlerDecorator(stdoutHandler, extractors...))
	}

	// Wrap with decorator so context extractors work for both destinations
	return slog.New(NewLogHandlerDecorator(newMultiHandler(stdoutHandler, sentryHandler), extractors...))
}

// newSentryHandler initializes the Sentry SDK. Init failures are reported
// through fallback and leave logging on fallback only.
func newSentryHandler(cfg SentryConfig, fallback slog.Handler) (slog.Handler, bool) {
	if cfg.DSN == "" {
		return nil, false
	}

	env := cfg.Environment
	if env == "" {
		env = "production"
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: env,
		EnableLogs:  true,
	}); err != nil {
		slog.New(fallback).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return nil, false
	}

	eventLevel := []slog.Level{slog.LevelError}
	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if ParseLevel(cfg.MinLevel) == slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	return sentryslog.Option{
		EventLevel: eventLevel, // Errors create Issues in Sentry
		LogLevel:   logLevel,   // Logs stored for context/search
	}.NewSentryHandler(context.Background()), true
}
