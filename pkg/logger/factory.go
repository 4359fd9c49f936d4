package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Output formats accepted by Config.Format.
const (
	FormatJSON = "json"
	FormatDev  = "dev"
)

// Config selects the log level, output format and optional Sentry sink.
type Config struct {
	Level  string       `yaml:"level" env:"LOG_LEVEL"`   // debug, info, warn, error
	Format string       `yaml:"format" env:"LOG_FORMAT"` // json or dev
	Sentry SentryConfig `yaml:"sentry"`
}

// New creates a JSON-formatted logger with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(newJSONHandler(os.Stdout, slog.LevelInfo), extractors...))
}

// NewDevelopment creates a coloured, human readable logger on stderr.
// Colour is disabled when stderr is not a terminal.
func NewDevelopment(level slog.Level, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(newDevHandler(os.Stderr, level), extractors...))
}

// FromConfig builds the logger described by cfg. Records at or above the
// Sentry minimum level are also sent to Sentry when a DSN is configured.
func FromConfig(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	level := ParseLevel(cfg.Level)

	var base slog.Handler
	if strings.EqualFold(cfg.Format, FormatDev) {
		base = newDevHandler(os.Stderr, level)
	} else {
		base = newJSONHandler(os.Stdout, level)
	}

	if sh, ok := newSentryHandler(cfg.Sentry, base); ok {
		base = newMultiHandler(base, sh)
	}
	return slog.New(NewLogHandlerDecorator(base, extractors...))
}

// ParseLevel maps a level name to a slog.Level. Unknown names yield info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func newJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

func newDevHandler(f *os.File, level slog.Level) slog.Handler {
	return tint.NewHandler(colorable.NewColorable(f), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(f.Fd()),
	})
}
