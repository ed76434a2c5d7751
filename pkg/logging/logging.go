// Package logging builds the structured loggers used by long-running
// commands and bridges them to the printf-style Logger of the importer.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Level represents the logging level.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	switch l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return true
	default:
		return false
	}
}

// Format represents the output format for logs.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return f == FormatJSON || f == FormatText
}

// Config holds the configuration for the logger.
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
}

// DefaultConfig logs text at info level to stderr, leaving stdout to
// protocol and report output.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
	}
}

// New creates a structured logger with the given configuration.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(cfg.Output, opts)
	default:
		handler = slog.NewTextHandler(cfg.Output, opts)
	}

	return slog.New(handler)
}

func parseLevel(level Level) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Adapter exposes a *slog.Logger through printf-style methods.
type Adapter struct {
	Logger *slog.Logger
}

// NewAdapter returns an Adapter for l, or for slog.Default when l is nil.
func NewAdapter(l *slog.Logger) *Adapter {
	if l == nil {
		l = slog.Default()
	}
	return &Adapter{Logger: l}
}

func (a *Adapter) Debugf(format string, args ...any) { a.Logger.Debug(fmt.Sprintf(format, args...)) }
func (a *Adapter) Infof(format string, args ...any)  { a.Logger.Info(fmt.Sprintf(format, args...)) }
func (a *Adapter) Warnf(format string, args ...any)  { a.Logger.Warn(fmt.Sprintf(format, args...)) }
func (a *Adapter) Errorf(format string, args ...any) { a.Logger.Error(fmt.Sprintf(format, args...)) }

// With returns an Adapter whose messages carry the given attributes.
func (a *Adapter) With(args ...any) *Adapter {
	return &Adapter{Logger: a.Logger.With(args...)}
}
