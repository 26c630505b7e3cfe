// Package logger provides a simple leveled logger for the application.
// It supports three levels: off (no output), normal (info/warn/error),
// and verbose (includes debug). Records are written through log/slog so
// they can be emitted as text or JSON. The logger is safe for concurrent use.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables all output including debug.
	LevelVerbose
)

// ParseLevel maps "off", "normal" and "verbose" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "quiet":
		return LevelOff, nil
	case "normal", "info", "":
		return LevelNormal, nil
	case "verbose", "debug":
		return LevelVerbose, nil
	default:
		return LevelNormal, fmt.Errorf("unknown log level %q", s)
	}
}

// String returns the level name accepted by ParseLevel.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelVerbose:
		return "verbose"
	default:
		return "normal"
	}
}

// Format selects the record encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Logger is a leveled logger. All methods are safe for concurrent use.
type Logger struct {
	level *slog.LevelVar
	sl    *slog.Logger
}

// New creates a text logger with the given level, writing to the given
// output. If out is nil, os.Stderr is used.
func New(level Level, out io.Writer) *Logger {
	return NewWithFormat(level, FormatText, out)
}

// NewWithFormat is New with an explicit record encoding.
func NewWithFormat(level Level, format Format, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}

	lv := new(slog.LevelVar)
	opts := &slog.HandlerOptions{Level: lv}

	var h slog.Handler
	if format == FormatJSON {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}

	l := &Logger{level: lv, sl: slog.New(h)}
	l.SetLevel(level)
	return l
}

// SetLevel changes the log level at runtime. Loggers derived with With
// share the level.
func (l *Logger) SetLevel(level Level) {
	switch level {
	case LevelOff:
		// Above every level the logger emits.
		l.level.Set(slog.LevelError + 1)
	case LevelVerbose:
		l.level.Set(slog.LevelDebug)
	default:
		l.level.Set(slog.LevelInfo)
	}
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	switch v := l.level.Level(); {
	case v > slog.LevelError:
		return LevelOff
	case v <= slog.LevelDebug:
		return LevelVerbose
	default:
		return LevelNormal
	}
}

// With returns a logger that adds the given key/value attributes to every
// record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{level: l.level, sl: l.sl.With(args...)}
}

// Slog exposes the underlying structured logger.
func (l *Logger) Slog() *slog.Logger { return l.sl }

// Debug logs a message at debug level (only visible in verbose mode).
func (l *Logger) Debug(format string, args ...any) {
	l.log(slog.LevelDebug, format, args...)
}

// Info logs a message at info level.
func (l *Logger) Info(format string, args ...any) {
	l.log(slog.LevelInfo, format, args...)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.log(slog.LevelWarn, format, args...)
}

// Error logs a message at error level.
func (l *Logger) Error(format string, args ...any) {
	l.log(slog.LevelError, format, args...)
}

func (l *Logger) log(level slog.Level, format string, args ...any) {
	ctx := context.Background()
	if !l.sl.Enabled(ctx, level) {
		return
	}
	l.sl.Log(ctx, level, fmt.Sprintf(format, args...))
}
