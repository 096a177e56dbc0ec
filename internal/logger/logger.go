package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// LogLevel defines log severity levels
type LogLevel int

const (
	// Log levels from least to most restrictive
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

// Interface is the logging surface the other packages depend on.
type Interface interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Noop discards everything.
type Noop struct{}

func (Noop) Debug(format string, args ...interface{}) {}
func (Noop) Info(format string, args ...interface{})  {}
func (Noop) Warn(format string, args ...interface{})  {}
func (Noop) Error(format string, args ...interface{}) {}

var prefixes = [...]struct {
	label string
	paint func(format string, a ...interface{}) string
}{
	LevelDebug: {"DEBUG", color.CyanString},
	LevelInfo:  {"INFO", color.BlueString},
	LevelWarn:  {"WARN", color.YellowString},
	LevelError: {"ERROR", color.RedString},
}

// Logger writes leveled, optionally colorized lines to out
type Logger struct {
	out       io.Writer
	useColors bool
	level     LogLevel
	now       func() time.Time
}

// New creates a new Logger; verbose starts it at debug level
func New(out io.Writer, verbose bool, useColors bool) *Logger {
	level := LevelInfo
	if verbose {
		level = LevelDebug
	}

	return &Logger{
		out:       out,
		useColors: useColors,
		level:     level,
		now:       time.Now,
	}
}

// WithLevel sets the log level and returns the logger
func (l *Logger) WithLevel(level LogLevel) *Logger {
	l.level = level
	return l
}

// SetLevel sets the log level from its name
func (l *Logger) SetLevel(levelStr string) {
	l.WithLevel(ParseLevel(levelStr))
}

// Level reports the current threshold.
func (l *Logger) Level() LogLevel {
	return l.level
}

// ParseLevel converts a level name to a LogLevel, falling back to info.
func ParseLevel(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "none", "off":
		return LevelNone
	default:
		return LevelInfo
	}
}

func (l *Logger) Debug(format string, args ...interface{}) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.logf(LevelError, format, args...) }

func (l *Logger) logf(level LogLevel, format string, args ...interface{}) {
	if level < l.level || level >= LevelNone {
		return
	}
	prefix := prefixes[level].label
	if l.useColors {
		prefix = prefixes[level].paint(prefix)
	}
	fmt.Fprintf(l.out, "[%s %s] %s\n", l.now().Format("15:04:05.000"), prefix, fmt.Sprintf(format, args...))
}
