// Package logging provides the leveled logger injected into the analysis
// pipeline.
package logging

import (
	"io"
	"log"
	"os"
	"strings"
)

// Level represents different logging verbosity levels
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// ParseLevel maps ERROR, WARN, INFO, DEBUG (any case) to a Level.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LevelError, true
	case "WARN", "WARNING":
		return LevelWarn, true
	case "INFO":
		return LevelInfo, true
	case "DEBUG":
		return LevelDebug, true
	}
	return LevelInfo, false
}

func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	}
	return "UNKNOWN"
}

// Logger provides leveled logging
type Logger struct {
	level Level
	out   *log.Logger
}

// New creates a logger writing to w
func New(w io.Writer, level Level) *Logger {
	return &Logger{level: level, out: log.New(w, "", log.LstdFlags)}
}

// NewStderr creates a logger on standard error
func NewStderr(level Level) *Logger {
	return New(os.Stderr, level)
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return New(io.Discard, LevelError)
}

// OrDiscard returns l, or a discarding logger when l is nil
func OrDiscard(l *Logger) *Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// Level returns the configured verbosity
func (l *Logger) Level() Level {
	return l.level
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LevelError, format, args...)
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LevelWarn, format, args...)
}

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LevelInfo, format, args...)
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LevelDebug, format, args...)
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if l.level < level {
		return
	}
	l.out.Printf("["+level.String()+"] "+format, args...)
}
