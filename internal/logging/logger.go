package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Logger writes user-facing diagnostics to stderr. Secret values must never
// reach it directly; wrap them in Secret or run messages through Redact.
type Logger struct {
	debug   bool
	noColor bool
	out     io.Writer
}

// New creates a logger. Debug messages are dropped unless debug is true.
func New(debug, noColor bool) *Logger {
	return &Logger{debug: debug, noColor: noColor, out: os.Stderr}
}

func (l *Logger) emit(color, glyph, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.noColor {
		fmt.Fprintf(l.out, "%s %s\n", glyph, msg)
		return
	}
	fmt.Fprintf(l.out, "%s%s\033[0m %s\n", color, glyph, msg)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.emit("\033[32m", "✓", format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.emit("\033[33m", "⚠", format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.emit("\033[31m", "✗", format, args...)
}

// Debug logs a debug message when debug mode is enabled.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.emit("\033[36m", "[DEBUG]", format, args...)
}

// Secret wraps a sensitive value so that any fmt verb renders it redacted.
type Secret string

func (s Secret) String() string { return "[REDACTED]" }

// GoString covers %#v formatting.
func (s Secret) GoString() string { return "[REDACTED]" }

// Redact replaces occurrences of the given secret values in s. Values of
// three characters or fewer are skipped to avoid shredding ordinary text.
func Redact(s string, secrets []string) string {
	for _, secret := range secrets {
		if len(secret) > 3 {
			s = strings.ReplaceAll(s, secret, "[REDACTED]")
		}
	}
	return s
}
