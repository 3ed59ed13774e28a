// Package logger provides leveled logging for slidemerge.
//
// Debug, Info and Warn messages are printed only in verbose mode (--verbose)
// and trace each merge, build and export step. Errors are always printed.
// Output goes to stderr so stdout stays free for command output and the
// MCP stdio transport.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is the severity of a message.
type Level int

// Levels in increasing severity.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the tag printed before a message.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Enabled reports whether messages at level are printed.
func Enabled(level Level) bool {
	return level >= LevelError || IsVerbose()
}

// Debug prints step-level detail.
func Debug(format string, args ...any) {
	logf(LevelDebug, format, args...)
}

// Info prints progress messages.
func Info(format string, args ...any) {
	logf(LevelInfo, format, args...)
}

// Warn prints non-fatal problems.
func Warn(format string, args ...any) {
	logf(LevelWarn, format, args...)
}

// Error prints failures regardless of verbose mode.
func Error(format string, args ...any) {
	logf(LevelError, format, args...)
}

// Section prints a header separating the log of one file from the next.
func Section(name string) {
	if !Enabled(LevelDebug) {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, "\n=== %s ===\n", name)
}

// Since logs the time elapsed since start at info level.
// Use as: defer logger.Since("merge folder", time.Now())
func Since(label string, start time.Time) {
	Info("%s took %s", label, time.Since(start).Round(time.Millisecond))
}

func logf(level Level, format string, args ...any) {
	if !Enabled(level) {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, "[%s] %s\n", level, fmt.Sprintf(format, args...))
}
