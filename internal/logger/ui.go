package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// UILogger writes user-facing status lines. Lines go to stderr so that
// stdout stays clean for the values a command prints (URLs, JSON).
type UILogger struct {
	mu  sync.Mutex
	out io.Writer
}

func NewUILogger() *UILogger {
	return &UILogger{out: os.Stderr}
}

// NewUILoggerTo is NewUILogger with an explicit writer.
func NewUILoggerTo(w io.Writer) *UILogger {
	return &UILogger{out: w}
}

// IsInteractive reports whether stdout is attached to a terminal.
// Used to decide when to use interactive UI elements like spinners.
func IsInteractive() bool {
	return isCharDevice(os.Stdout)
}

func isCharDevice(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	// If it's a pipe or regular file, it's not interactive
	return fi.Mode()&os.ModeCharDevice != 0
}

func (l *UILogger) Logf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, format, args...)
}

func (l *UILogger) Log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, strings.TrimSuffix(msg, "\n"))
}
