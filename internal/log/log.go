// Package log configures the zerolog logger shared by every component.
//
// The terminal belongs to the UI, so log lines go to a file instead of
// stdout. Components take a child logger with For(name), which tags every
// line with a "component" field.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	base = zerolog.Nop()
)

// Setup opens path for appending and installs it as the log destination.
// The returned closer must be called on shutdown.
func Setup(path, level string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	SetOutput(f, level)
	return f, nil
}

// SetOutput installs w as the log destination with the given level name
func SetOutput(w io.Writer, level string) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	l := zerolog.New(w).With().Timestamp().Logger().Level(ParseLevel(level))

	mu.Lock()
	base = l
	mu.Unlock()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// For returns a logger tagged with the component name
func For(component string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With().Str("component", component).Logger()
}

// Logger returns the untagged base logger
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}
