// Package logger builds the zerolog logger used across devport.
//
// Logs go to stderr by default so that stdout stays reserved for command
// output (port numbers, JSON).
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds the configuration for initializing the logger.
type Config struct {
	Writer  io.Writer     // Optional: defaults to os.Stderr
	Level   zerolog.Level // Minimum level to emit
	Pretty  bool          // Human-readable console output instead of JSON lines
	AppName string        // Optional: added as the "app" field
}

// New returns a logger for cfg. It does not touch zerolog's global state.
func New(cfg Config) zerolog.Logger {
	writer := cfg.Writer
	if writer == nil {
		writer = os.Stderr
	}

	if cfg.Pretty {
		writer = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = writer
			w.TimeFormat = time.Kitchen
		})
	}

	ctx := zerolog.New(writer).Level(cfg.Level).With().Timestamp()
	if cfg.AppName != "" {
		ctx = ctx.Str("app", cfg.AppName)
	}
	return ctx.Logger()
}

// ParseLevel converts a level name ("debug", "info", ...) to a zerolog
// level. An empty string means warn.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return zerolog.WarnLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(s))
}
