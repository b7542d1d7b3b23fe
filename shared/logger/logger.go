// Package logger builds the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger for the given environment. Development gets a
// human-readable console writer, everything else JSON on stdout.
func New(appEnv string) *zerolog.Logger {
	return NewWithWriter(appEnv, os.Stdout)
}

// NewWithWriter is like New but writes to w.
func NewWithWriter(appEnv string, w io.Writer) *zerolog.Logger {
	level := zerolog.InfoLevel
	out := w

	if appEnv == "development" {
		level = zerolog.DebugLevel
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &logger
}
