// Package logging builds the zerolog loggers used by the CLI and the HTTP server.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a human-readable console logger for interactive commands.
// quiet raises the level to warn; verbose lowers it to debug.
func New(w io.Writer, quiet, verbose bool) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level(quiet, verbose)).With().Timestamp().Logger()
}

// NewJSON returns a structured JSON logger, used by serve.
func NewJSON(w io.Writer, quiet, verbose bool) zerolog.Logger {
	return zerolog.New(w).Level(level(quiet, verbose)).With().Timestamp().Logger()
}

func level(quiet, verbose bool) zerolog.Level {
	switch {
	case quiet:
		return zerolog.WarnLevel
	case verbose:
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
