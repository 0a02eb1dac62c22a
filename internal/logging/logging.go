// Package logging provides zerolog construction and context plumbing for the
// alufocus CLI and engines.
//
// Engines never hold a logger; they recover one from the context with
// FromContext and tag events with a "component" field.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config describes how a logger should be constructed.
type Config struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	// Unparseable values fall back to info.
	Level string

	// Format selects the output encoding: "console" or "json".
	Format string

	// Output selects the destination: "stderr", "stdout", or "file".
	Output string

	// File is the log file path, used when Output is "file".
	File string

	// Caller enables caller annotation on every event.
	Caller bool
}

const (
	outputStderr = "stderr"
	outputStdout = "stdout"
	outputFile   = "file"

	formatJSON = "json"

	logFileMode = 0o600
)

// New constructs a zerolog.Logger from cfg.
//
// When Output is "file" but the file cannot be opened, the logger falls back
// to stderr rather than failing: losing log output must never abort a
// computation run. The returned cleanup function closes the log file handle
// if one was opened; it is safe to call always.
func New(cfg Config) (zerolog.Logger, func()) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer
	cleanup := func() {}

	switch cfg.Output {
	case outputFile:
		if f, ferr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode); ferr == nil {
			out = f
			cleanup = func() { _ = f.Close() }
		} else {
			out = os.Stderr
		}
	case outputStdout:
		out = os.Stdout
	default:
		out = os.Stderr
	}

	if cfg.Format != formatJSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lc := zerolog.New(out).Level(lvl).With().Timestamp()
	if cfg.Caller {
		lc = lc.Caller()
	}
	return lc.Logger(), cleanup
}

// ComponentLogger returns a child logger tagged with a component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// WithContext attaches logger to ctx so downstream code can recover it with
// FromContext.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger attached to ctx, or a disabled logger when
// none is attached. Engines call this instead of holding logger fields.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
