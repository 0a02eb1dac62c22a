package config

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/smelterlab/alufocus/internal/logging"
)

// Logger is the global zerolog logger instance.
//
//nolint:gochecknoglobals // Intentionally global for application-wide structured logging.
var Logger zerolog.Logger

// logMu protects concurrent access to Logger and its cleanup function.
//
//nolint:gochecknoglobals // Guards the global logger state.
var logMu sync.RWMutex

// logCleanup closes the current log file handle, if any.
//
//nolint:gochecknoglobals // Tracks the global logger's file handle for proper cleanup.
var logCleanup = func() {}

// InitLogger replaces the global Logger according to the logging config.
// Any previously opened log file is closed first.
func InitLogger(lc LoggingConfig) {
	logMu.Lock()
	defer logMu.Unlock()

	logCleanup()

	output := "stderr"
	if lc.File != "" {
		output = "file"
	}
	Logger, logCleanup = logging.New(logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	})
}

// CloseLogger closes the global logger's file handle, if one is open.
func CloseLogger() {
	logMu.Lock()
	defer logMu.Unlock()
	logCleanup()
	logCleanup = func() {}
}

// GetLogger returns the global logger instance.
func GetLogger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return Logger
}

// init installs a console-only info-level logger so logging is available
// before any configuration is loaded.
//
//nolint:gochecknoinits // Intentional: a logger must exist before config load.
func init() {
	InitLogger(LoggingConfig{Level: "info", Format: "console"})
}
