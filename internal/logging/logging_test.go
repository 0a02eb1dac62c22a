package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "warn", level: "warn", want: zerolog.WarnLevel},
		{name: "mixed case", level: "TRACE", want: zerolog.TraceLevel},
		{name: "empty defaults to info", level: "", want: zerolog.InfoLevel},
		{name: "garbage defaults to info", level: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, cleanup := New(Config{Level: tt.level})
			defer cleanup()

			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alufocus.log")

	logger, cleanup := New(Config{Level: "info", Format: "json", Output: "file", File: path})
	logger.Info().Str("component", "test").Msg("hello")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"hello"`)
	assert.Contains(t, string(data), `"component":"test"`)
}

func TestNewFileOpenFailureFallsBack(t *testing.T) {
	// Directory path cannot be opened as a file; the logger must still work.
	logger, cleanup := New(Config{Level: "info", Output: "file", File: t.TempDir()})
	defer cleanup()

	assert.NotPanics(t, func() {
		logger.Info().Msg("still alive")
	})
}

func TestComponentLogger(t *testing.T) {
	base, cleanup := New(Config{Level: "debug", Format: "json"})
	defer cleanup()

	child := ComponentLogger(base, "engine")
	assert.Equal(t, base.GetLevel(), child.GetLevel())
}

func TestContextRoundtrip(t *testing.T) {
	logger, cleanup := New(Config{Level: "warn", Format: "json"})
	defer cleanup()

	ctx := WithContext(context.Background(), logger)
	got := FromContext(ctx)

	require.NotNil(t, got)
	assert.Equal(t, zerolog.WarnLevel, got.GetLevel())
}

func TestFromContextWithoutLogger(t *testing.T) {
	got := FromContext(context.Background())

	require.NotNil(t, got)
	assert.NotPanics(t, func() {
		got.Info().Msg("dropped")
	})
}
