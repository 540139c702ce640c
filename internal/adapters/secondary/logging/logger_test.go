package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fallinov/prez-app/internal/domain/entities"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name string
		cfg  entities.LoggingConfig
		want slog.Level
	}{
		{name: "default", cfg: entities.LoggingConfig{}, want: slog.LevelInfo},
		{name: "debug", cfg: entities.LoggingConfig{Level: "debug"}, want: slog.LevelDebug},
		{name: "warn", cfg: entities.LoggingConfig{Level: "warn"}, want: slog.LevelWarn},
		{name: "error", cfg: entities.LoggingConfig{Level: "error"}, want: slog.LevelError},
		{name: "verbose wins", cfg: entities.LoggingConfig{Level: "error", Verbose: true}, want: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Level(tt.cfg))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("text output filtered by level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, closeFn, err := New(entities.LoggingConfig{Level: "warn"}, &buf)
		require.NoError(t, err)
		defer func() { _ = closeFn() }()

		logger.Info("rendered deck", "slides", 3)
		logger.Warn("malformed base color", "color", "blue")

		out := buf.String()
		assert.NotContains(t, out, "rendered deck")
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, "color=blue")
	})

	t.Run("json output", func(t *testing.T) {
		var buf bytes.Buffer
		logger, _, err := New(entities.LoggingConfig{JSONFormat: true}, &buf)
		require.NoError(t, err)

		logger.Info("rendered deck", slog.Int("slides", 3))

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "rendered deck", record["msg"])
		assert.EqualValues(t, 3, record["slides"])
	})

	t.Run("fans out to file", func(t *testing.T) {
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "prez.log")

		logger, closeFn, err := New(entities.LoggingConfig{Level: "debug", File: path}, &buf)
		require.NoError(t, err)

		logger.Debug("dropped compare line", "line", "JPG|x")
		require.NoError(t, closeFn())

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 1)

		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
		assert.Equal(t, "dropped compare line", record["msg"])
		assert.Contains(t, buf.String(), "dropped compare line")
	})

	t.Run("unwritable file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "prez.log")

		_, _, err := New(entities.LoggingConfig{File: path}, &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
}
