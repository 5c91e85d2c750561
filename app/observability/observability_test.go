package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerFormats(t *testing.T) {
	t.Run("json outside development", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger("production", slog.LevelInfo, &buf)
		logger.Info("scores submitted", slog.String("assignment_id", "a1"))

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "scores submitted", line["msg"])
		assert.Equal(t, "a1", line["assignment_id"])
		assert.Equal(t, serviceName, line["service"])
	})

	t.Run("text in development", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger("development", slog.LevelInfo, &buf)
		logger.Info("scores submitted")
		assert.True(t, strings.Contains(buf.String(), "msg=\"scores submitted\""))
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger("production", slog.LevelWarn, &buf)
		logger.Info("ignored")
		assert.Empty(t, buf.String())
	})
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	obs, err := New(Config{Environment: "test", MetricsEnabled: true}, &buf)
	require.NoError(t, err)
	assert.NotNil(t, obs.Logger)
	assert.NotNil(t, obs.Tracer)
	assert.NotNil(t, obs.Metrics)
	assert.NotNil(t, obs.Registry)

	obs, err = New(Config{Environment: "test"}, &buf)
	require.NoError(t, err)
	assert.Nil(t, obs.Registry)
	assert.NotNil(t, obs.Metrics)
}
