package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("text handler filters below level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger, err := New(buf, "info", "text")
		require.NoError(t, err)

		logger.Debug("hidden")
		logger.Info("round completed", "round", 3)

		output := buf.String()
		assert.NotContains(t, output, "hidden")
		assert.Contains(t, output, "round completed")
		assert.Contains(t, output, "round=3")
		assert.Contains(t, output, "level=INFO")
	})

	t.Run("json handler", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger, err := New(buf, "debug", "json")
		require.NoError(t, err)

		logger.With("component", "engine").Warn("unsatisfiable", "person", 4)

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "WARN", rec["level"])
		assert.Equal(t, "unsatisfiable", rec["msg"])
		assert.Equal(t, "engine", rec["component"])
		assert.InDelta(t, 4, rec["person"], 0)
	})

	t.Run("rejects unknown level and format", func(t *testing.T) {
		_, err := New(&bytes.Buffer{}, "loud", "text")
		require.Error(t, err)

		_, err = New(&bytes.Buffer{}, "info", "xml")
		require.Error(t, err)
	})
}

func TestSlogLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(buf, "debug", "text")
	require.NoError(t, err)

	logger.Debug("d", "k", "v")
	logger.Info("i")
	logger.Warn("w")
	logger.Error("e")

	output := buf.String()
	assert.Contains(t, output, "level=DEBUG")
	assert.Contains(t, output, "k=v")
	assert.Contains(t, output, "level=INFO")
	assert.Contains(t, output, "level=WARN")
	assert.Contains(t, output, "level=ERROR")
}
