package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamcar/roamcar/internal/config"
)

func TestSetup(t *testing.T) {
	t.Run("writes structured JSON at the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		log := Setup(config.AppConfig{LogLevel: "warn"}, &buf)

		log.Info("should be filtered")
		log.Warn("kept", "key", "value")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "kept", entry["msg"])
		assert.Equal(t, "value", entry["key"])
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		log := Setup(config.AppConfig{LogLevel: "loud"}, &buf)

		log.Debug("filtered at info")
		log.Info("kept")

		assert.Contains(t, buf.String(), "kept")
		assert.NotContains(t, buf.String(), "filtered at info")
	})
}
