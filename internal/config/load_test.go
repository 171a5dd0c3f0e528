package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "info", cfg.App.LogLevel)
		assert.NotEmpty(t, cfg.Storage.Dir)
	})

	t.Run("environment overrides", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("ROAMCAR_STORAGE_DIR", dir)
		t.Setenv("ROAMCAR_APP_LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, dir, cfg.Storage.Dir)
		assert.Equal(t, "debug", cfg.App.LogLevel)
	})

	t.Run("invalid log level fails validation", func(t *testing.T) {
		t.Setenv("ROAMCAR_APP_LOG_LEVEL", "verbose")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}
