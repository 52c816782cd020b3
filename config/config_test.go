package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/supernova/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "gk-test")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "gk-test", cfg.GeminiAPIKey)
		assert.Empty(t, cfg.DataDir)
		assert.Equal(t, "gemini-2.5-pro", cfg.Model)
		assert.False(t, cfg.PaymentSuccess)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "gk-test")
		t.Setenv("SUPERNOVA_DATA_DIR", "/var/lib/supernova")
		t.Setenv("SUPERNOVA_MODEL", "gemini-3-pro")
		t.Setenv("SUPERNOVA_PAYMENT_SUCCESS", "true")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "/var/lib/supernova", cfg.DataDir)
		assert.Equal(t, "gemini-3-pro", cfg.Model)
		assert.True(t, cfg.PaymentSuccess)
	})

	t.Run("missing api key", func(t *testing.T) {
		// t.Setenv registers the restore; the variable must be absent, not
		// just empty, for the required check to trip.
		t.Setenv("GEMINI_API_KEY", "x")
		require.NoError(t, os.Unsetenv("GEMINI_API_KEY"))

		_, err := config.Load()
		assert.Error(t, err)
	})
}

func TestResolveDataDir(t *testing.T) {
	t.Run("explicit dir wins", func(t *testing.T) {
		cfg := &config.Config{DataDir: "/tmp/custom"}
		dir, err := cfg.ResolveDataDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/custom", dir)
	})

	t.Run("defaults under home", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		cfg := &config.Config{}
		dir, err := cfg.ResolveDataDir()
		require.NoError(t, err)
		assert.Equal(t, ".supernova", filepath.Base(dir))
	})
}
