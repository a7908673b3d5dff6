package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, v, err := Load()
	require.NoError(t, err)
	require.NotNil(t, v)

	assert.Equal(t, "http://localhost:5000/api", cfg.APIBaseURL)
	assert.Equal(t, 12*time.Second, cfg.SyncInterval)
	assert.NotEmpty(t, cfg.CacheDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, cfg.CacheDir, v.GetString("cache.dir"))
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PW_API_BASE_URL", "http://bank.internal:9000/api")
	t.Setenv("PW_SYNC_INTERVAL", "5s")

	cfg, _, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://bank.internal:9000/api", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.SyncInterval)
}

func TestLoadRejectsBadBaseURL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PW_API_BASE_URL", "not a url")

	_, _, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config")
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PW_LOG_LEVEL", "loud")

	_, _, err := Load()
	require.Error(t, err)
}
