package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.Mode)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Equal(t, "@every 30s", cfg.HealthInterval)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "barn.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url: https://barn.example.com
token: abc
organization_id: org-9
mode: live
timeout_seconds: 10
logging:
  level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://barn.example.com", cfg.BaseURL)
	assert.Equal(t, "org-9", cfg.OrganizationID)
	assert.Equal(t, "live", cfg.Mode)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, "@every 30s", cfg.HealthInterval)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "barn.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: live\ntoken: from-file\n"), 0o600))

	t.Setenv("BARN_MODE", "simulated")
	t.Setenv("BARN_API_TOKEN", "dev-token")
	t.Setenv("BARN_DEV_MODE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "simulated", cfg.Mode)
	assert.Equal(t, "dev-token", cfg.Token)
	assert.True(t, cfg.DevMode)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestTimeout_FloorsInvalid(t *testing.T) {
	cfg := &Config{TimeoutSeconds: 0}
	assert.Equal(t, 30*time.Second, cfg.Timeout())

	cfg.TimeoutSeconds = -5
	assert.Equal(t, 30*time.Second, cfg.Timeout())
}
