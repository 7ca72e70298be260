package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, int64(32<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 4, cfg.Analyze.Concurrency)
	assert.False(t, cfg.Archive.Enabled)
	assert.True(t, cfg.Archive.UseSSL)
}

func TestLoadWithoutConfigFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("GEOINT_LOG_LEVEL", "debug")
	t.Setenv("GEOINT_SERVER_LISTEN", ":9090")
	t.Setenv("GEOINT_ANALYZE_CONCURRENCY", "8")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, 8, cfg.Analyze.Concurrency)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geoint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: warn
server:
  listen: ":7070"
  shutdown_timeout: 5s
archive:
  enabled: true
  endpoint: minio.local:9000
  bucket: analyses
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ":7070", cfg.Server.Listen)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Archive.Enabled)
	assert.Equal(t, "analyses", cfg.Archive.Bucket)

	// Values absent from the file keep their defaults.
	assert.Equal(t, 4, cfg.Analyze.Concurrency)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
