package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8087, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Cache.DefaultTTL)
	assert.InDelta(t, 0.1, cfg.Analytics.Alpha, 1e-9)
	assert.Equal(t, 5, cfg.Pipeline.NegationWindowWords)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8087, cfg.Server.Port)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9999
cache:
  capacity: 42
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 42, cfg.Cache.Capacity)
	// Untouched sections keep their defaults.
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 9999\n")
	t.Setenv("TRIAGED_SERVER_PORT", "7777")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7777, cfg.Server.Port)
}

func TestLoad_EnvCompoundFieldName(t *testing.T) {
	t.Setenv("TRIAGED_CACHE_DEFAULT_TTL", "30s")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Cache.DefaultTTL)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := writeConfigFile(t, "analytics:\n  alpha: 3.0\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alpha")
}

func TestLoad_RejectsWorldReadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9999\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permissions")
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, NewDefaultConfig().Validate())
}

func TestValidate_BadPort(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestWatch_FiresOnChange(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 9999\n")

	var got atomic.Int64
	w, err := Watch(path, func(cfg *Config) {
		got.Store(int64(cfg.Server.Port))
	}, nil)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8888\n"), 0o600))

	assert.Eventually(t, func() bool {
		return got.Load() == 8888
	}, 2*time.Second, 20*time.Millisecond)
}

func TestWatch_BadReloadKeepsPrevious(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 9999\n")

	var changes, errs atomic.Int64
	w, err := Watch(path,
		func(*Config) { changes.Add(1) },
		func(error) { errs.Add(1) },
	)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: -1\n"), 0o600))

	assert.Eventually(t, func() bool {
		return errs.Load() >= 1
	}, 2*time.Second, 20*time.Millisecond)
	assert.Zero(t, changes.Load())
}
