package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := Load(viper.New(), home)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, BackendTOML, cfg.SessionBackend)
	assert.Equal(t, filepath.Join(home, ".rumble", "session.toml"), cfg.SessionPath)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, ".rumble")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[api]
base_url = "https://rumble.example.com/"
timeout = "3s"

[session]
backend = "file"

[log]
level = "debug"
`), 0o600))

	cfg, err := Load(viper.New(), home)
	require.NoError(t, err)

	assert.Equal(t, "https://rumble.example.com", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, BackendFile, cfg.SessionBackend)
	assert.Equal(t, filepath.Join(home, ".rumble", "session"), cfg.SessionPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadPassBackendDefaultsToFileFallbackPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("RUMBLE_SESSION_BACKEND", "PASS")

	cfg, err := Load(viper.New(), home)
	require.NoError(t, err)

	assert.Equal(t, BackendPass, cfg.SessionBackend)
	assert.Equal(t, filepath.Join(home, ".rumble", "session"), cfg.SessionPath)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("RUMBLE_API_BASE_URL", "http://127.0.0.1:9999")
	t.Setenv("RUMBLE_SESSION_PATH", filepath.Join(home, "custom.toml"))

	cfg, err := Load(viper.New(), home)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999", cfg.APIBaseURL)
	assert.Equal(t, filepath.Join(home, "custom.toml"), cfg.SessionPath)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "scheme", env: map[string]string{"RUMBLE_API_BASE_URL": "ftp://example.com"}, wantErr: "must use http or https"},
		{name: "backend", env: map[string]string{"RUMBLE_SESSION_BACKEND": "redis"}, wantErr: "unsupported session.backend"},
		{name: "timeout", env: map[string]string{"RUMBLE_API_TIMEOUT": "0s"}, wantErr: "api.timeout must be positive"},
		{name: "log level", env: map[string]string{"RUMBLE_LOG_LEVEL": "loud"}, wantErr: "unsupported log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := Load(viper.New(), t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
