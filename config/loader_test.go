package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, StorageJSON, cfg.Storage)
	assert.Equal(t, "gemini-pro", cfg.Gemini.Model)
	assert.Equal(t, 60*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, 25*time.Minute, cfg.Focus.Duration)
	assert.Empty(t, cfg.Gemini.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Focus.Duration, cfg.Focus.Duration)
	assert.Equal(t, DefaultConfig().Server.Addr, cfg.Server.Addr)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
data_dir: ` + dir + `
storage: sqlite
log_level: debug
gemini:
  api_key: from-file
  timeout: 5s
focus:
  duration: 50m
calendar:
  name: Work
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "from-file", cfg.Gemini.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, "gemini-pro", cfg.Gemini.Model, "unset keys keep defaults")
	assert.Equal(t, 50*time.Minute, cfg.Focus.Duration)
	assert.Equal(t, "Work", cfg.Calendar.Name)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gemini:\n  api_key: from-file\n"), 0600))

	t.Setenv("SIMPLECAL_FOCUS_DURATION", "10m")
	t.Setenv("SIMPLECAL_SERVER_ADDR", ":9999")
	t.Setenv("GEMINI_API_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Minute, cfg.Focus.Duration)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "from-env", cfg.Gemini.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"storage":   "storage: postgres\n",
		"duration":  "focus:\n  duration: 0s\n",
		"log level": "log_level: loud\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0600))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefault(path))
	assert.FileExists(t, path)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Focus.Duration, cfg.Focus.Duration)
	assert.Equal(t, DefaultConfig().Gemini.Timeout, cfg.Gemini.Timeout)
	assert.Equal(t, DefaultConfig().Calendar.Name, cfg.Calendar.Name)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "data"), expandHome("~/data"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
}
