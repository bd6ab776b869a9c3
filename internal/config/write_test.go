package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "marquee", "config.toml")

	require.NoError(t, WriteDefault(path, false))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[api]")
	assert.Contains(t, string(content), "[tmdb]")
	assert.Contains(t, string(content), "${TMDB_API_KEY:?")
}

func TestWriteDefault_Loads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteDefault(path, false))

	t.Setenv("TMDB_API_KEY", "test-tmdb-key")
	t.Setenv("MARQUEE_API_URL", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test-tmdb-key", cfg.TMDB.APIKey)
	assert.Equal(t, "http://localhost:5000", cfg.API.BaseURL)
	assert.Equal(t, 300*time.Millisecond, cfg.Search.Debounce)
}

func TestConfig_Write(t *testing.T) {
	cfg := Default()
	cfg.TMDB.APIKey = "written"
	cfg.Search.HistorySize = 25

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, cfg.Write(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "written", loaded.TMDB.APIKey)
	assert.Equal(t, 25, loaded.Search.HistorySize)
	assert.Equal(t, cfg.Search.Debounce, loaded.Search.Debounce)
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0o644))

	err := WriteDefault(path, false)
	require.ErrorIs(t, err, ErrExists)
	content, _ := os.ReadFile(path)
	assert.Equal(t, "# mine\n", string(content))

	require.NoError(t, WriteDefault(path, true))
	content, _ = os.ReadFile(path)
	assert.Contains(t, string(content), "[tmdb]")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
