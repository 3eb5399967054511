package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("CONFIG_FILE", "/nonexistent/config.yaml")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.DatabaseFilePath)
	assert.Equal(t, 2, cfg.WorkerProcesses)
	assert.Equal(t, 10*time.Second, cfg.MetadataTimeout)
	assert.Equal(t, 30*time.Second, cfg.IndexerTimeout)
	assert.Equal(t, "http://localhost:13378", cfg.AudiobookshelfURL)
}

func TestNewEnvironmentOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("CONFIG_FILE", "/nonexistent/config.yaml")
	t.Setenv("BOOKSCOUT_SERVER_PORT", "8123")
	t.Setenv("BOOKSCOUT_PROWLARR_URL", "http://prowlarr:9696")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 8123, cfg.ServerPort)
	assert.Equal(t, "http://prowlarr:9696", cfg.ProwlarrURL)
}

func TestNewConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte("server_port: 9000\naudiobookshelf_token: abc123\n"), 0600)
	require.NoError(t, err)

	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("CONFIG_FILE", path)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, "abc123", cfg.AudiobookshelfToken)
}

func TestEnvironmentWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte("server_port: 9000\n"), 0600)
	require.NoError(t, err)

	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("BOOKSCOUT_SERVER_PORT", "9001")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.ServerPort)
}
