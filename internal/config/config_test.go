package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Resources.BatchSize)
	assert.Equal(t, 4, cfg.Embed.MaxConcurrent)
	assert.Equal(t, "none", cfg.Embed.Backend.Type)
	assert.Equal(t, 0.7, cfg.Search.HybridAlpha)
}

func TestLoadPartialFileMergesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
[embed]
max_concurrent = 8
  [embed.backend]
  type = "ollama"
  model = "nomic-embed-text"
  url = "http://localhost:11434"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Embed.MaxConcurrent)
	assert.Equal(t, "ollama", cfg.Embed.Backend.Type)
	assert.Equal(t, "nomic-embed-text", cfg.Embed.Backend.Model)
	// untouched sections keep their defaults
	assert.Equal(t, 500, cfg.Resources.BatchSize)
	assert.Equal(t, 0.7, cfg.Search.HybridAlpha)
}

func TestResolvedMaxThreadsDefault(t *testing.T) {
	cfg := Default()
	assert.GreaterOrEqual(t, cfg.ResolvedMaxThreads(), 1)
}

func TestResolvedMaxThreadsExplicit(t *testing.T) {
	cfg := Default()
	cfg.Resources.MaxThreads = 3
	assert.Equal(t, 3, cfg.ResolvedMaxThreads())
}

func TestStorageDirDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("/repo", DefaultStorageDirName), cfg.StorageDir("/repo"))
}

func TestStorageDirOverrideAbsolute(t *testing.T) {
	cfg := Default()
	cfg.Storage.Path = "/var/data/booger"
	assert.Equal(t, "/var/data/booger", cfg.StorageDir("/repo"))
}

func TestStorageDirOverrideRelative(t *testing.T) {
	cfg := Default()
	cfg.Storage.Path = ".myindex"
	assert.Equal(t, filepath.Join("/repo", ".myindex"), cfg.StorageDir("/repo"))
}
