package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesToFile(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Level:         "debug",
		FilePath:      filepath.Join(dir, "booger.log"),
		MaxSizeMB:     1,
		MaxFiles:      2,
		WriteToStderr: false,
	}
	logger, cleanup, err := Setup(cfg)
	require.NoError(t, err)
	defer cleanup()

	logger.Info("hello", "component", "test")
	assert.FileExists(t, cfg.FilePath)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelFromString("debug").String(), "DEBUG")
	assert.Equal(t, LevelFromString("warn").String(), "WARN")
	assert.Equal(t, LevelFromString("bogus").String(), "INFO")
}
