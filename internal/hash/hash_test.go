package hash

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileMatchesBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.txt")
	content := []byte("the quick brown fox jumps over the lazy dog")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	fromFile, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, Bytes(content), fromFile)
	assert.Len(t, fromFile, 64) // 32-byte digest, hex-encoded
}

func TestFileMissing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestBytesDeterministic(t *testing.T) {
	content := []byte("repeatable input")
	assert.Equal(t, Bytes(content), Bytes(content))
}

func TestBytesDiffersOnChange(t *testing.T) {
	assert.NotEqual(t, Bytes([]byte("a")), Bytes([]byte("b")))
}

func TestBytesEmpty(t *testing.T) {
	assert.Len(t, Bytes(nil), 64)
}
