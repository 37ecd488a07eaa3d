package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestWalkFindsFilesSortedByPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.go", "package b\n")
	writeFile(t, dir, "a.go", "package a\n")
	writeFile(t, dir, "sub/c.py", "x = 1\n")

	s, err := New()
	require.NoError(t, err)

	files, err := s.Walk(context.Background(), ScanOptions{RootDir: dir})
	require.NoError(t, err)
	require.Len(t, files, 3)

	paths := []string{files[0].Path, files[1].Path, files[2].Path}
	assert.Equal(t, []string{"a.go", "b.go", "sub/c.py"}, paths)
}

func TestWalkSkipsDefaultExcludedDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "node_modules/pkg/index.js", "module.exports = 1;\n")
	writeFile(t, dir, "main.go", "package main\n")

	s, err := New()
	require.NoError(t, err)
	files, err := s.Walk(context.Background(), ScanOptions{RootDir: dir})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "main.go", files[0].Path)
}

func TestWalkSkipsHiddenFilesAndDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".idea/workspace.xml", "<project/>\n")
	writeFile(t, dir, ".editorconfig", "root = true\n")
	writeFile(t, dir, "main.go", "package main\n")

	s, err := New()
	require.NoError(t, err)
	files, err := s.Walk(context.Background(), ScanOptions{RootDir: dir})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "main.go", files[0].Path)
}

func TestWalkSkipsSensitiveFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "SECRET=1\n")
	writeFile(t, dir, "id_rsa", "----\n")
	writeFile(t, dir, "main.go", "package main\n")

	s, err := New()
	require.NoError(t, err)
	files, err := s.Walk(context.Background(), ScanOptions{RootDir: dir})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "main.go", files[0].Path)
}

func TestWalkSkipsOversizedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "big.go", string(make([]byte, 100)))
	writeFile(t, dir, "small.go", "package small\n")

	s, err := New()
	require.NoError(t, err)
	files, err := s.Walk(context.Background(), ScanOptions{RootDir: dir, MaxFileSize: 50})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "small.go", files[0].Path)
}

func TestWalkSkipsBinaryExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "logo.png", "not really a png")
	writeFile(t, dir, "main.go", "package main\n")

	s, err := New()
	require.NoError(t, err)
	files, err := s.Walk(context.Background(), ScanOptions{RootDir: dir})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "main.go", files[0].Path)
}

func TestWalkRespectsGitignore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "ignored.go\n")
	writeFile(t, dir, "ignored.go", "package ignored\n")
	writeFile(t, dir, "kept.go", "package kept\n")

	s, err := New()
	require.NoError(t, err)
	files, err := s.Walk(context.Background(), ScanOptions{RootDir: dir, RespectGitignore: true})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "kept.go", files[0].Path)
}

func TestDetectLanguage(t *testing.T) {
	cases := map[string]string{
		"main.go":        "go",
		"app.py":         "python",
		"index.js":       "javascript",
		"component.tsx":  "tsx",
		"lib.rs":         "rust",
		"Dockerfile":     "dockerfile",
		"Makefile":       "makefile",
		"README.md":      "markdown",
		"unknown.xyzzzz": "",
	}
	for path, want := range cases {
		assert.Equal(t, want, DetectLanguage(path), "path=%s", path)
	}
}

func TestIsBinary(t *testing.T) {
	assert.True(t, IsBinary("logo.png"))
	assert.True(t, IsBinary("archive.zip"))
	assert.False(t, IsBinary("main.go"))
	assert.False(t, IsBinary("README"))
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, ContentTypeMarkdown, DetectContentType("markdown"))
	assert.Equal(t, ContentTypeConfig, DetectContentType("json"))
	assert.Equal(t, ContentTypeCode, DetectContentType("go"))
	assert.Equal(t, ContentTypeText, DetectContentType(""))
}
