package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CryptArtificer/booger/internal/config"
)

func writeProjectFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestKeywordFindsIndexedFunction(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "main.go", "package main\n\nfunc widgetFactory() int {\n\treturn 1\n}\n")

	cfg := config.Default()
	results, err := Keyword(context.Background(), root, cfg, Query{Text: "widgetFactory", MaxResults: 10})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "main.go", results[0].FilePath)
}

func TestKeywordNoIndexReturnsEmpty(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	results, err := Keyword(context.Background(), root, cfg, Query{Text: "anything", MaxResults: 10})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestKeywordNoMatchReturnsEmpty(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "main.go", "package main\n\nfunc main() {}\n")

	cfg := config.Default()
	results, err := Keyword(context.Background(), root, cfg, Query{Text: "zzznomatchzzz", MaxResults: 10})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestKeywordORFallbackOnMultiTokenMiss(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "main.go", "package main\n\nfunc alphaHandler() {}\n\nfunc betaHandler() {}\n")

	cfg := config.Default()
	// No single chunk contains both tokens, so the implicit-AND query misses
	// but the OR fallback should still surface both functions.
	results, err := Keyword(context.Background(), root, cfg, Query{Text: "alphaHandler betaHandler", MaxResults: 10})
	require.NoError(t, err)
	assert.NotEmpty(t, results)
}

func TestKeywordFocusBoostsRankedFirst(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "a.go", "package a\n\nfunc sharedName() {}\n")
	writeProjectFile(t, root, "b/b.go", "package b\n\nfunc sharedName() {}\n")

	cfg := config.Default()
	_, err := Keyword(context.Background(), root, cfg, Query{Text: "sharedName", MaxResults: 10})
	require.NoError(t, err)

	st, err := openExisting(root, cfg)
	require.NoError(t, err)
	require.NotNil(t, st)
	require.NoError(t, st.AddToWorkset("b/b.go", "focus", ""))
	st.Close()

	results, err := Keyword(context.Background(), root, cfg, Query{Text: "sharedName", MaxResults: 10})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "b/b.go", results[0].FilePath)
}
