package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CryptArtificer/booger/internal/config"
	"github.com/CryptArtificer/booger/internal/store"
)

func writeProjectFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRunIndexesNewFiles(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "main.go", "package main\n\nfunc main() {}\n")
	writeProjectFile(t, root, "README.md", "# hello\n")

	cfg := config.Default()
	result, err := Run(context.Background(), root, cfg)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Scanned)
	assert.Equal(t, 2, result.Indexed)
	assert.Equal(t, 0, result.Unchanged)
	assert.Greater(t, result.ChunksCreated, 0)
}

func TestRunSecondPassSkipsUnchangedFiles(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "main.go", "package main\n\nfunc main() {}\n")

	cfg := config.Default()
	_, err := Run(context.Background(), root, cfg)
	require.NoError(t, err)

	result, err := Run(context.Background(), root, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Unchanged)
	assert.Equal(t, 0, result.Indexed)
}

func TestRunReindexesChangedFiles(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "main.go", "package main\n\nfunc main() {}\n")

	cfg := config.Default()
	_, err := Run(context.Background(), root, cfg)
	require.NoError(t, err)

	writeProjectFile(t, root, "main.go", "package main\n\nfunc main() { println(1) }\n")
	result, err := Run(context.Background(), root, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Indexed)
	assert.Equal(t, 0, result.Unchanged)
}

func TestRunSkipsBinaryFiles(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "logo.png", "\x89PNG-not-real-but-binary-extension")

	cfg := config.Default()
	result, err := Run(context.Background(), root, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Indexed)
}

func TestReconcileRemovesDeletedFiles(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "a.go", "package a\n")
	writeProjectFile(t, root, "b.go", "package b\n")

	cfg := config.Default()
	_, err := Run(context.Background(), root, cfg)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(root, "b.go")))

	removed, err := Reconcile(context.Background(), root, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	resolvedRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	st, err := store.OpenIfExists(cfg.StorageDir(resolvedRoot)) // mirror Run/Reconcile's symlink resolution
	require.NoError(t, err)
	require.NotNil(t, st)
	defer st.Close()
	paths, err := st.AllFilePaths()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go"}, paths)
}

func TestRunDefaultReconcilesDeletedFiles(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "a.go", "package a\n")
	writeProjectFile(t, root, "b.go", "package b\n")

	cfg := config.Default()
	_, err := Run(context.Background(), root, cfg)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(root, "b.go")))

	result, err := Run(context.Background(), root, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Reconciled)
}

func TestRunWithOptionsReconcileFalseKeepsStaleRecords(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "a.go", "package a\n")
	writeProjectFile(t, root, "b.go", "package b\n")

	cfg := config.Default()
	_, err := Run(context.Background(), root, cfg)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(root, "b.go")))

	result, err := RunWithOptions(context.Background(), root, cfg, Options{Reconcile: false})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Reconciled)

	resolvedRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	st, err := store.OpenIfExists(cfg.StorageDir(resolvedRoot))
	require.NoError(t, err)
	require.NotNil(t, st)
	defer st.Close()
	paths, err := st.AllFilePaths()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.go", "b.go"}, paths)
}

func TestReconcileNoIndexIsNoop(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	removed, err := Reconcile(context.Background(), root, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}
