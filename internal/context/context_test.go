package context

import (
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

func TestAnnotateAndListRoundTrips(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "main.go", "package main\n")
	cfg := config.Default()

	id, err := Annotate(root, cfg, "main.go", "needs review", "", 0)
	require.NoError(t, err)
	assert.NotZero(t, id)

	notes, err := Annotations(root, cfg, "main.go", "")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "needs review", notes[0].Note)
}

func TestAnnotationsOnUnindexedRootReturnsEmpty(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()

	notes, err := Annotations(root, cfg, "main.go", "")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestAnnotationSessionScopingIsRespected(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()

	_, err := Annotate(root, cfg, "main.go", "global note", "", 0)
	require.NoError(t, err)
	_, err = Annotate(root, cfg, "main.go", "session-a note", "session-a", 0)
	require.NoError(t, err)

	notesForA, err := Annotations(root, cfg, "main.go", "session-a")
	require.NoError(t, err)
	assert.Len(t, notesForA, 2)

	notesForB, err := Annotations(root, cfg, "main.go", "session-b")
	require.NoError(t, err)
	assert.Len(t, notesForB, 1)
}

func TestForgetRemovesAnnotation(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()

	id, err := Annotate(root, cfg, "main.go", "to remove", "", 0)
	require.NoError(t, err)

	require.NoError(t, Forget(root, cfg, id))

	notes, err := Annotations(root, cfg, "main.go", "")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestClearSessionAnnotationsRemovesOnlyThatSession(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()

	_, err := Annotate(root, cfg, "main.go", "global", "", 0)
	require.NoError(t, err)
	_, err = Annotate(root, cfg, "main.go", "scoped", "session-a", 0)
	require.NoError(t, err)

	removed, err := ClearSessionAnnotations(root, cfg, "session-a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	notes, err := Annotations(root, cfg, "main.go", "session-a")
	require.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.Equal(t, "global", notes[0].Note)
}

func TestFocusVisitAndWorksetListing(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()

	require.NoError(t, Focus(root, cfg, []string{"a.go", "b.go"}, ""))
	require.NoError(t, Visit(root, cfg, []string{"c.go"}, ""))

	focused, err := Workset(root, cfg, "focus", "")
	require.NoError(t, err)
	assert.Len(t, focused, 2)

	visited, err := Workset(root, cfg, "visited", "")
	require.NoError(t, err)
	assert.Len(t, visited, 1)
}

func TestFocusDuplicatesAreIgnored(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()

	require.NoError(t, Focus(root, cfg, []string{"a.go"}, ""))
	require.NoError(t, Focus(root, cfg, []string{"a.go"}, ""))

	focused, err := Workset(root, cfg, "focus", "")
	require.NoError(t, err)
	assert.Len(t, focused, 1)
}

func TestUnfocusRemovesPath(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()

	require.NoError(t, Focus(root, cfg, []string{"a.go"}, ""))
	require.NoError(t, Unfocus(root, cfg, []string{"a.go"}))

	focused, err := Workset(root, cfg, "focus", "")
	require.NoError(t, err)
	assert.Empty(t, focused)
}

func TestUnfocusOnUnindexedRootIsNoop(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	assert.NoError(t, Unfocus(root, cfg, []string{"a.go"}))
}

func TestClearWorksetRemovesAllForSession(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()

	require.NoError(t, Focus(root, cfg, []string{"a.go"}, "session-a"))
	require.NoError(t, Visit(root, cfg, []string{"b.go"}, "session-a"))

	removed, err := ClearWorkset(root, cfg, "session-a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
}

func TestWorksetOnUnindexedRootReturnsEmpty(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()

	entries, err := Workset(root, cfg, "focus", "")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
