package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CryptArtificer/booger/internal/config"
)

func TestWorkspaceFansOutAndTagsProject(t *testing.T) {
	rootA := t.TempDir()
	writeProjectFile(t, rootA, "a.go", "package a\n\nfunc workspaceTarget() {}\n")
	rootB := t.TempDir()
	writeProjectFile(t, rootB, "b.go", "package b\n\nfunc unrelated() {}\n")

	cfg := config.Default()
	projects := []Project{{Name: "proj-a", Root: rootA}, {Name: "proj-b", Root: rootB}}

	results, err := Workspace(context.Background(), projects, cfg, Query{Text: "workspaceTarget", MaxResults: 10})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "proj-a", results[0].Project)
}

func TestWorkspaceOneProjectFailureDoesNotFailOthers(t *testing.T) {
	rootA := t.TempDir()
	writeProjectFile(t, rootA, "a.go", "package a\n\nfunc survivingTarget() {}\n")

	cfg := config.Default()
	projects := []Project{{Name: "proj-a", Root: rootA}, {Name: "proj-missing", Root: "/nonexistent/path/for/test"}}

	results, err := Workspace(context.Background(), projects, cfg, Query{Text: "survivingTarget", MaxResults: 10})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "proj-a", results[0].Project)
}
