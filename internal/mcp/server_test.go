package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CryptArtificer/booger/internal/config"
	"github.com/CryptArtificer/booger/internal/registry"
)

func writeProjectFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestServer(t *testing.T, root string) *Server {
	t.Helper()
	mgr := registry.NewManager(filepath.Join(t.TempDir(), "projects.json"))
	return NewServer(root, config.Default(), mgr)
}

func TestHandleIndexThenSearchRoundTrips(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "main.go", "package main\n\nfunc greet() string { return \"hello\" }\n")
	s := newTestServer(t, root)
	ctx := context.Background()

	_, indexOut, err := s.handleIndex(ctx, nil, IndexInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, indexOut.Indexed)

	_, searchOut, err := s.handleSearch(ctx, nil, QueryInput{Query: "greet"})
	require.NoError(t, err)
	require.Len(t, searchOut.Results, 1)
	assert.Equal(t, "greet", searchOut.Results[0].Name)
}

func TestHandleSearchRejectsEmptyQuery(t *testing.T) {
	s := newTestServer(t, t.TempDir())
	_, _, err := s.handleSearch(context.Background(), nil, QueryInput{})
	require.Error(t, err)
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrCodeInvalidParams, mcpErr.Code)
}

func TestHandleStatusWithoutIndexIsInvalidParams(t *testing.T) {
	s := newTestServer(t, t.TempDir())
	_, _, err := s.handleStatus(context.Background(), nil, StatusInput{})
	require.Error(t, err)
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrCodeInvalidParams, mcpErr.Code)
}

func TestHandleStatusAfterIndexReportsCounts(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "a.go", "package a\n")
	s := newTestServer(t, root)
	ctx := context.Background()

	_, _, err := s.handleIndex(ctx, nil, IndexInput{})
	require.NoError(t, err)

	_, statusOut, err := s.handleStatus(ctx, nil, StatusInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, statusOut.FileCount)
}

func TestHandleAnnotateForgetRoundTrips(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "a.go", "package a\n")
	s := newTestServer(t, root)
	ctx := context.Background()

	_, annOut, err := s.handleAnnotate(ctx, nil, AnnotateInput{Target: "a.go", Note: "check this"})
	require.NoError(t, err)
	assert.NotZero(t, annOut.ID)

	_, listOut, err := s.handleAnnotations(ctx, nil, AnnotationsInput{Target: "a.go"})
	require.NoError(t, err)
	require.Len(t, listOut.Annotations, 1)

	_, _, err = s.handleForget(ctx, nil, ForgetInput{ID: annOut.ID})
	require.NoError(t, err)

	_, listOut, err = s.handleAnnotations(ctx, nil, AnnotationsInput{Target: "a.go"})
	require.NoError(t, err)
	assert.Empty(t, listOut.Annotations)
}

func TestHandleFocusAndVisitRequirePaths(t *testing.T) {
	s := newTestServer(t, t.TempDir())
	ctx := context.Background()

	_, _, err := s.handleFocus(ctx, nil, WorksetInput{})
	require.Error(t, err)

	_, _, err = s.handleVisit(ctx, nil, WorksetInput{})
	require.Error(t, err)
}

func TestHandleFocusSucceedsOnIndexedRoot(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "a.go", "package a\n")
	s := newTestServer(t, root)
	ctx := context.Background()

	_, _, err := s.handleIndex(ctx, nil, IndexInput{})
	require.NoError(t, err)

	_, out, err := s.handleFocus(ctx, nil, WorksetInput{Paths: []string{"a.go"}})
	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestHandleProjectsAddListRemove(t *testing.T) {
	s := newTestServer(t, t.TempDir())
	ctx := context.Background()
	root := t.TempDir()

	_, _, err := s.handleProjects(ctx, nil, ProjectsInput{Action: "add", Name: "demo", Path: root})
	require.NoError(t, err)

	_, listOut, err := s.handleProjects(ctx, nil, ProjectsInput{Action: "list"})
	require.NoError(t, err)
	require.Len(t, listOut.Projects, 1)
	assert.Equal(t, "demo", listOut.Projects[0].Name)

	_, _, err = s.handleProjects(ctx, nil, ProjectsInput{Action: "remove", Name: "demo"})
	require.NoError(t, err)

	_, listOut, err = s.handleProjects(ctx, nil, ProjectsInput{Action: "list"})
	require.NoError(t, err)
	assert.Empty(t, listOut.Projects)
}

func TestHandleProjectsAddRequiresNameAndPath(t *testing.T) {
	s := newTestServer(t, t.TempDir())
	_, _, err := s.handleProjects(context.Background(), nil, ProjectsInput{Action: "add"})
	require.Error(t, err)
}

func TestHandleGrepAndSymbolsAndReferences(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "a.go", "package a\n\nfunc Foo() int { return 1 }\n\nfunc Bar() int { return Foo() }\n")
	s := newTestServer(t, root)
	ctx := context.Background()

	_, _, err := s.handleIndex(ctx, nil, IndexInput{})
	require.NoError(t, err)

	_, symOut, err := s.handleSymbols(ctx, nil, SymbolsInput{})
	require.NoError(t, err)
	assert.NotEmpty(t, symOut.Symbols)

	_, grepOut, err := s.handleGrep(ctx, nil, GrepInput{Pattern: "func Foo"})
	require.NoError(t, err)
	assert.NotEmpty(t, grepOut.Matches)

	_, refOut, err := s.handleReferences(ctx, nil, ReferencesInput{Symbol: "Foo"})
	require.NoError(t, err)
	assert.NotEmpty(t, refOut.References)
}

func TestHandleGrepRequiresPattern(t *testing.T) {
	s := newTestServer(t, t.TempDir())
	_, _, err := s.handleGrep(context.Background(), nil, GrepInput{})
	require.Error(t, err)
}

func TestHandleSemanticSearchWithoutEmbedderIsInvalidParams(t *testing.T) {
	s := newTestServer(t, t.TempDir())
	_, _, err := s.handleSemanticSearch(context.Background(), nil, QueryInput{Query: "anything"})
	require.Error(t, err)
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrCodeInvalidParams, mcpErr.Code)
}
