package registry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tmpRegistryPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "projects.json")
}

func TestValidateNameRejectsEmptyTooLongAndBadChars(t *testing.T) {
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("has spaces"))
	assert.Error(t, ValidateName("slash/es"))

	long := make([]byte, maxNameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, ValidateName(string(long)))

	assert.NoError(t, ValidateName("my-project_1"))
}

func TestLoadOnMissingFileReturnsEmptyRegistry(t *testing.T) {
	reg, err := Load(tmpRegistryPath(t))
	require.NoError(t, err)
	assert.Empty(t, reg.Projects)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := tmpRegistryPath(t)
	reg := empty()
	reg.Projects["demo"] = Entry{Path: "/abs/demo"}

	require.NoError(t, Save(path, reg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Contains(t, loaded.Projects, "demo")
	assert.Equal(t, "/abs/demo", loaded.Projects["demo"].Path)
}

func TestManagerAddGetList(t *testing.T) {
	m := NewManager(tmpRegistryPath(t))
	root := t.TempDir()

	require.NoError(t, m.Add("demo", root))

	entry, ok, err := m.Get("demo")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, root, entry.Path)

	projects, err := m.List()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "demo", projects[0].Name)
}

func TestManagerAddRejectsInvalidName(t *testing.T) {
	m := NewManager(tmpRegistryPath(t))
	assert.Error(t, m.Add("bad name", t.TempDir()))
}

func TestManagerAddSameNameDifferentPathIsRejected(t *testing.T) {
	m := NewManager(tmpRegistryPath(t))
	require.NoError(t, m.Add("demo", t.TempDir()))
	assert.Error(t, m.Add("demo", t.TempDir()))
}

func TestManagerAddSameNameSamePathIsIdempotent(t *testing.T) {
	m := NewManager(tmpRegistryPath(t))
	root := t.TempDir()
	require.NoError(t, m.Add("demo", root))
	assert.NoError(t, m.Add("demo", root))
}

func TestManagerRemove(t *testing.T) {
	m := NewManager(tmpRegistryPath(t))
	require.NoError(t, m.Add("demo", t.TempDir()))
	require.NoError(t, m.Remove("demo"))

	_, ok, err := m.Get("demo")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManagerRemoveUnknownIsNoop(t *testing.T) {
	m := NewManager(tmpRegistryPath(t))
	assert.NoError(t, m.Remove("nope"))
}

func TestManagerUpdateStatsRefreshesCache(t *testing.T) {
	m := NewManager(tmpRegistryPath(t))
	root := t.TempDir()
	require.NoError(t, m.Add("demo", root))

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, m.UpdateStats("demo", IndexStats{FileCount: 3, ChunkCount: 12}, now))

	entry, ok, err := m.Get("demo")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, entry.IndexStats.FileCount)
	assert.Equal(t, 12, entry.IndexStats.ChunkCount)
	require.NotNil(t, entry.LastIndexedAt)
	assert.True(t, entry.LastIndexedAt.Equal(now))
}

func TestManagerUpdateStatsUnknownProjectIsNoop(t *testing.T) {
	m := NewManager(tmpRegistryPath(t))
	assert.NoError(t, m.UpdateStats("nope", IndexStats{}, time.Now()))
}

func TestManagerExportYAMLListsAllProjects(t *testing.T) {
	m := NewManager(tmpRegistryPath(t))
	require.NoError(t, m.Add("alpha", t.TempDir()))
	require.NoError(t, m.Add("beta", t.TempDir()))

	out, err := m.ExportYAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "name: alpha")
	assert.Contains(t, string(out), "name: beta")
}

func TestDefaultPathEndsInBoogerProjectsJSON(t *testing.T) {
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "projects.json", filepath.Base(path))
	assert.Equal(t, ".booger", filepath.Base(filepath.Dir(path)))
}
