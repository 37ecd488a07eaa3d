package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runGitCmd(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoErrorf(t, err, "git %v: %s", args, out)
}

func writeRepoFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGitCmd(t, dir, "init")
	runGitCmd(t, dir, "config", "user.email", "test@example.com")
	runGitCmd(t, dir, "config", "user.name", "Test User")
	runGitCmd(t, dir, "branch", "-M", "main")
	return dir
}

func commitAll(t *testing.T, dir, message string) {
	t.Helper()
	runGitCmd(t, dir, "add", ".")
	runGitCmd(t, dir, "commit", "-m", message)
}

const goSrcV1 = `package demo

func Hello() string {
	return "hi"
}
`

const goSrcV2 = `package demo

func Hello() string {
	return "hello there"
}

func Goodbye() string {
	return "bye"
}
`

func TestBranchDiffDetectsAddedAndModifiedSymbols(t *testing.T) {
	dir := initTestRepo(t)
	writeRepoFile(t, dir, "demo.go", goSrcV1)
	commitAll(t, dir, "initial")

	writeRepoFile(t, dir, "demo.go", goSrcV2)
	commitAll(t, dir, "second")

	diff, err := Branch(dir, "HEAD~1")
	require.NoError(t, err)
	require.Len(t, diff.Files, 1)

	fd := diff.Files[0]
	assert.Equal(t, "demo.go", fd.Path)
	assert.Equal(t, FileModified, fd.Status)

	var names []string
	for _, s := range fd.Added {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "Goodbye")

	var modNames []string
	for _, s := range fd.Modified {
		modNames = append(modNames, s.Name)
	}
	assert.Contains(t, modNames, "Hello")
}

func TestBranchDiffDetectsAddedFile(t *testing.T) {
	dir := initTestRepo(t)
	writeRepoFile(t, dir, "a.go", "package demo\n")
	commitAll(t, dir, "initial")

	writeRepoFile(t, dir, "b.go", goSrcV1)
	commitAll(t, dir, "add b")

	diff, err := Branch(dir, "HEAD~1")
	require.NoError(t, err)
	require.Len(t, diff.Files, 1)
	assert.Equal(t, FileAdded, diff.Files[0].Status)
	assert.Equal(t, 1, diff.Summary.FilesAdded)
}

func TestBranchDiffDetectsDeletedFile(t *testing.T) {
	dir := initTestRepo(t)
	writeRepoFile(t, dir, "a.go", "package demo\n")
	writeRepoFile(t, dir, "b.go", goSrcV1)
	commitAll(t, dir, "initial")

	require.NoError(t, os.Remove(filepath.Join(dir, "b.go")))
	commitAll(t, dir, "remove b")

	diff, err := Branch(dir, "HEAD~1")
	require.NoError(t, err)
	require.Len(t, diff.Files, 1)
	assert.Equal(t, FileDeleted, diff.Files[0].Status)
	assert.Equal(t, 1, diff.Summary.FilesDeleted)
}

func TestBranchDiffNoChangesReturnsEmptyFiles(t *testing.T) {
	dir := initTestRepo(t)
	writeRepoFile(t, dir, "a.go", "package demo\n")
	commitAll(t, dir, "initial")
	runGitCmd(t, dir, "commit", "--allow-empty", "-m", "noop")

	diff, err := Branch(dir, "HEAD~1")
	require.NoError(t, err)
	assert.Empty(t, diff.Files)
}

func TestBranchOnNonGitDirIsError(t *testing.T) {
	dir := t.TempDir()
	_, err := Branch(dir, "HEAD")
	assert.Error(t, err)
}

func TestDiffChunksDistinguishesDuplicateNamesByOccurrence(t *testing.T) {
	dir := initTestRepo(t)
	src := `package demo

func init() {}

func init() {}
`
	writeRepoFile(t, dir, "demo.go", src)
	commitAll(t, dir, "initial")

	modified := `package demo

func init() {}

func init() { /* changed */ }
`
	writeRepoFile(t, dir, "demo.go", modified)
	commitAll(t, dir, "second")

	diff, err := Branch(dir, "HEAD~1")
	require.NoError(t, err)
	require.Len(t, diff.Files, 1)
	assert.Len(t, diff.Files[0].Modified, 1)
}

func TestDiffChunksIncludesModuleKindChunks(t *testing.T) {
	dir := initTestRepo(t)
	src := `mod greet {
    fn hello() {}
}
`
	writeRepoFile(t, dir, "lib.rs", src)
	commitAll(t, dir, "initial")

	modified := `mod greet {
    fn hello() {}
    fn goodbye() {}
}
`
	writeRepoFile(t, dir, "lib.rs", modified)
	commitAll(t, dir, "second")

	diff, err := Branch(dir, "HEAD~1")
	require.NoError(t, err)
	require.Len(t, diff.Files, 1)
	require.Len(t, diff.Files[0].Modified, 1)
	assert.Equal(t, "module", diff.Files[0].Modified[0].Kind)
	assert.Equal(t, "greet", diff.Files[0].Modified[0].Name)
}

func TestParseNameStatusNUL(t *testing.T) {
	raw := []byte("A\x00added.go\x00M\x00changed.go\x00D\x00removed.go\x00")
	results := parseNameStatusNUL(raw)
	require.Len(t, results, 3)
	assert.Equal(t, ChangedFile{Status: FileAdded, Path: "added.go"}, results[0])
	assert.Equal(t, ChangedFile{Status: FileModified, Path: "changed.go"}, results[1])
	assert.Equal(t, ChangedFile{Status: FileDeleted, Path: "removed.go"}, results[2])
}
