package embed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
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

// fakeEmbedder returns a deterministic vector per call, optionally failing
// for inputs containing a configured substring, and tracks the maximum
// number of concurrently in-flight calls it observed.
type fakeEmbedder struct {
	failSubstr string

	mu          sync.Mutex
	inFlight    int
	maxInFlight int
	calls       int32
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	atomic.AddInt32(&f.calls, 1)
	if f.failSubstr != "" && len(text) >= len(f.failSubstr) && containsSubstr(text, f.failSubstr) {
		return nil, fmt.Errorf("embedding failed for %q", text)
	}
	return []float32{1, 2, 3}, nil
}

func containsSubstr(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

func (f *fakeEmbedder) ModelName() string { return "fake-model" }
func (f *fakeEmbedder) Dimensions() int   { return 3 }

func TestProduceEmbedsAllChunksOnFirstRun(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "main.go", "package main\n\nfunc main() {}\n\nfunc helper() {}\n")

	cfg := config.Default()
	embedder := &fakeEmbedder{}

	result, err := Produce(context.Background(), root, cfg, embedder)
	require.NoError(t, err)

	assert.Equal(t, result.TotalChunks, result.EmbeddedAfter)
	assert.Equal(t, result.TotalChunks, result.NewlyEmbedded)
	assert.Greater(t, result.TotalChunks, 0)
}

func TestProduceSecondRunEmbedsNothingNew(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "main.go", "package main\n\nfunc main() {}\n")

	cfg := config.Default()
	embedder := &fakeEmbedder{}

	_, err := Produce(context.Background(), root, cfg, embedder)
	require.NoError(t, err)

	result, err := Produce(context.Background(), root, cfg, embedder)
	require.NoError(t, err)
	assert.Equal(t, 0, result.NewlyEmbedded)
}

func TestProducePerChunkErrorIsSkippedNotFatal(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "main.go", "package main\n\nfunc alpha() {}\n\nfunc beta() {}\n")

	cfg := config.Default()
	embedder := &fakeEmbedder{failSubstr: "alpha"}

	result, err := Produce(context.Background(), root, cfg, embedder)
	require.NoError(t, err)
	assert.Less(t, result.NewlyEmbedded, result.TotalChunks)
	assert.Greater(t, result.NewlyEmbedded, 0)
}

func TestProduceRespectsMaxConcurrentBound(t *testing.T) {
	root := t.TempDir()
	var body string
	for i := 0; i < 40; i++ {
		body += fmt.Sprintf("func fn%d() {}\n\n", i)
	}
	writeProjectFile(t, root, "main.go", "package main\n\n"+body)

	cfg := config.Default()
	cfg.Embed.MaxConcurrent = 2
	embedder := &fakeEmbedder{}

	_, err := Produce(context.Background(), root, cfg, embedder)
	require.NoError(t, err)
	assert.LessOrEqual(t, embedder.maxInFlight, 2)
}

func TestProduceAutoIndexesBeforeEmbedding(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "main.go", "package main\n\nfunc main() {}\n")

	cfg := config.Default()
	embedder := &fakeEmbedder{}

	_, err := Produce(context.Background(), root, cfg, embedder)
	require.NoError(t, err)

	resolvedRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	st, err := store.OpenIfExists(cfg.StorageDir(resolvedRoot))
	require.NoError(t, err)
	require.NotNil(t, st)
	defer st.Close()

	paths, err := st.AllFilePaths()
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, paths)
}
