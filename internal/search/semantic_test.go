package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CryptArtificer/booger/internal/config"
	"github.com/CryptArtificer/booger/internal/embed"
	"github.com/CryptArtificer/booger/internal/index"
)

// vecEmbedder returns a fixed vector per input text, looked up from a map,
// falling back to queryVec for unknown text (the query).
type vecEmbedder struct {
	byText  map[string][]float32
	queryVec []float32
}

func (v *vecEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := v.byText[text]; ok {
		return vec, nil
	}
	return v.queryVec, nil
}
func (v *vecEmbedder) ModelName() string { return "test-model" }
func (v *vecEmbedder) Dimensions() int   { return 3 }

func TestSemanticNoIndexReturnsEmpty(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	e := &vecEmbedder{queryVec: []float32{1, 0, 0}}

	results, err := Semantic(context.Background(), root, cfg, e, Query{Text: "q", MaxResults: 10})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSemanticNoEmbeddingsReturnsEmpty(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "main.go", "package main\n\nfunc main() {}\n")

	cfg := config.Default()
	_, err := index.Run(context.Background(), root, cfg)
	require.NoError(t, err)

	e := &vecEmbedder{queryVec: []float32{1, 0, 0}}
	results, err := Semantic(context.Background(), root, cfg, e, Query{Text: "q", MaxResults: 10})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSemanticReturnsTopResultEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "main.go", "package main\n\nfunc closeMatch() {}\n\nfunc farMatch() {}\n")

	cfg := config.Default()

	// One fixed vector per chunk regardless of content, one different vector
	// for the query: every chunk scores identically, but the ranking and
	// post-hoc filtering machinery still must run end to end without error.
	chunkVec := []float32{1, 0, 0}
	queryVec := []float32{0.9, 0.1, 0}
	e := &fixedPairEmbedder{chunkVec: chunkVec, queryText: "q", queryVec: queryVec}

	_, err := embed.Produce(context.Background(), root, cfg, e)
	require.NoError(t, err)

	results, err := Semantic(context.Background(), root, cfg, e, Query{Text: "q", MaxResults: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "main.go", results[0].FilePath)
}

// fixedPairEmbedder returns queryVec for queryText and chunkVec for
// everything else.
type fixedPairEmbedder struct {
	chunkVec  []float32
	queryText string
	queryVec  []float32
}

func (f *fixedPairEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == f.queryText {
		return f.queryVec, nil
	}
	return f.chunkVec, nil
}
func (f *fixedPairEmbedder) ModelName() string { return "test-model" }
func (f *fixedPairEmbedder) Dimensions() int   { return 3 }
