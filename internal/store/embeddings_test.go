package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingRoundTrip(t *testing.T) {
	s := openTestStore(t)

	tx, err := s.Begin()
	require.NoError(t, err)
	fileID, err := s.UpsertFile(tx, "vec.go", "h", 1, "go", time.Now())
	require.NoError(t, err)
	require.NoError(t, s.InsertChunks(tx, fileID, []ChunkInsert{
		{Kind: "function", Name: "f", Content: "func f(){}", StartLine: 1, EndLine: 1},
	}))
	require.NoError(t, tx.Commit())

	needing, err := s.ChunksNeedingEmbedding("model-a")
	require.NoError(t, err)
	require.Len(t, needing, 1)

	tx, err = s.Begin()
	require.NoError(t, err)
	vec := []float32{0.1, 0.2, 0.3}
	require.NoError(t, s.UpsertEmbedding(tx, needing[0].ChunkID, "model-a", vec))
	require.NoError(t, tx.Commit())

	remaining, err := s.ChunksNeedingEmbedding("model-a")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	all, err := s.AllEmbeddings("model-a")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.InDeltaSlice(t, []float64{0.1, 0.2, 0.3}, toFloat64(all[0].Vector), 1e-6)
}

func toFloat64(vec []float32) []float64 {
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = float64(v)
	}
	return out
}
