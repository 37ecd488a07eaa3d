package embed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEmbedder struct {
	calls int
	vec   []float32
}

func (c *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	c.calls++
	return c.vec, nil
}
func (c *countingEmbedder) ModelName() string { return "counting-model" }
func (c *countingEmbedder) Dimensions() int   { return len(c.vec) }

func TestCachedEmbedderHitsCacheOnRepeatedText(t *testing.T) {
	inner := &countingEmbedder{vec: []float32{1, 2, 3}}
	cached := NewCachedEmbedder(inner, 8)

	v1, err := cached.Embed(context.Background(), "same text")
	require.NoError(t, err)
	v2, err := cached.Embed(context.Background(), "same text")
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedEmbedderMissesOnDistinctText(t *testing.T) {
	inner := &countingEmbedder{vec: []float32{1, 2, 3}}
	cached := NewCachedEmbedder(inner, 8)

	_, err := cached.Embed(context.Background(), "text a")
	require.NoError(t, err)
	_, err = cached.Embed(context.Background(), "text b")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedEmbedderDelegatesModelNameAndDimensions(t *testing.T) {
	inner := &countingEmbedder{vec: []float32{1, 2}}
	cached := NewCachedEmbedder(inner, 8)

	assert.Equal(t, "counting-model", cached.ModelName())
	assert.Equal(t, 2, cached.Dimensions())
}

func TestNewCachedEmbedderDefaultsSizeWhenNonPositive(t *testing.T) {
	inner := &countingEmbedder{vec: []float32{1}}
	cached := NewCachedEmbedder(inner, 0)
	assert.NotNil(t, cached)
}
