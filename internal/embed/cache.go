package embed

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultQueryCacheSize bounds the number of distinct query strings whose
// embeddings are cached. Sized for a single interactive session's repeated
// searches, not bulk indexing traffic (which never repeats the same text).
const DefaultQueryCacheSize = 256

// CachedEmbedder wraps an Embedder with an LRU cache keyed on the exact
// input text, avoiding a network round trip for repeated queries (C8 is
// called once per search, and interactive sessions re-run the same query
// while refining filters).
type CachedEmbedder struct {
	inner Embedder
	cache *lru.Cache[string, []float32]
}

var _ Embedder = (*CachedEmbedder)(nil)

// NewCachedEmbedder wraps inner with an LRU cache of the given size. A
// non-positive size falls back to DefaultQueryCacheSize.
func NewCachedEmbedder(inner Embedder, size int) *CachedEmbedder {
	if size <= 0 {
		size = DefaultQueryCacheSize
	}
	cache, _ := lru.New[string, []float32](size)
	return &CachedEmbedder{inner: inner, cache: cache}
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if v, ok := c.cache.Get(text); ok {
		return v, nil
	}
	v, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Add(text, v)
	return v, nil
}

func (c *CachedEmbedder) ModelName() string { return c.inner.ModelName() }
func (c *CachedEmbedder) Dimensions() int   { return c.inner.Dimensions() }
