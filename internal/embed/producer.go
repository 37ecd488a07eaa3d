package embed

import (
	"context"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/CryptArtificer/booger/internal/config"
	boogererrors "github.com/CryptArtificer/booger/internal/errors"
	"github.com/CryptArtificer/booger/internal/index"
	"github.com/CryptArtificer/booger/internal/store"
)

// Result is C6's outcome record.
type Result struct {
	TotalChunks   int
	EmbeddedAfter int
	NewlyEmbedded int
}

// Produce runs C6 against root: auto-indexes first (delegating to C5),
// then pulls every chunk lacking an embedding for embedder's model,
// embeds in fixed-size batches bounded by cfg.Embed.MaxConcurrent, and
// persists successes via a batched upsert. Per-chunk embedding errors are
// skipped, not fatal.
func Produce(ctx context.Context, root string, cfg config.Config, embedder Embedder) (Result, error) {
	if _, err := index.Run(ctx, root, cfg); err != nil {
		return Result{}, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Result{}, boogererrors.IO("resolve project root", err)
	}
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return Result{}, boogererrors.IO("resolve project root", err)
	}

	storageDir := cfg.StorageDir(absRoot)
	st, err := store.Open(storageDir)
	if err != nil {
		return Result{}, err
	}
	defer st.Close()

	model := embedder.ModelName()
	pending, err := st.ChunksNeedingEmbedding(model)
	if err != nil {
		return Result{}, err
	}

	batchSize := DefaultBatchSize
	concurrency := cfg.Embed.MaxConcurrent
	if concurrency <= 0 {
		concurrency = 1
	}

	newlyEmbedded := 0
	for start := 0; start < len(pending); start += batchSize {
		end := min(start+batchSize, len(pending))
		batch := pending[start:end]

		vectors := make([][]float32, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)
		for i, chunkText := range batch {
			i, chunkText := i, chunkText
			g.Go(func() error {
				vec, err := embedder.Embed(gctx, chunkText.Content)
				if err != nil {
					// Per-chunk embedding errors are logged and skipped, never fatal.
					slog.Warn("embed_chunk_failed", slog.Int64("chunk_id", chunkText.ChunkID), slog.String("error", err.Error()))
					return nil
				}
				vectors[i] = vec
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return Result{}, err
		}

		tx, err := st.Begin()
		if err != nil {
			return Result{}, err
		}
		for i, vec := range vectors {
			if vec == nil {
				continue
			}
			if err := st.UpsertEmbedding(tx, batch[i].ChunkID, model, vec); err != nil {
				tx.Rollback()
				return Result{}, err
			}
			newlyEmbedded++
		}
		if err := tx.Commit(); err != nil {
			return Result{}, err
		}
	}

	stats, err := st.Stats()
	if err != nil {
		return Result{}, err
	}
	stillPending, err := st.ChunksNeedingEmbedding(model)
	if err != nil {
		return Result{}, err
	}

	return Result{
		TotalChunks:   stats.ChunkCount,
		EmbeddedAfter: stats.ChunkCount - len(stillPending),
		NewlyEmbedded: newlyEmbedded,
	}, nil
}
