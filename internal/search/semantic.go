package search

import (
	"context"
	"sort"
	"strings"

	"github.com/CryptArtificer/booger/internal/config"
	"github.com/CryptArtificer/booger/internal/embed"
	"github.com/CryptArtificer/booger/internal/store"
)

// semanticCandidateMultiplier is how many candidates past max_results are
// kept before the post-hoc language/path filter, per spec §4.8.
const semanticCandidateMultiplier = 3

// Semantic runs the C8 algorithm: load every stored embedding for
// embedder's model, embed the query once, score by cosine similarity,
// sort descending, truncate to 3x max_results candidates, then apply the
// language/path_prefix filters and stop at max_results. Returns (nil, nil)
// when no embeddings exist — not an error.
func Semantic(ctx context.Context, root string, cfg config.Config, embedder embed.Embedder, q Query) ([]Result, error) {
	storageDir, err := resolveStorageDir(root, cfg)
	if err != nil {
		return nil, err
	}

	st, err := store.OpenIfExists(storageDir)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, nil
	}
	defer st.Close()

	model := embedder.ModelName()
	embeddings, err := st.AllEmbeddings(model)
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, nil
	}

	queryVec, err := embedder.Embed(ctx, q.Text)
	if err != nil {
		return nil, err
	}

	type scored struct {
		embedding  store.Embedding
		similarity float64
	}
	candidates := make([]scored, len(embeddings))
	for i, e := range embeddings {
		candidates[i] = scored{embedding: e, similarity: embed.CosineSimilarity(queryVec, e.Vector)}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].similarity > candidates[j].similarity
	})

	maxResults := defaultMaxResults(q.MaxResults)
	candidateLimit := maxResults * semanticCandidateMultiplier
	if candidateLimit < len(candidates) {
		candidates = candidates[:candidateLimit]
	}

	var out []Result
	for _, c := range candidates {
		chunk, err := st.ChunkByID(c.embedding.ChunkID)
		if err != nil {
			return nil, err
		}
		if chunk == nil {
			continue
		}
		if q.Language != "" {
			file, err := st.GetFile(chunk.FilePath)
			if err != nil {
				return nil, err
			}
			if file == nil || file.Language != q.Language {
				continue
			}
		}
		if q.PathPrefix != "" && !strings.HasPrefix(chunk.FilePath, q.PathPrefix) {
			continue
		}
		out = append(out, Result{Chunk: *chunk, Rank: -c.similarity})
		if len(out) >= maxResults {
			break
		}
	}
	return out, nil
}
