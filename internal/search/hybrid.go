package search

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/CryptArtificer/booger/internal/config"
	"github.com/CryptArtificer/booger/internal/embed"
)

// Hybrid blends C7 and C8 results with per-list max-normalization and a
// linear alpha weight, grounded on original_source/src/mcp/tools.rs's
// tool_hybrid_search: FTS rank normalized as 1-|rank|/max(|rank|), semantic
// similarity normalized as sim/max(sim), merged by (file_path,start_line),
// weighted sum, sorted descending. alpha=1 reduces to the pure keyword
// order, alpha=0 to the pure semantic order.
func Hybrid(ctx context.Context, root string, cfg config.Config, embedder embed.Embedder, q Query, alpha float64) ([]Result, error) {
	maxResults := defaultMaxResults(q.MaxResults)

	keywordHits, err := Keyword(ctx, root, cfg, q)
	if err != nil {
		return nil, err
	}

	var semanticHits []Result
	if embedder != nil {
		semanticHits, err = Semantic(ctx, root, cfg, embedder, q)
		if err != nil {
			return nil, err
		}
	}

	type merged struct {
		result  Result
		ftsNorm float64
		semNorm float64
	}
	byKey := make(map[string]*merged)
	order := make([]string, 0, len(keywordHits)+len(semanticHits))

	keyOf := func(r Result) string { return fmt.Sprintf("%s:%d", r.FilePath, r.StartLine) }

	ftsMax := 0.0
	for _, r := range keywordHits {
		if abs := math.Abs(r.Rank); abs > ftsMax {
			ftsMax = abs
		}
	}
	semMax := 0.0
	for _, r := range semanticHits {
		if sim := -r.Rank; sim > semMax {
			semMax = sim
		}
	}

	for _, r := range keywordHits {
		k := keyOf(r)
		norm := 1.0
		if ftsMax > 0 {
			norm = 1 - math.Abs(r.Rank)/ftsMax
		}
		if _, ok := byKey[k]; !ok {
			order = append(order, k)
			byKey[k] = &merged{result: r}
		}
		byKey[k].ftsNorm = norm
	}
	for _, r := range semanticHits {
		k := keyOf(r)
		norm := 0.0
		if semMax > 0 {
			norm = (-r.Rank) / semMax
		}
		if _, ok := byKey[k]; !ok {
			order = append(order, k)
			byKey[k] = &merged{result: r}
		}
		byKey[k].semNorm = norm
	}

	out := make([]Result, 0, len(order))
	for _, k := range order {
		m := byKey[k]
		score := alpha*m.ftsNorm + (1-alpha)*m.semNorm
		r := m.result
		r.Rank = -score
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	if len(out) > maxResults {
		out = out[:maxResults]
	}
	return out, nil
}
