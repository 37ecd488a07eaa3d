package search

import (
	"context"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/CryptArtificer/booger/internal/config"
	boogererrors "github.com/CryptArtificer/booger/internal/errors"
	"github.com/CryptArtificer/booger/internal/index"
	"github.com/CryptArtificer/booger/internal/store"
)

// resultFetchMultiplier is the FTS fetch headroom before re-ranking, per
// spec §4.7 step 3.
const resultFetchMultiplier = 5

// Keyword runs the C7 algorithm against root: auto-index, sanitize and run
// the FTS query (with an OR-fallback for multi-token queries that match
// nothing), then apply the static and context re-rank passes.
func Keyword(ctx context.Context, root string, cfg config.Config, q Query) ([]Result, error) {
	if _, err := index.Run(ctx, root, cfg); err != nil {
		return nil, err
	}

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

	maxResults := defaultMaxResults(q.MaxResults)
	filter := store.SearchFilter{Language: q.Language, PathPrefix: q.PathPrefix, Kind: q.Kind}
	fetchLimit := maxResults * resultFetchMultiplier

	sanitized := store.SanitizeFTSQuery(q.Text)
	hits, err := st.Search(sanitized, filter, fetchLimit)
	if err != nil {
		return nil, err
	}

	if len(hits) == 0 {
		tokens := strings.Fields(q.Text)
		if len(tokens) > 1 {
			orQuery := orFallbackQuery(tokens)
			hits, err = st.Search(orQuery, filter, fetchLimit)
			if err != nil {
				return nil, err
			}
		}
	}

	if len(hits) == 0 {
		return nil, nil
	}

	results := rerankStatic(hits, cfg)
	if err := rerankContext(st, results, q.SessionID, cfg); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Rank < results[j].Rank })
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

func orFallbackQuery(tokens []string) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = store.SanitizeFTSQuery(t)
	}
	return strings.Join(parts, " OR ")
}

// rerankStatic applies spec §4.7 step 6: a structural-kind boost and an
// oversized-chunk penalty, both folded directly into Rank (more negative
// stays better).
func rerankStatic(hits []store.SearchResult, cfg config.Config) []Result {
	var totalLines, count int
	for _, h := range hits {
		totalLines += h.EndLine - h.StartLine + 1
		count++
	}
	avgLines := float64(totalLines) / float64(count)

	out := make([]Result, len(hits))
	for i, h := range hits {
		boost := 0.0
		if h.Kind != "raw" && h.Kind != "module" {
			boost += cfg.Search.StructuralBoost
		}
		lines := float64(h.EndLine - h.StartLine + 1)
		if avgLines > 0 && lines > 2*avgLines {
			penalty := math.Min(cfg.Search.OversizedPenaltyCap, (lines/avgLines)*0.5)
			boost -= penalty
		}
		out[i] = Result{Chunk: h.Chunk, Rank: h.Rank - boost}
	}
	return out
}

// rerankContext applies spec §4.7 step 7: focus/visited/annotation boosts
// loaded for sessionID (and the global scope), at most one bump per
// category per result.
func rerankContext(st *store.Store, results []Result, sessionID string, cfg config.Config) error {
	focusPaths, err := st.GetFocusPaths(sessionID)
	if err != nil {
		return err
	}
	visitedPaths, err := st.GetVisitedPaths(sessionID)
	if err != nil {
		return err
	}
	if err := st.ClearExpiredAnnotations(); err != nil {
		return err
	}
	annotations, err := st.GetAnnotations("", sessionID)
	if err != nil {
		return err
	}

	for i := range results {
		r := &results[i]
		if hasPrefixMatch(focusPaths, r.FilePath) {
			r.Rank -= cfg.Search.FocusBoost
		}
		if hasPrefixMatch(visitedPaths, r.FilePath) {
			r.Rank += cfg.Search.VisitedPenalty
		}
		if annotationMatches(annotations, r) {
			r.Rank -= cfg.Search.AnnotationBoost
		}
	}
	return nil
}

func hasPrefixMatch(prefixes []string, path string) bool {
	for _, p := range prefixes {
		if p == path || strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func annotationMatches(annotations []store.Annotation, r *Result) bool {
	for _, a := range annotations {
		if a.Target == r.FilePath || (r.Name != "" && a.Target == r.Name) {
			return true
		}
	}
	return false
}

// resolveStorageDir mirrors index.RunWithOptions's root resolution so a
// searcher always opens the same store an indexing run just populated.
func resolveStorageDir(root string, cfg config.Config) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", boogererrors.IO("resolve project root", err)
	}
	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", boogererrors.IO("resolve project root", err)
	}
	return cfg.StorageDir(resolved), nil
}
