package search

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/CryptArtificer/booger/internal/config"
)

// Project is the minimal registry-listed project record workspace search
// fans out over: a name and its root directory. The cross-project registry
// (projects.json) supplies these; this package only consumes the shape.
type Project struct {
	Name string
	Root string
}

// Workspace fans out Keyword across every project (one goroutine per
// project, bounded by errgroup), tags each hit with its project's name, and
// merges by the shared rank comparator — spec §5's "workspace-wide
// cross-project search fans out to one OS thread per registered project."
// A single project's failure does not fail the whole search; its error is
// silently treated as zero results, matching the per-chunk tolerance
// pattern used elsewhere in this engine.
func Workspace(ctx context.Context, projects []Project, cfg config.Config, q Query) ([]Result, error) {
	maxResults := defaultMaxResults(q.MaxResults)

	perProject := make([][]Result, len(projects))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range projects {
		i, p := i, p
		g.Go(func() error {
			hits, err := Keyword(gctx, p.Root, cfg, q)
			if err != nil {
				return nil
			}
			for j := range hits {
				hits[j].Project = p.Name
			}
			perProject[i] = hits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Result
	for _, hits := range perProject {
		out = append(out, hits...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	if len(out) > maxResults {
		out = out[:maxResults]
	}
	return out, nil
}
