// Package search implements the keyword (C7), semantic (C8), and
// symbol/grep/reference (C9) query surfaces over a project's index, plus
// the hybrid blend and cross-project workspace fan-out layered on top.
package search

import "github.com/CryptArtificer/booger/internal/store"

// Query is one search request's fields, shared by the keyword and semantic
// searchers.
type Query struct {
	Text       string
	Language   string
	PathPrefix string
	Kind       string
	MaxResults int
	SessionID  string // "" means the global/no-session scope
}

// Result is one ranked hit. Rank follows the FTS convention: more negative
// is better, so keyword and semantic results sort on the same key and a
// hybrid blend can compare them directly.
type Result struct {
	store.Chunk
	Rank float64

	// Project is set only by WorkspaceSearch, tagging which registered
	// project this result came from.
	Project string
}

func defaultMaxResults(n int) int {
	if n <= 0 {
		return 10
	}
	return n
}
