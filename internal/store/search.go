package store

import (
	boogererrors "github.com/CryptArtificer/booger/internal/errors"
)

// SearchResult is one FTS hit: a chunk plus its raw bm25 rank (more
// negative is better, matching SQLite FTS5's convention).
type SearchResult struct {
	Chunk
	Rank float64
}

// SearchFilter narrows a keyword search before ranking.
type SearchFilter struct {
	Language   string
	PathPrefix string
	Kind       string
}

// Search runs query (expected to already be sanitized by SanitizeFTSQuery)
// against chunks_fts, filtered by language/path_prefix/kind, ordered by
// bm25 rank ascending, truncated to limit.
func (s *Store) Search(query string, filter SearchFilter, limit int) ([]SearchResult, error) {
	if query == "" {
		return nil, nil
	}

	sqlText := `
		SELECT c.id, c.file_id, f.path, c.kind, COALESCE(c.name,''), c.content, COALESCE(c.signature,''),
		       c.start_line, c.end_line, c.start_byte, c.end_byte, bm25(chunks_fts) AS rank
		FROM chunks_fts
		JOIN chunks c ON c.id = chunks_fts.rowid
		JOIN files f ON f.id = c.file_id
		WHERE chunks_fts MATCH ?`
	args := []any{query}

	if filter.Language != "" {
		sqlText += " AND f.language = ?"
		args = append(args, filter.Language)
	}
	if filter.PathPrefix != "" {
		sqlText += " AND f.path LIKE ? ESCAPE '\\'"
		args = append(args, likePrefix(filter.PathPrefix))
	}
	if filter.Kind != "" {
		sqlText += " AND c.kind = ?"
		args = append(args, filter.Kind)
	}
	sqlText += " ORDER BY rank, f.path, c.start_line LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(sqlText, args...)
	if err != nil {
		return nil, boogererrors.InvalidQuery("run FTS query", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.FileID, &r.FilePath, &r.Kind, &r.Name, &r.Content, &r.Signature,
			&r.StartLine, &r.EndLine, &r.StartByte, &r.EndByte, &r.Rank); err != nil {
			return nil, boogererrors.StoreIntegrity("scan search result row", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
