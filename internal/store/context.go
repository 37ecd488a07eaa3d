package store

import (
	"database/sql"
	"time"

	boogererrors "github.com/CryptArtificer/booger/internal/errors"
)

// Annotation is a user- or agent-left note bound to a file, symbol, or
// line range.
type Annotation struct {
	ID        int64
	Target    string
	Note      string
	SessionID string // "" means persistent/global
	CreatedAt time.Time
	ExpiresAt *time.Time
}

// AddAnnotation records a note against target, optionally scoped to a
// session and expiring after ttlSeconds (0 means no expiry).
func (s *Store) AddAnnotation(target, note, sessionID string, ttlSeconds int64) (int64, error) {
	now := time.Now().UTC()
	var expiresAt sql.NullString
	if ttlSeconds > 0 {
		expiresAt = sql.NullString{String: now.Add(time.Duration(ttlSeconds) * time.Second).Format(time.RFC3339), Valid: true}
	}
	res, err := s.db.Exec(`
		INSERT INTO annotations (target, note, session_id, created_at, expires_at)
		VALUES (?, ?, NULLIF(?, ''), ?, ?)`,
		target, note, sessionID, now.Format(time.RFC3339), expiresAt)
	if err != nil {
		return 0, boogererrors.StoreIntegrity("insert annotation", err)
	}
	return res.LastInsertId()
}

// ClearExpiredAnnotations purges rows whose expires_at has passed. Called
// on every read so stale annotations never surface.
func (s *Store) ClearExpiredAnnotations() error {
	_, err := s.db.Exec(`DELETE FROM annotations WHERE expires_at IS NOT NULL AND expires_at < ?`,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return boogererrors.StoreIntegrity("clear expired annotations", err)
	}
	return nil
}

// GetAnnotations returns annotations matching an optional target filter,
// visible to sessionID (global annotations are always visible). Call
// ClearExpiredAnnotations first.
func (s *Store) GetAnnotations(target, sessionID string) ([]Annotation, error) {
	query := `SELECT id, target, note, COALESCE(session_id,''), created_at, expires_at
		FROM annotations WHERE (session_id IS NULL OR session_id = ?)`
	args := []any{sessionID}
	if target != "" {
		query += " AND target = ?"
		args = append(args, target)
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, boogererrors.StoreIntegrity("query annotations", err)
	}
	defer rows.Close()

	var out []Annotation
	for rows.Next() {
		var a Annotation
		var createdAt string
		var expiresAt sql.NullString
		if err := rows.Scan(&a.ID, &a.Target, &a.Note, &a.SessionID, &createdAt, &expiresAt); err != nil {
			return nil, boogererrors.StoreIntegrity("scan annotation row", err)
		}
		a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if expiresAt.Valid {
			t, _ := time.Parse(time.RFC3339, expiresAt.String)
			a.ExpiresAt = &t
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteAnnotation removes one annotation by id.
func (s *Store) DeleteAnnotation(id int64) error {
	_, err := s.db.Exec(`DELETE FROM annotations WHERE id = ?`, id)
	if err != nil {
		return boogererrors.StoreIntegrity("delete annotation", err)
	}
	return nil
}

// ClearSessionAnnotations removes every annotation scoped to sessionID and
// reports how many were removed.
func (s *Store) ClearSessionAnnotations(sessionID string) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM annotations WHERE session_id = ?`, sessionID)
	if err != nil {
		return 0, boogererrors.StoreIntegrity("clear session annotations", err)
	}
	return res.RowsAffected()
}

// WorksetEntry is one focused or visited path.
type WorksetEntry struct {
	ID        int64
	Path      string
	Kind      string // "focus" or "visited"
	SessionID string
	CreatedAt time.Time
}

// AddToWorkset records path as focused or visited for a session. Duplicate
// (path, kind, session) triples are ignored, not errors.
func (s *Store) AddToWorkset(path, kind, sessionID string) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO workset (path, kind, session_id, created_at)
		SELECT ?, ?, NULLIF(?, ''), ?
		WHERE NOT EXISTS (
			SELECT 1 FROM workset WHERE path = ? AND kind = ? AND session_id IS NULLIF(?, '')
		)`,
		path, kind, sessionID, time.Now().UTC().Format(time.RFC3339), path, kind, sessionID)
	if err != nil {
		return boogererrors.StoreIntegrity("insert workset entry", err)
	}
	return nil
}

// RemoveFromWorkset drops one (path, kind) entry across all sessions.
func (s *Store) RemoveFromWorkset(path, kind string) error {
	_, err := s.db.Exec(`DELETE FROM workset WHERE path = ? AND kind = ?`, path, kind)
	if err != nil {
		return boogererrors.StoreIntegrity("remove workset entry", err)
	}
	return nil
}

// GetWorkset lists entries matching an optional kind filter, visible to
// sessionID.
func (s *Store) GetWorkset(kind, sessionID string) ([]WorksetEntry, error) {
	query := `SELECT id, path, kind, COALESCE(session_id,''), created_at
		FROM workset WHERE (session_id IS NULL OR session_id = ?)`
	args := []any{sessionID}
	if kind != "" {
		query += " AND kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, boogererrors.StoreIntegrity("query workset", err)
	}
	defer rows.Close()

	var out []WorksetEntry
	for rows.Next() {
		var e WorksetEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Path, &e.Kind, &e.SessionID, &createdAt); err != nil {
			return nil, boogererrors.StoreIntegrity("scan workset row", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

// ClearWorkset removes every entry for sessionID (or every entry, if
// sessionID is empty) and reports how many were removed.
func (s *Store) ClearWorkset(sessionID string) (int64, error) {
	var res sql.Result
	var err error
	if sessionID == "" {
		res, err = s.db.Exec(`DELETE FROM workset`)
	} else {
		res, err = s.db.Exec(`DELETE FROM workset WHERE session_id = ?`, sessionID)
	}
	if err != nil {
		return 0, boogererrors.StoreIntegrity("clear workset", err)
	}
	return res.RowsAffected()
}

// GetFocusPaths returns focused paths visible to sessionID, used by the
// keyword searcher's context re-rank.
func (s *Store) GetFocusPaths(sessionID string) ([]string, error) {
	return s.worksetPaths("focus", sessionID)
}

// GetVisitedPaths returns visited paths visible to sessionID.
func (s *Store) GetVisitedPaths(sessionID string) ([]string, error) {
	return s.worksetPaths("visited", sessionID)
}

func (s *Store) worksetPaths(kind, sessionID string) ([]string, error) {
	entries, err := s.GetWorkset(kind, sessionID)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths, nil
}
