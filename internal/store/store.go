// Package store implements the persistent index (C4): a single-writer,
// multi-reader SQLite database per project root, with an FTS5 external
// content table kept in sync by triggers, embeddings, and the volatile
// context layer (annotations, workset).
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	boogererrors "github.com/CryptArtificer/booger/internal/errors"
)

// DBFileName is the database file's name within a project's storage
// directory.
const DBFileName = "index.sqlite"

// Store wraps one project's SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates the storage directory and database if absent, migrating it
// to the current schema either way. Used on every write path (indexing,
// embedding, annotating).
func Open(storageDir string) (*Store, error) {
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return nil, boogererrors.IO("create storage directory", err)
	}
	return open(filepath.Join(storageDir, DBFileName), true)
}

// OpenIfExists opens an existing database without creating one. Returns
// (nil, nil) when no database file exists yet, so read-only queries against
// an unindexed directory report "absent index" instead of producing
// phantom state.
func OpenIfExists(storageDir string) (*Store, error) {
	dbPath := filepath.Join(storageDir, DBFileName)
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, boogererrors.IO("stat database file", err)
	}
	return open(dbPath, false)
}

func open(dbPath string, create bool) (*Store, error) {
	dsn := dbPath
	if !create {
		// "immutable" readers would reject WAL writes from a concurrent
		// indexer, so read paths still open for read/write access but never
		// create the file themselves (guarded above).
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, boogererrors.IO("open database", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, path: dbPath}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, boogererrors.StoreIntegrity(fmt.Sprintf("apply pragma %q", p), err)
		}
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, boogererrors.StoreIntegrity("migrate schema", err)
	}
	return s, nil
}

// Close checkpoints the WAL and releases the connection.
func (s *Store) Close() error {
	_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return s.db.Close()
}

// Path returns the database file's path on disk.
func (s *Store) Path() string { return s.path }

// File is one row of the files table.
type File struct {
	ID          int64
	Path        string
	ContentHash string
	SizeBytes   int64
	Language    string
	IndexedAt   time.Time
	MTime       time.Time
}

// GetFile looks up a file by its project-relative path.
func (s *Store) GetFile(path string) (*File, error) {
	row := s.db.QueryRow(`SELECT id, path, content_hash, size_bytes, COALESCE(language, ''), indexed_at, COALESCE(mtime, '')
		FROM files WHERE path = ?`, path)
	return scanFile(row)
}

func scanFile(row *sql.Row) (*File, error) {
	var f File
	var indexedAt, mtime string
	if err := row.Scan(&f.ID, &f.Path, &f.ContentHash, &f.SizeBytes, &f.Language, &indexedAt, &mtime); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, boogererrors.StoreIntegrity("scan file row", err)
	}
	f.IndexedAt, _ = time.Parse(time.RFC3339, indexedAt)
	if mtime != "" {
		f.MTime, _ = time.Parse(time.RFC3339, mtime)
	}
	return &f, nil
}

// UpsertFile inserts or updates a file's metadata row and returns its id.
// Must run inside a transaction managed by the caller (Begin/Commit).
func (s *Store) UpsertFile(tx *sql.Tx, path, contentHash string, sizeBytes int64, language string, mtime time.Time) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := tx.Exec(`
		INSERT INTO files (path, content_hash, size_bytes, language, indexed_at, mtime)
		VALUES (?, ?, ?, NULLIF(?, ''), ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			content_hash = excluded.content_hash,
			size_bytes   = excluded.size_bytes,
			language     = excluded.language,
			indexed_at   = excluded.indexed_at,
			mtime        = excluded.mtime
	`, path, contentHash, sizeBytes, language, now, mtime.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, boogererrors.StoreIntegrity("upsert file", err)
	}
	if id, err := res.LastInsertId(); err == nil && id != 0 {
		return id, nil
	}
	var id int64
	if err := tx.QueryRow(`SELECT id FROM files WHERE path = ?`, path).Scan(&id); err != nil {
		return 0, boogererrors.StoreIntegrity("reload file id", err)
	}
	return id, nil
}

// DeleteChunksForFile removes every chunk belonging to a file. FTS rows and
// embeddings disappear via the chunks_fts triggers and the embeddings
// table's ON DELETE CASCADE.
func (s *Store) DeleteChunksForFile(tx *sql.Tx, fileID int64) error {
	_, err := tx.Exec(`DELETE FROM chunks WHERE file_id = ?`, fileID)
	if err != nil {
		return boogererrors.StoreIntegrity("delete chunks for file", err)
	}
	return nil
}

// RemoveFile deletes a file and, via FK cascade, its chunks.
func (s *Store) RemoveFile(path string) error {
	_, err := s.db.Exec(`DELETE FROM files WHERE path = ?`, path)
	if err != nil {
		return boogererrors.StoreIntegrity("remove file", err)
	}
	return nil
}

// AllFilePaths returns every indexed file's relative path, used by the
// indexer's reconciliation pass to find files that vanished from disk.
func (s *Store) AllFilePaths() ([]string, error) {
	rows, err := s.db.Query(`SELECT path FROM files`)
	if err != nil {
		return nil, boogererrors.StoreIntegrity("list file paths", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, boogererrors.StoreIntegrity("scan file path", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// Begin starts a transaction for a batch of file upserts/chunk inserts.
func (s *Store) Begin() (*sql.Tx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, boogererrors.StoreIntegrity("begin transaction", err)
	}
	return tx, nil
}

// ChunkInsert mirrors chunk.Insert; the store package avoids importing the
// chunk package so persistence stays decoupled from parsing.
type ChunkInsert struct {
	Kind      string
	Name      string
	Content   string
	Signature string
	StartLine int
	EndLine   int
	StartByte int
	EndByte   int
}

// InsertChunks writes a file's chunk set inside the caller's transaction.
func (s *Store) InsertChunks(tx *sql.Tx, fileID int64, chunks []ChunkInsert) error {
	stmt, err := tx.Prepare(`
		INSERT INTO chunks (file_id, kind, name, content, signature, start_line, end_line, start_byte, end_byte)
		VALUES (?, ?, NULLIF(?, ''), ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return boogererrors.StoreIntegrity("prepare chunk insert", err)
	}
	defer stmt.Close()

	for _, c := range chunks {
		if _, err := stmt.Exec(fileID, c.Kind, c.Name, c.Content, c.Signature, c.StartLine, c.EndLine, c.StartByte, c.EndByte); err != nil {
			return boogererrors.StoreIntegrity("insert chunk", err)
		}
	}
	return nil
}

// Chunk is one row of the chunks table plus its owning file's path.
type Chunk struct {
	ID        int64
	FileID    int64
	FilePath  string
	Kind      string
	Name      string
	Content   string
	Signature string
	StartLine int
	EndLine   int
	StartByte int
	EndByte   int
}

// ChunkByID fetches a single chunk by id, joined to its file path.
func (s *Store) ChunkByID(id int64) (*Chunk, error) {
	row := s.db.QueryRow(`
		SELECT c.id, c.file_id, f.path, c.kind, COALESCE(c.name,''), c.content, COALESCE(c.signature,''),
		       c.start_line, c.end_line, c.start_byte, c.end_byte
		FROM chunks c JOIN files f ON f.id = c.file_id
		WHERE c.id = ?`, id)
	return scanChunk(row)
}

func scanChunk(row *sql.Row) (*Chunk, error) {
	var c Chunk
	if err := row.Scan(&c.ID, &c.FileID, &c.FilePath, &c.Kind, &c.Name, &c.Content, &c.Signature,
		&c.StartLine, &c.EndLine, &c.StartByte, &c.EndByte); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, boogererrors.StoreIntegrity("scan chunk row", err)
	}
	return &c, nil
}

// AllChunks returns chunks under an optional path prefix / kind filter,
// ordered by file path then start line.
func (s *Store) AllChunks(pathPrefix, kind string) ([]Chunk, error) {
	query := `
		SELECT c.id, c.file_id, f.path, c.kind, COALESCE(c.name,''), c.content, COALESCE(c.signature,''),
		       c.start_line, c.end_line, c.start_byte, c.end_byte
		FROM chunks c JOIN files f ON f.id = c.file_id
		WHERE 1=1`
	var args []any
	if pathPrefix != "" {
		query += " AND f.path LIKE ? ESCAPE '\\'"
		args = append(args, likePrefix(pathPrefix))
	}
	if kind != "" {
		query += " AND c.kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY f.path, c.start_line"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, boogererrors.StoreIntegrity("query all chunks", err)
	}
	defer rows.Close()
	return scanChunks(rows)
}

// ListSymbols returns every chunk whose kind is not "raw", the structural
// symbol index.
func (s *Store) ListSymbols(pathPrefix, kind string) ([]Chunk, error) {
	query := `
		SELECT c.id, c.file_id, f.path, c.kind, COALESCE(c.name,''), c.content, COALESCE(c.signature,''),
		       c.start_line, c.end_line, c.start_byte, c.end_byte
		FROM chunks c JOIN files f ON f.id = c.file_id
		WHERE c.kind != 'raw'`
	var args []any
	if pathPrefix != "" {
		query += " AND f.path LIKE ? ESCAPE '\\'"
		args = append(args, likePrefix(pathPrefix))
	}
	if kind != "" {
		query += " AND c.kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY f.path, c.start_line"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, boogererrors.StoreIntegrity("query symbols", err)
	}
	defer rows.Close()
	return scanChunks(rows)
}

func scanChunks(rows *sql.Rows) ([]Chunk, error) {
	var out []Chunk
	for rows.Next() {
		var c Chunk
		if err := rows.Scan(&c.ID, &c.FileID, &c.FilePath, &c.Kind, &c.Name, &c.Content, &c.Signature,
			&c.StartLine, &c.EndLine, &c.StartByte, &c.EndByte); err != nil {
			return nil, boogererrors.StoreIntegrity("scan chunk row", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// likePrefix escapes LIKE metacharacters in a user-supplied path prefix and
// appends the wildcard.
func likePrefix(prefix string) string {
	escaped := strings.NewReplacer("\\", "\\\\", "%", "\\%", "_", "\\_").Replace(prefix)
	return escaped + "%"
}

// KindCount is one row of kind_stats().
type KindCount struct {
	Kind  string
	Count int
}

// KindStats returns the number of chunks per kind.
func (s *Store) KindStats() ([]KindCount, error) {
	rows, err := s.db.Query(`SELECT kind, COUNT(*) FROM chunks GROUP BY kind ORDER BY kind`)
	if err != nil {
		return nil, boogererrors.StoreIntegrity("query kind stats", err)
	}
	defer rows.Close()

	var out []KindCount
	for rows.Next() {
		var kc KindCount
		if err := rows.Scan(&kc.Kind, &kc.Count); err != nil {
			return nil, boogererrors.StoreIntegrity("scan kind stats row", err)
		}
		out = append(out, kc)
	}
	return out, rows.Err()
}

// Stats summarizes one project's index.
type Stats struct {
	FileCount     int
	ChunkCount    int
	EmbeddedCount int
	DBSizeBytes   int64
}

// Stats reports overall index size, including the database file's size on
// disk.
func (s *Store) Stats() (*Stats, error) {
	var st Stats
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM files`).Scan(&st.FileCount); err != nil {
		return nil, boogererrors.StoreIntegrity("count files", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM chunks`).Scan(&st.ChunkCount); err != nil {
		return nil, boogererrors.StoreIntegrity("count chunks", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(DISTINCT chunk_id) FROM embeddings`).Scan(&st.EmbeddedCount); err != nil {
		return nil, boogererrors.StoreIntegrity("count embedded chunks", err)
	}
	if info, err := os.Stat(s.path); err == nil {
		st.DBSizeBytes = info.Size()
	}
	return &st, nil
}
