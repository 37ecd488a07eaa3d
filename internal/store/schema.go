package store

// currentSchemaVersion is recorded in meta.schema_version after migration.
// Bump this and extend migrate() when the schema changes; migrations must
// stay forward-only and idempotent on re-open.
const currentSchemaVersion = "1"

// schemaDDL creates every table, index, and trigger this store needs.
// IF NOT EXISTS everywhere makes re-running it on an already-migrated
// database a no-op, which is what lets open-or-create work without a
// separate "is this fresh" check.
const schemaDDL = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS files (
	id           INTEGER PRIMARY KEY,
	path         TEXT NOT NULL UNIQUE,
	content_hash TEXT NOT NULL,
	size_bytes   INTEGER NOT NULL,
	language     TEXT,
	indexed_at   TEXT NOT NULL,
	mtime        TEXT
);
CREATE INDEX IF NOT EXISTS idx_files_path ON files(path);
CREATE INDEX IF NOT EXISTS idx_files_language ON files(language);

CREATE TABLE IF NOT EXISTS chunks (
	id         INTEGER PRIMARY KEY,
	file_id    INTEGER NOT NULL REFERENCES files(id) ON DELETE CASCADE,
	kind       TEXT NOT NULL,
	name       TEXT,
	content    TEXT NOT NULL,
	signature  TEXT,
	start_line INTEGER NOT NULL,
	end_line   INTEGER NOT NULL,
	start_byte INTEGER NOT NULL,
	end_byte   INTEGER NOT NULL,
	UNIQUE(file_id, start_byte, end_byte)
);
CREATE INDEX IF NOT EXISTS idx_chunks_file ON chunks(file_id);
CREATE INDEX IF NOT EXISTS idx_chunks_kind ON chunks(kind);
CREATE INDEX IF NOT EXISTS idx_chunks_name ON chunks(name) WHERE name IS NOT NULL;

CREATE VIRTUAL TABLE IF NOT EXISTS chunks_fts USING fts5(
	name,
	content,
	content='chunks',
	content_rowid='id',
	tokenize='porter unicode61'
);

CREATE TRIGGER IF NOT EXISTS chunks_ai AFTER INSERT ON chunks BEGIN
	INSERT INTO chunks_fts(rowid, name, content) VALUES (new.id, new.name, new.content);
END;
CREATE TRIGGER IF NOT EXISTS chunks_ad AFTER DELETE ON chunks BEGIN
	INSERT INTO chunks_fts(chunks_fts, rowid, name, content) VALUES('delete', old.id, old.name, old.content);
END;
CREATE TRIGGER IF NOT EXISTS chunks_au AFTER UPDATE ON chunks BEGIN
	INSERT INTO chunks_fts(chunks_fts, rowid, name, content) VALUES('delete', old.id, old.name, old.content);
	INSERT INTO chunks_fts(rowid, name, content) VALUES (new.id, new.name, new.content);
END;

CREATE TABLE IF NOT EXISTS embeddings (
	chunk_id  INTEGER NOT NULL REFERENCES chunks(id) ON DELETE CASCADE,
	model     TEXT NOT NULL,
	dims      INTEGER NOT NULL,
	vector    BLOB NOT NULL,
	PRIMARY KEY (chunk_id, model)
);

CREATE TABLE IF NOT EXISTS annotations (
	id         INTEGER PRIMARY KEY,
	target     TEXT NOT NULL,
	note       TEXT NOT NULL,
	session_id TEXT,
	created_at TEXT NOT NULL,
	expires_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_annotations_target ON annotations(target);
CREATE INDEX IF NOT EXISTS idx_annotations_session ON annotations(session_id);

CREATE TABLE IF NOT EXISTS workset (
	id         INTEGER PRIMARY KEY,
	path       TEXT NOT NULL,
	kind       TEXT NOT NULL CHECK(kind IN ('focus', 'visited')),
	session_id TEXT,
	created_at TEXT NOT NULL,
	UNIQUE(path, kind, session_id)
);
CREATE INDEX IF NOT EXISTS idx_workset_kind ON workset(kind);
CREATE INDEX IF NOT EXISTS idx_workset_session ON workset(session_id);
`

// pragmas are applied on every connection open, before schemaDDL, matching
// the durability and concurrency posture of a single-writer/multi-reader
// local store.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA cache_size = -65536",
	"PRAGMA temp_store = MEMORY",
	"PRAGMA foreign_keys = ON",
}

// migrate brings a database from whatever schema_version it holds (absent
// entirely for a brand-new file) up to currentSchemaVersion. It is safe to
// call on every open.
func (s *Store) migrate() error {
	if _, err := s.db.Exec(schemaDDL); err != nil {
		return err
	}
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO meta (key, value) VALUES ('schema_version', ?)",
		currentSchemaVersion,
	)
	return err
}
