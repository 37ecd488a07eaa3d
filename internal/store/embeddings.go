package store

import (
	"database/sql"
	"encoding/binary"
	"math"

	boogererrors "github.com/CryptArtificer/booger/internal/errors"
)

// ChunkText is a (chunk_id, content) pair lacking an embedding for some
// model — the unit of work the embedding producer (C6) consumes.
type ChunkText struct {
	ChunkID int64
	Content string
}

// ChunksNeedingEmbedding returns every chunk, of any kind, without a row in
// embeddings for model.
func (s *Store) ChunksNeedingEmbedding(model string) ([]ChunkText, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.content
		FROM chunks c
		LEFT JOIN embeddings e ON e.chunk_id = c.id AND e.model = ?
		WHERE e.chunk_id IS NULL
		ORDER BY c.id`, model)
	if err != nil {
		return nil, boogererrors.StoreIntegrity("query chunks needing embedding", err)
	}
	defer rows.Close()

	var out []ChunkText
	for rows.Next() {
		var ct ChunkText
		if err := rows.Scan(&ct.ChunkID, &ct.Content); err != nil {
			return nil, boogererrors.StoreIntegrity("scan chunk needing embedding", err)
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}

// UpsertEmbedding persists one chunk's embedding vector for a model.
func (s *Store) UpsertEmbedding(tx *sql.Tx, chunkID int64, model string, vec []float32) error {
	_, err := tx.Exec(`
		INSERT INTO embeddings (chunk_id, model, dims, vector) VALUES (?, ?, ?, ?)
		ON CONFLICT(chunk_id, model) DO UPDATE SET dims = excluded.dims, vector = excluded.vector
	`, chunkID, model, len(vec), encodeVector(vec))
	if err != nil {
		return boogererrors.StoreIntegrity("upsert embedding", err)
	}
	return nil
}

// UpsertEmbeddingsBatch writes a batch of embeddings inside one transaction.
func (s *Store) UpsertEmbeddingsBatch(tx *sql.Tx, chunkIDs []int64, model string, vecs [][]float32) error {
	stmt, err := tx.Prepare(`
		INSERT INTO embeddings (chunk_id, model, dims, vector) VALUES (?, ?, ?, ?)
		ON CONFLICT(chunk_id, model) DO UPDATE SET dims = excluded.dims, vector = excluded.vector
	`)
	if err != nil {
		return boogererrors.StoreIntegrity("prepare embedding batch insert", err)
	}
	defer stmt.Close()

	for i, id := range chunkIDs {
		vec := vecs[i]
		if _, err := stmt.Exec(id, model, len(vec), encodeVector(vec)); err != nil {
			return boogererrors.StoreIntegrity("insert embedding in batch", err)
		}
	}
	return nil
}

// Embedding is one stored vector plus the chunk and file metadata needed to
// resolve it to a full search result.
type Embedding struct {
	ChunkID  int64
	FilePath string
	Kind     string
	Name     string
	Content  string
	Vector   []float32
}

// AllEmbeddings loads every stored embedding for model, joined to its
// owning chunk and file, for the brute-force semantic search pass.
func (s *Store) AllEmbeddings(model string) ([]Embedding, error) {
	rows, err := s.db.Query(`
		SELECT e.chunk_id, f.path, c.kind, COALESCE(c.name,''), c.content, e.vector
		FROM embeddings e
		JOIN chunks c ON c.id = e.chunk_id
		JOIN files f ON f.id = c.file_id
		WHERE e.model = ?`, model)
	if err != nil {
		return nil, boogererrors.StoreIntegrity("query all embeddings", err)
	}
	defer rows.Close()

	var out []Embedding
	for rows.Next() {
		var e Embedding
		var blob []byte
		if err := rows.Scan(&e.ChunkID, &e.FilePath, &e.Kind, &e.Name, &e.Content, &blob); err != nil {
			return nil, boogererrors.StoreIntegrity("scan embedding row", err)
		}
		e.Vector = decodeVector(blob)
		out = append(out, e)
	}
	return out, rows.Err()
}

// encodeVector packs a float32 slice as little-endian bytes for BLOB
// storage; sqlite has no native vector type, so doing it ourselves avoids
// pulling in a column codec neither the teacher nor the rest of the pack
// carries.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(buf []byte) []float32 {
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec
}
