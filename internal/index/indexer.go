// Package index implements the indexing driver (C5): it walks a project
// root, hashes and chunks changed files, and persists the result to the
// project's store. A single advisory file lock serializes concurrent
// indexing attempts against the same root.
package index

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/CryptArtificer/booger/internal/chunk"
	"github.com/CryptArtificer/booger/internal/config"
	boogererrors "github.com/CryptArtificer/booger/internal/errors"
	"github.com/CryptArtificer/booger/internal/hash"
	"github.com/CryptArtificer/booger/internal/scanner"
	"github.com/CryptArtificer/booger/internal/store"
)

// lockFileName is the per-root advisory lock guarding concurrent indexing.
const lockFileName = ".booger.lock"

// Result is the driver's outcome record.
type Result struct {
	Scanned       int
	Indexed       int
	Unchanged     int
	Skipped       int
	ChunksCreated int
	Reconciled    int
}

// Options configures one indexing run beyond the base driver algorithm.
type Options struct {
	// Reconcile removes stored file records whose path no longer appears
	// in the walk, after the main loop's final commit. Spec leaves
	// deletion-on-disappearance out of the base driver as an open
	// question recommending implementers add it; this defaults to true.
	Reconcile bool
}

// DefaultOptions matches the driver's recommended behavior.
func DefaultOptions() Options {
	return Options{Reconcile: true}
}

// Run executes the C5 driver algorithm against root using cfg and the
// default options (reconciliation enabled), returning once every batch has
// been committed.
func Run(ctx context.Context, root string, cfg config.Config) (Result, error) {
	return RunWithOptions(ctx, root, cfg, DefaultOptions())
}

// RunWithOptions is Run with explicit control over the reconciliation pass.
// root must be an existing directory; it is resolved to an absolute
// canonical path before the store is opened.
func RunWithOptions(ctx context.Context, root string, cfg config.Config, opts Options) (Result, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Result{}, boogererrors.IO("resolve project root", err)
	}
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return Result{}, boogererrors.IO("resolve project root", err)
	}

	storageDir := cfg.StorageDir(absRoot)
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return Result{}, boogererrors.IO("create storage dir", err)
	}

	lock := flock.New(filepath.Join(storageDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return Result{}, boogererrors.IO("acquire index lock", err)
	}
	if !locked {
		return Result{}, boogererrors.External("another indexing run holds the lock for this root", nil)
	}
	defer lock.Unlock()

	st, err := store.Open(storageDir)
	if err != nil {
		return Result{}, err
	}
	defer st.Close()

	sc, err := scanner.New()
	if err != nil {
		return Result{}, boogererrors.IO("init scanner", err)
	}

	files, err := sc.Walk(ctx, scanner.ScanOptions{
		RootDir:          absRoot,
		RespectGitignore: true,
		MaxThreads:       cfg.ResolvedMaxThreads(),
	})
	if err != nil {
		return Result{}, boogererrors.IO("walk project root", err)
	}

	result := Result{Scanned: len(files)}
	batchSize := cfg.Resources.BatchSize
	if batchSize <= 0 {
		batchSize = 500
	}

	tx, err := st.Begin()
	if err != nil {
		return Result{}, err
	}
	batchCount := 0

	commitAndReopen := func() error {
		if err := tx.Commit(); err != nil {
			return boogererrors.StoreIntegrity("commit index batch", err)
		}
		tx, err = st.Begin()
		batchCount = 0
		return err
	}

	for _, f := range files {
		if scanner.IsBinary(f.Path) {
			result.Skipped++
			continue
		}

		contentHash, err := hash.File(f.AbsPath)
		if err != nil {
			result.Skipped++
			continue
		}

		existing, err := st.GetFile(f.Path)
		if err != nil {
			tx.Rollback()
			return Result{}, err
		}
		if existing != nil && existing.ContentHash == contentHash {
			result.Unchanged++
			continue
		}
		if existing != nil {
			if err := st.DeleteChunksForFile(tx, existing.ID); err != nil {
				tx.Rollback()
				return Result{}, err
			}
		}

		content, err := os.ReadFile(f.AbsPath)
		if err != nil {
			result.Skipped++
			continue
		}

		language := scanner.DetectLanguage(f.Path)
		fileID, err := st.UpsertFile(tx, f.Path, contentHash, int64(len(content)), language, f.ModTime)
		if err != nil {
			tx.Rollback()
			return Result{}, err
		}

		chunks := chunk.ChunkFile(content, language)
		inserts := make([]store.ChunkInsert, len(chunks))
		for i, c := range chunks {
			inserts[i] = store.ChunkInsert{
				Kind:      string(c.Kind),
				Name:      c.Name,
				Content:   c.Content,
				Signature: c.Signature,
				StartLine: c.StartLine,
				EndLine:   c.EndLine,
				StartByte: c.StartByte,
				EndByte:   c.EndByte,
			}
		}
		if err := st.InsertChunks(tx, fileID, inserts); err != nil {
			tx.Rollback()
			return Result{}, err
		}

		result.Indexed++
		result.ChunksCreated += len(inserts)
		batchCount++
		if batchCount >= batchSize {
			if err := commitAndReopen(); err != nil {
				return Result{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Result{}, boogererrors.StoreIntegrity("commit final index batch", err)
	}

	if opts.Reconcile {
		removed, err := reconcileAgainst(st, files)
		if err != nil {
			return Result{}, err
		}
		result.Reconciled = removed
	}

	return result, nil
}

// reconcileAgainst removes stored file records absent from files, using an
// already-open store.
func reconcileAgainst(st *store.Store, files []scanner.FileInfo) (int, error) {
	onDisk := make(map[string]bool, len(files))
	for _, f := range files {
		onDisk[f.Path] = true
	}

	stored, err := st.AllFilePaths()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, path := range stored {
		if onDisk[path] {
			continue
		}
		if err := st.RemoveFile(path); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// Reconcile runs the reconciliation pass on its own, against an
// already-indexed root, without re-running the hash/chunk loop. Useful for
// callers that want deletion-on-disappearance without a full re-index.
func Reconcile(ctx context.Context, root string, cfg config.Config) (int, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return 0, boogererrors.IO("resolve project root", err)
	}
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return 0, boogererrors.IO("resolve project root", err)
	}

	storageDir := cfg.StorageDir(absRoot)
	st, err := store.OpenIfExists(storageDir)
	if err != nil {
		return 0, err
	}
	if st == nil {
		return 0, nil
	}
	defer st.Close()

	sc, err := scanner.New()
	if err != nil {
		return 0, boogererrors.IO("init scanner", err)
	}
	files, err := sc.Walk(ctx, scanner.ScanOptions{
		RootDir:          absRoot,
		RespectGitignore: true,
		MaxThreads:       cfg.ResolvedMaxThreads(),
	})
	if err != nil {
		return 0, boogererrors.IO("walk project root", err)
	}

	return reconcileAgainst(st, files)
}
