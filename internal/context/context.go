// Package context implements the C10 context layer: a thin wrapper around
// internal/store's annotation and workset tables that resolves a project
// root to its storage directory the same way every other package does,
// split into an open-for-write and open-if-indexed path.
package context

import (
	"path/filepath"

	"github.com/CryptArtificer/booger/internal/config"
	boogererrors "github.com/CryptArtificer/booger/internal/errors"
	"github.com/CryptArtificer/booger/internal/store"
)

// openStoreRW opens (creating if absent) the store for root, grounded on
// original_source/src/context/{annotations,workset}.rs's open_store_rw.
func openStoreRW(root string, cfg config.Config) (*store.Store, error) {
	storageDir, err := resolveStorageDir(root, cfg)
	if err != nil {
		return nil, err
	}
	return store.Open(storageDir)
}

// openStoreRO opens the store for root if it has already been indexed,
// returning (nil, nil) otherwise — open_store_ro.
func openStoreRO(root string, cfg config.Config) (*store.Store, error) {
	storageDir, err := resolveStorageDir(root, cfg)
	if err != nil {
		return nil, err
	}
	return store.OpenIfExists(storageDir)
}

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
