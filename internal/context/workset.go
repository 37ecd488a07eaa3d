package context

import (
	"github.com/CryptArtificer/booger/internal/config"
	"github.com/CryptArtificer/booger/internal/store"
)

// Focus marks paths as focused for sessionID. Duplicate entries are
// silently ignored, per store.AddToWorkset's uniqueness semantics.
func Focus(root string, cfg config.Config, paths []string, sessionID string) error {
	return addToWorkset(root, cfg, paths, "focus", sessionID)
}

// Visit marks paths as visited for sessionID.
func Visit(root string, cfg config.Config, paths []string, sessionID string) error {
	return addToWorkset(root, cfg, paths, "visited", sessionID)
}

func addToWorkset(root string, cfg config.Config, paths []string, kind, sessionID string) error {
	st, err := openStoreRW(root, cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	for _, p := range paths {
		if err := st.AddToWorkset(p, kind, sessionID); err != nil {
			return err
		}
	}
	return nil
}

// Unfocus removes paths from the focus set. A no-op against an unindexed
// root.
func Unfocus(root string, cfg config.Config, paths []string) error {
	st, err := openStoreRO(root, cfg)
	if err != nil {
		return err
	}
	if st == nil {
		return nil
	}
	defer st.Close()
	for _, p := range paths {
		if err := st.RemoveFromWorkset(p, "focus"); err != nil {
			return err
		}
	}
	return nil
}

// Workset lists entries matching an optional kind filter, visible to
// sessionID. An unindexed root reports an empty workset.
func Workset(root string, cfg config.Config, kind, sessionID string) ([]store.WorksetEntry, error) {
	st, err := openStoreRO(root, cfg)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, nil
	}
	defer st.Close()
	return st.GetWorkset(kind, sessionID)
}

// ClearWorkset removes every entry for sessionID (or every entry, if
// sessionID is empty) and reports how many were removed.
func ClearWorkset(root string, cfg config.Config, sessionID string) (int64, error) {
	st, err := openStoreRO(root, cfg)
	if err != nil {
		return 0, err
	}
	if st == nil {
		return 0, nil
	}
	defer st.Close()
	return st.ClearWorkset(sessionID)
}
