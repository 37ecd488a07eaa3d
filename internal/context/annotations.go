package context

import (
	"github.com/CryptArtificer/booger/internal/config"
	"github.com/CryptArtificer/booger/internal/store"
)

// Annotate records a note against target, optionally scoped to a session
// and expiring after ttlSeconds (0 means no expiry).
func Annotate(root string, cfg config.Config, target, note, sessionID string, ttlSeconds int64) (int64, error) {
	st, err := openStoreRW(root, cfg)
	if err != nil {
		return 0, err
	}
	defer st.Close()
	return st.AddAnnotation(target, note, sessionID, ttlSeconds)
}

// Annotations lists annotations matching an optional target filter,
// visible to sessionID, after purging expired rows. An unindexed root
// reports no annotations rather than an error.
func Annotations(root string, cfg config.Config, target, sessionID string) ([]store.Annotation, error) {
	st, err := openStoreRO(root, cfg)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, nil
	}
	defer st.Close()

	if err := st.ClearExpiredAnnotations(); err != nil {
		return nil, err
	}
	return st.GetAnnotations(target, sessionID)
}

// Forget removes one annotation by id. A no-op against an unindexed root.
func Forget(root string, cfg config.Config, id int64) error {
	st, err := openStoreRO(root, cfg)
	if err != nil {
		return err
	}
	if st == nil {
		return nil
	}
	defer st.Close()
	return st.DeleteAnnotation(id)
}

// ClearSessionAnnotations removes every annotation scoped to sessionID and
// reports how many were removed. A no-op against an unindexed root.
func ClearSessionAnnotations(root string, cfg config.Config, sessionID string) (int64, error) {
	st, err := openStoreRO(root, cfg)
	if err != nil {
		return 0, err
	}
	if st == nil {
		return 0, nil
	}
	defer st.Close()
	return st.ClearSessionAnnotations(sessionID)
}
