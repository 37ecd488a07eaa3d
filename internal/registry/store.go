package registry

import (
	"encoding/json"
	"os"
	"path/filepath"

	boogererrors "github.com/CryptArtificer/booger/internal/errors"
)

// DefaultPath returns $HOME/.booger/projects.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", boogererrors.IO("resolve home directory", err)
	}
	return filepath.Join(home, ".booger", DefaultFileName), nil
}

// Load reads the registry at path. A missing file is not an error: it
// reports an empty registry, matching spec.md's "single process-user-home
// file" existing lazily on first `projects add`.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return empty(), nil
	}
	if err != nil {
		return nil, boogererrors.IO("read registry", err)
	}

	reg := empty()
	if err := json.Unmarshal(data, reg); err != nil {
		return nil, boogererrors.Parse("parse registry", err)
	}
	if reg.Projects == nil {
		reg.Projects = make(map[string]Entry)
	}
	return reg, nil
}

// Save persists the registry atomically: write to a temp file in the same
// directory, then rename, so a crash mid-write never corrupts the file a
// concurrent reader sees.
func Save(path string, reg *Registry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return boogererrors.IO("create registry directory", err)
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return boogererrors.IO("marshal registry", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return boogererrors.IO("write registry", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return boogererrors.IO("save registry", err)
	}
	return nil
}
