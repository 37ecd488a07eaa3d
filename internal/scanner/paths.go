package scanner

import (
	"path/filepath"
	"strings"
)

func baseName(path string) string {
	return filepath.Base(path)
}

// extension returns a path's extension, lowercased and without the leading
// dot. Returns "" when there is none.
func extension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
