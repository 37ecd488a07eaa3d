// Package registry implements the cross-project registry: a single
// process-user-home file mapping a short project name to an absolute
// directory, consumed by the request-dispatcher boundary (CLI/MCP) to
// route an operation to the correct project root, grounded on spec.md
// §3's "Project registry" data-model entry and §6's
// `$HOME/.booger/projects.json` schema.
package registry

import (
	"fmt"
	"regexp"
	"time"
)

// DefaultFileName is the registry file's name under its storage directory.
const DefaultFileName = "projects.json"

// maxNameLength bounds a registered project's short name.
const maxNameLength = 64

var validNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateName enforces the short-name charset the registry and the CLI
// flags it feeds accept.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("project name too long (max %d chars)", maxNameLength)
	}
	if !validNamePattern.MatchString(name) {
		return fmt.Errorf("project name can only contain letters, numbers, hyphens, and underscores")
	}
	return nil
}

// IndexStats is the read-through cache of per-project index summary
// figures, per SPEC_FULL.md §3's supplemented registry entry: refreshed
// from the live store on each index call against that project, so it is
// cache, not authority.
type IndexStats struct {
	FileCount  int `json:"file_count"`
	ChunkCount int `json:"chunk_count"`
}

// Entry is one registered project.
type Entry struct {
	Path          string     `json:"path"`
	LastIndexedAt *time.Time `json:"last_indexed_at,omitempty"`
	IndexStats    IndexStats `json:"index_stats"`
}

// Registry is the on-disk shape of projects.json: {"projects": {name: entry}}.
type Registry struct {
	Projects map[string]Entry `json:"projects"`
}

func empty() *Registry {
	return &Registry{Projects: make(map[string]Entry)}
}
