package registry

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	boogererrors "github.com/CryptArtificer/booger/internal/errors"
	"gopkg.in/yaml.v3"
)

// Manager loads, mutates, and persists the registry file at a fixed path.
// Every mutation reloads the file and saves it atomically (temp file plus
// rename). Mutations from concurrent processes are not locked against each
// other, so when two overlap the later save wins.
type Manager struct {
	path string
}

// NewManager opens a manager against the registry file at path.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Project pairs a registered name with its entry, for listing.
type Project struct {
	Name  string
	Entry Entry
}

// Add registers name pointing at the absolute path root. Re-registering an
// existing name with a different path is rejected — remove it first.
func (m *Manager) Add(name, root string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return boogererrors.IO("resolve project root", err)
	}

	reg, err := Load(m.path)
	if err != nil {
		return err
	}

	if existing, ok := reg.Projects[name]; ok && existing.Path != absRoot {
		return fmt.Errorf("project %q already registered at %s", name, existing.Path)
	}

	reg.Projects[name] = Entry{Path: absRoot}
	return Save(m.path, reg)
}

// Remove unregisters name. A no-op if name isn't registered.
func (m *Manager) Remove(name string) error {
	reg, err := Load(m.path)
	if err != nil {
		return err
	}
	delete(reg.Projects, name)
	return Save(m.path, reg)
}

// Get retrieves a project's entry by name.
func (m *Manager) Get(name string) (Entry, bool, error) {
	reg, err := Load(m.path)
	if err != nil {
		return Entry{}, false, err
	}
	entry, ok := reg.Projects[name]
	return entry, ok, nil
}

// List returns every registered project, sorted by name.
func (m *Manager) List() ([]Project, error) {
	reg, err := Load(m.path)
	if err != nil {
		return nil, err
	}

	projects := make([]Project, 0, len(reg.Projects))
	for name, entry := range reg.Projects {
		projects = append(projects, Project{Name: name, Entry: entry})
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

// UpdateStats refreshes a project's read-through index-stats cache after an
// index/status call against its store. A no-op if name isn't registered.
func (m *Manager) UpdateStats(name string, stats IndexStats, indexedAt time.Time) error {
	reg, err := Load(m.path)
	if err != nil {
		return err
	}
	entry, ok := reg.Projects[name]
	if !ok {
		return nil
	}
	entry.IndexStats = stats
	entry.LastIndexedAt = &indexedAt
	reg.Projects[name] = entry
	return Save(m.path, reg)
}

// exportDoc is the shape ExportYAML renders — a flat, human-editable list
// rather than the nested JSON map, matching the teacher's export-format
// pattern of reshaping internal state for a secondary output format.
type exportDoc struct {
	Projects []exportEntry `yaml:"projects"`
}

type exportEntry struct {
	Name          string     `yaml:"name"`
	Path          string     `yaml:"path"`
	LastIndexedAt *time.Time `yaml:"last_indexed_at,omitempty"`
	FileCount     int        `yaml:"file_count"`
	ChunkCount    int        `yaml:"chunk_count"`
}

// ExportYAML renders the registry as YAML, the alternate `projects export
// --format yaml` output named in SPEC_FULL.md's domain stack (JSON remains
// the primary, authoritative on-disk format).
func (m *Manager) ExportYAML() ([]byte, error) {
	projects, err := m.List()
	if err != nil {
		return nil, err
	}

	doc := exportDoc{Projects: make([]exportEntry, 0, len(projects))}
	for _, p := range projects {
		doc.Projects = append(doc.Projects, exportEntry{
			Name:          p.Name,
			Path:          p.Entry.Path,
			LastIndexedAt: p.Entry.LastIndexedAt,
			FileCount:     p.Entry.IndexStats.FileCount,
			ChunkCount:    p.Entry.IndexStats.ChunkCount,
		})
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, boogererrors.IO("marshal registry export", err)
	}
	return out, nil
}
