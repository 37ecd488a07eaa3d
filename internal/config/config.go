// Package config loads the engine's per-project TOML configuration
// (config.toml under the storage directory) and supplies the defaults that
// apply when it, or any section of it, is absent.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file's name within the storage directory.
const FileName = "config.toml"

// DefaultStorageDirName is the project-relative storage directory used when
// storage.path is unset.
const DefaultStorageDirName = ".booger"

// Config is the full schema. Every field has a zero value that Load
// replaces with its documented default.
type Config struct {
	Storage   StorageConfig   `toml:"storage"`
	Resources ResourcesConfig `toml:"resources"`
	Embed     EmbedConfig     `toml:"embed"`
	Search    SearchConfig    `toml:"search"`
}

// StorageConfig controls where and how large the index is allowed to grow.
type StorageConfig struct {
	Path         string `toml:"path"`           // optional override for the storage dir
	MaxSizeBytes int64  `toml:"max_size_bytes"` // 0 = unlimited
}

// ResourcesConfig bounds the engine's CPU and I/O footprint.
type ResourcesConfig struct {
	MaxThreads     int   `toml:"max_threads"`      // 0 => max(1, ncpu/2)
	MaxMemoryBytes int64 `toml:"max_memory_bytes"` // hint only
	BatchSize      int   `toml:"batch_size"`       // files per transaction
}

// EmbedConfig configures the embedding producer (C6).
type EmbedConfig struct {
	MaxConcurrent int           `toml:"max_concurrent"`
	Backend       EmbedBackend  `toml:"backend"`
}

// EmbedBackend selects and configures one embedding HTTP backend.
type EmbedBackend struct {
	Type  string `toml:"type"` // "ollama" | "openai" | "none"
	Model string `toml:"model"`
	URL   string `toml:"url"`
}

// SearchConfig tunes the keyword/semantic/hybrid rerank stages. This
// section is not in the distilled schema; it supplements it with knobs the
// re-rank algorithm otherwise hardcodes.
type SearchConfig struct {
	HybridAlpha        float64 `toml:"hybrid_alpha"`         // default blend weight for hybrid-search
	StructuralBoost    float64 `toml:"structural_boost"`     // +boost for non-raw/module chunks
	OversizedPenaltyCap float64 `toml:"oversized_penalty_cap"`
	FocusBoost         float64 `toml:"focus_boost"`
	VisitedPenalty     float64 `toml:"visited_penalty"`
	AnnotationBoost    float64 `toml:"annotation_boost"`
}

// Default returns the documented defaults for every section.
func Default() Config {
	return Config{
		Storage: StorageConfig{MaxSizeBytes: 0},
		Resources: ResourcesConfig{
			MaxThreads: 0,
			BatchSize:  500,
		},
		Embed: EmbedConfig{
			MaxConcurrent: 4,
			Backend:       EmbedBackend{Type: "none"},
		},
		Search: SearchConfig{
			HybridAlpha:         0.7,
			StructuralBoost:     3.0,
			OversizedPenaltyCap: 4.0,
			FocusBoost:          5.0,
			VisitedPenalty:      3.0,
			AnnotationBoost:     2.0,
		},
	}
}

// Load reads storageDir/config.toml if present, merging it over Default().
// A missing file is not an error: the documented defaults apply.
func Load(storageDir string) (Config, error) {
	cfg := Default()
	path := filepath.Join(storageDir, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	applyZeroDefaults(&cfg)
	return cfg, nil
}

// applyZeroDefaults re-applies defaults to fields a partial TOML file left
// at their Go zero value (batch size, embed concurrency, backend type,
// hybrid alpha, and the rerank weights). max_threads is left alone, since
// 0 there means auto.
func applyZeroDefaults(cfg *Config) {
	if cfg.Resources.BatchSize == 0 {
		cfg.Resources.BatchSize = 500
	}
	if cfg.Embed.MaxConcurrent == 0 {
		cfg.Embed.MaxConcurrent = 4
	}
	if cfg.Embed.Backend.Type == "" {
		cfg.Embed.Backend.Type = "none"
	}
	if cfg.Search.HybridAlpha == 0 {
		cfg.Search.HybridAlpha = 0.7
	}
	if cfg.Search.StructuralBoost == 0 {
		cfg.Search.StructuralBoost = 3.0
	}
	if cfg.Search.OversizedPenaltyCap == 0 {
		cfg.Search.OversizedPenaltyCap = 4.0
	}
	if cfg.Search.FocusBoost == 0 {
		cfg.Search.FocusBoost = 5.0
	}
	if cfg.Search.VisitedPenalty == 0 {
		cfg.Search.VisitedPenalty = 3.0
	}
	if cfg.Search.AnnotationBoost == 0 {
		cfg.Search.AnnotationBoost = 2.0
	}
}

// ResolvedMaxThreads applies the "0 => max(1, ncpu/2)" rule.
func (c Config) ResolvedMaxThreads() int {
	if c.Resources.MaxThreads > 0 {
		return c.Resources.MaxThreads
	}
	if n := runtime.NumCPU() / 2; n > 1 {
		return n
	}
	return 1
}

// StorageDir resolves the effective storage directory for a project root,
// honoring storage.path when set.
func (c Config) StorageDir(root string) string {
	if c.Storage.Path != "" {
		if filepath.IsAbs(c.Storage.Path) {
			return c.Storage.Path
		}
		return filepath.Join(root, c.Storage.Path)
	}
	return filepath.Join(root, DefaultStorageDirName)
}
