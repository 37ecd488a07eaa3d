package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/CryptArtificer/booger/internal/config"
	boogererrors "github.com/CryptArtificer/booger/internal/errors"
	"github.com/CryptArtificer/booger/internal/logging"
	"github.com/CryptArtificer/booger/internal/registry"
)

// rootMarkers are the directory entries findProjectRoot looks for while
// walking upward from a starting path, in priority order: an existing
// booger storage directory wins over a bare VCS root so a subdirectory of
// an already-indexed project resolves to the indexed root rather than a
// higher VCS boundary.
var rootMarkers = []string{config.DefaultStorageDirName, ".git"}

// findProjectRoot walks upward from start looking for a rootMarkers entry,
// falling back to start itself (resolved to an absolute path) when none is
// found — an unindexed, non-VCS directory is still a valid root to index.
func findProjectRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", boogererrors.IO("resolve start path", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", boogererrors.IO("access path", err)
	}
	dir := abs
	if !info.IsDir() {
		dir = filepath.Dir(abs)
	}

	for {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		dir = parent
	}
}

// loadConfig resolves root's storage directory and loads its config.toml,
// applying documented defaults when absent.
func loadConfig(root string) (config.Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return config.Config{}, boogererrors.IO("resolve project root", err)
	}
	return config.Load(config.Default().StorageDir(absRoot))
}

// setupCLILogging wires the engine's rotating file logger for a single CLI
// invocation, matching the teacher's file-only-by-default CLI logging
// practice: stdout/stderr stay reserved for command output.
func setupCLILogging() func() {
	cfg := logging.DefaultConfig()
	cfg.WriteToStderr = false
	logger, cleanup, err := logging.Setup(cfg)
	if err != nil {
		return func() {}
	}
	slog.SetDefault(logger)
	return cleanup
}

// defaultRegistryManager opens the cross-project registry at its default
// path ($HOME/.booger/projects.json).
func defaultRegistryManager() (*registry.Manager, error) {
	path, err := registry.DefaultPath()
	if err != nil {
		return nil, err
	}
	return registry.NewManager(path), nil
}

// printError reports err on cmd's error stream in the shared `error [KIND]:
// message` shape every operation uses, and returns it unchanged so RunE can
// propagate the non-zero exit.
func printError(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), boogererrors.FormatForCLI(err))
	return err
}

// encodeJSON writes v to w as indented JSON, the output shared by every
// command's --json flag (--format json on the search commands).
func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// resolveRootArg resolves the optional positional [path] argument every
// project-scoped command accepts, defaulting to the current directory and
// then to the nearest enclosing project root.
func resolveRootArg(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	return findProjectRoot(path)
}

// addRootFlag registers the --root override every query command accepts,
// for pointing at a project without cd-ing into it.
func addRootFlag(cmd *cobra.Command, root *string) {
	cmd.Flags().StringVar(root, "root", "", "Project root (defaults to the nearest enclosing index)")
}

// resolveRoot resolves an explicit --root flag, falling back to searching
// upward from the current directory.
func resolveRoot(root string) (string, error) {
	if root != "" {
		return findProjectRoot(root)
	}
	return findProjectRoot(".")
}

// noEmbedderConfiguredErr reports the embed.backend.type = "none" case for
// commands that require a real embedding backend.
func noEmbedderConfiguredErr() error {
	return boogererrors.InvalidQuery("no embedding backend configured (set [embed.backend] in config.toml)", nil)
}
