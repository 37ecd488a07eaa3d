package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/CryptArtificer/booger/internal/index"
)

// watchQuietPeriod is how long the watcher waits after the last observed
// filesystem event before triggering a re-index, so a burst of saves (an
// editor writing several files, a git checkout) coalesces into one run.
const watchQuietPeriod = 500 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Watch a project for filesystem changes and re-index after a quiet period",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer setupCLILogging()()

			resolvedRoot, err := resolveRootArg(args)
			if err != nil {
				return printError(cmd, err)
			}
			if root != "" {
				if resolvedRoot, err = findProjectRoot(root); err != nil {
					return printError(cmd, err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "watching %s (ctrl-c to stop)\n", resolvedRoot)
			return runWatch(ctx, cmd, resolvedRoot)
		},
	}

	addRootFlag(cmd, &root)
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, root string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addWatchDirsRecursive(watcher, root); err != nil {
		return err
	}

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(watchQuietPeriod)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch_error", slog.String("error", werr.Error()))
		case <-timer.C:
			cfg, err := loadConfig(root)
			if err != nil {
				slog.Warn("watch_config_load_failed", slog.String("error", err.Error()))
				continue
			}
			result, err := index.Run(ctx, root, cfg)
			if err != nil {
				slog.Warn("watch_reindex_failed", slog.String("error", err.Error()))
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reindexed: scanned=%d indexed=%d chunks_created=%d\n",
				result.Scanned, result.Indexed, result.ChunksCreated)
		}
	}
}

func addWatchDirsRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if base != "." && base[0] == '.' && path != root {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
