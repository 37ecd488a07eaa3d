package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/CryptArtificer/booger/internal/index"
	"github.com/CryptArtificer/booger/internal/registry"
)

func newIndexCmd() *cobra.Command {
	var (
		noReconcile bool
		project     string
	)

	cmd := &cobra.Command{
		Use:   "index [path]",
		Short: "Scan, chunk, and persist a project's index",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer setupCLILogging()()

			root, err := resolveRootArg(args)
			if err != nil {
				return printError(cmd, err)
			}
			cfg, err := loadConfig(root)
			if err != nil {
				return printError(cmd, err)
			}

			opts := index.DefaultOptions()
			opts.Reconcile = !noReconcile

			result, err := index.RunWithOptions(cmd.Context(), root, cfg, opts)
			if err != nil {
				return printError(cmd, err)
			}

			if project != "" {
				if mgr, mErr := defaultRegistryManager(); mErr == nil {
					_ = mgr.Add(project, root)
				}
			}
			if mgr, mErr := defaultRegistryManager(); mErr == nil {
				if entry, ok, _ := registryEntryForRoot(mgr, root); ok {
					_ = mgr.UpdateStats(entry, registry.IndexStats{
						FileCount:  result.Scanned - result.Skipped,
						ChunkCount: result.ChunksCreated,
					}, time.Now().UTC())
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "scanned=%d indexed=%d unchanged=%d skipped=%d chunks_created=%d reconciled=%d\n",
				result.Scanned, result.Indexed, result.Unchanged, result.Skipped, result.ChunksCreated, result.Reconciled)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noReconcile, "no-reconcile", false, "Skip the deletion-on-disappearance pass after the walk")
	cmd.Flags().StringVar(&project, "register-as", "", "Register this root under a project name in the cross-project registry")

	return cmd
}

// registryEntryForRoot finds the registered project name (if any) whose
// path matches root, so `index` can refresh that project's read-through
// stats cache without requiring --register-as on every run.
func registryEntryForRoot(mgr interface {
	List() ([]registry.Project, error)
}, root string) (string, bool, error) {
	projects, err := mgr.List()
	if err != nil {
		return "", false, err
	}
	for _, p := range projects {
		if p.Entry.Path == root {
			return p.Name, true, nil
		}
	}
	return "", false, nil
}
