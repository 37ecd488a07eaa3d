package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	boogercontext "github.com/CryptArtificer/booger/internal/context"
)

func newAnnotateCmd() *cobra.Command {
	var (
		sessionID string
		ttl       int64
		root      string
	)

	cmd := &cobra.Command{
		Use:   "annotate <target> <note>",
		Short: "Record a note against a file, symbol, or line range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolvedRoot, err := resolveRoot(root)
			if err != nil {
				return printError(cmd, err)
			}
			cfg, err := loadConfig(resolvedRoot)
			if err != nil {
				return printError(cmd, err)
			}

			id, err := boogercontext.Annotate(resolvedRoot, cfg, args[0], args[1], sessionID, ttl)
			if err != nil {
				return printError(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "annotation id=%d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID to scope this annotation to (empty = global)")
	cmd.Flags().Int64Var(&ttl, "ttl", 0, "Expiry in seconds (0 = no expiry)")
	addRootFlag(cmd, &root)
	return cmd
}

func newForgetCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "forget <id>",
		Short: "Remove one annotation by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolvedRoot, err := resolveRoot(root)
			if err != nil {
				return printError(cmd, err)
			}
			cfg, err := loadConfig(resolvedRoot)
			if err != nil {
				return printError(cmd, err)
			}

			var id int64
			if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
				return printError(cmd, fmt.Errorf("invalid annotation id %q", args[0]))
			}
			if err := boogercontext.Forget(resolvedRoot, cfg, id); err != nil {
				return printError(cmd, err)
			}
			return nil
		},
	}

	addRootFlag(cmd, &root)
	return cmd
}
