package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CryptArtificer/booger/internal/git"
)

func newChangelogCmd() *cobra.Command {
	var (
		staged bool
		root   string
	)

	cmd := &cobra.Command{
		Use:   "changelog [base-ref]",
		Short: "Render a markdown changelog from the structural diff",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			diff, err := resolveDiff(root, staged, args)
			if err != nil {
				return printError(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), git.Changelog(diff))
			return nil
		},
	}

	cmd.Flags().BoolVar(&staged, "staged", false, "Render from the staged (or unstaged, as a fallback) diff instead of a base ref")
	addRootFlag(cmd, &root)
	return cmd
}
