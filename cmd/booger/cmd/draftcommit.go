package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CryptArtificer/booger/internal/git"
)

func newDraftCommitCmd() *cobra.Command {
	var (
		staged bool
		root   string
	)

	cmd := &cobra.Command{
		Use:   "draft-commit [base-ref]",
		Short: "Draft a commit message from the structural diff",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			diff, err := resolveDiff(root, staged, args)
			if err != nil {
				return printError(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), git.DraftCommitMessage(diff))
			return nil
		},
	}

	cmd.Flags().BoolVar(&staged, "staged", false, "Draft from the staged (or unstaged, as a fallback) diff instead of a base ref")
	addRootFlag(cmd, &root)
	return cmd
}

func resolveDiff(root string, staged bool, args []string) (*git.BranchDiff, error) {
	resolvedRoot, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}
	if staged {
		return git.Staged(resolvedRoot)
	}
	baseRef := "main"
	if len(args) > 0 {
		baseRef = args[0]
	}
	return git.Branch(resolvedRoot, baseRef)
}
