package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CryptArtificer/booger/internal/git"
)

func newBranchDiffCmd() *cobra.Command {
	var (
		staged     bool
		jsonOutput bool
		root       string
	)

	cmd := &cobra.Command{
		Use:   "branch-diff [base-ref]",
		Short: "Diff structural symbols between the worktree and a base ref",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolvedRoot, err := resolveRoot(root)
			if err != nil {
				return printError(cmd, err)
			}

			var diff *git.BranchDiff
			if staged {
				diff, err = git.Staged(resolvedRoot)
			} else {
				baseRef := "main"
				if len(args) > 0 {
					baseRef = args[0]
				}
				diff, err = git.Branch(resolvedRoot, baseRef)
			}
			if err != nil {
				return printError(cmd, err)
			}

			if jsonOutput {
				return encodeJSON(cmd.OutOrStdout(), diff)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "diff vs %s: %d file(s), +%d ~%d -%d symbols\n",
				diff.BaseRef, len(diff.Files), diff.Summary.SymbolsAdded, diff.Summary.SymbolsModified, diff.Summary.SymbolsRemoved)
			for _, f := range diff.Files {
				fmt.Fprintf(out, "[%c] %s\n", statusGlyph(f.Status), f.Path)
				for _, s := range f.Added {
					fmt.Fprintf(out, "  + %s %s\n", s.Kind, s.Name)
				}
				for _, s := range f.Modified {
					fmt.Fprintf(out, "  ~ %s %s\n", s.Kind, s.Name)
				}
				for _, s := range f.Removed {
					fmt.Fprintf(out, "  - %s %s\n", s.Kind, s.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&staged, "staged", false, "Diff the index (or unstaged worktree, as a fallback) against HEAD")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	addRootFlag(cmd, &root)
	return cmd
}

func statusGlyph(s git.FileStatus) rune {
	switch s {
	case git.FileAdded:
		return '+'
	case git.FileDeleted:
		return '-'
	default:
		return '~'
	}
}
