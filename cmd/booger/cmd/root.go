package cmd

import (
	"github.com/spf13/cobra"

	"github.com/CryptArtificer/booger/pkg/version"
)

// NewRootCmd assembles the booger CLI: one subcommand per public operation
// in spec.md §6, plus the supplemental `watch` convenience and `projects`
// registry management.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "booger",
		Short:         "Local code-intelligence engine",
		Long:          "booger indexes a codebase and serves keyword, semantic, and hybrid search, symbol/grep/reference views, branch diffs, and session-scoped annotations — over a CLI or the MCP protocol.",
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newIndexCmd(),
		newSearchCmd(),
		newSemanticSearchCmd(),
		newHybridSearchCmd(),
		newWorkspaceSearchCmd(),
		newStatusCmd(),
		newSymbolsCmd(),
		newGrepCmd(),
		newReferencesCmd(),
		newBranchDiffCmd(),
		newDraftCommitCmd(),
		newChangelogCmd(),
		newEmbedCmd(),
		newAnnotateCmd(),
		newAnnotationsCmd(),
		newForgetCmd(),
		newFocusCmd(),
		newVisitCmd(),
		newProjectsCmd(),
		newWatchCmd(),
		newServeCmd(),
	)

	return root
}

// Execute runs the CLI, returning any error for the entry point to turn
// into a process exit code.
func Execute() error {
	return NewRootCmd().Execute()
}
