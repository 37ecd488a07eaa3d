package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CryptArtificer/booger/internal/search"
)

func newGrepCmd() *cobra.Command {
	var (
		pathPrefix   string
		kind         string
		limit        int
		contextLines int
		jsonOutput   bool
		root         string
	)

	cmd := &cobra.Command{
		Use:   "grep <pattern>",
		Short: "Regex search over every indexed chunk's content",
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

			result, err := search.Grep(resolvedRoot, cfg, args[0], pathPrefix, kind, limit, contextLines)
			if err != nil {
				return printError(cmd, err)
			}

			if jsonOutput {
				return encodeJSON(cmd.OutOrStdout(), result)
			}

			out := cmd.OutOrStdout()
			for _, m := range result.Matches {
				for _, pre := range m.ContextPre {
					fmt.Fprintf(out, "%s-%s\n", m.FilePath, pre)
				}
				fmt.Fprintf(out, "%s:%d:%s\n", m.FilePath, m.Line, m.Text)
				for _, post := range m.ContextPost {
					fmt.Fprintf(out, "%s-%s\n", m.FilePath, post)
				}
			}
			fmt.Fprintf(out, "\n%d matches across %d files\n", len(result.Matches), result.MatchingFiles)
			return nil
		},
	}

	cmd.Flags().StringVarP(&pathPrefix, "path", "p", "", "Filter by path prefix")
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Filter by chunk kind")
	cmd.Flags().IntVarP(&limit, "limit", "n", 100, "Maximum number of matches")
	cmd.Flags().IntVar(&contextLines, "context", 0, "Lines of context before/after each match")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	addRootFlag(cmd, &root)
	return cmd
}
