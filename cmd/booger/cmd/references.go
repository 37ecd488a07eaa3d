package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CryptArtificer/booger/internal/search"
)

func newReferencesCmd() *cobra.Command {
	var (
		pathPrefix string
		jsonOutput bool
		root       string
	)

	cmd := &cobra.Command{
		Use:   "references <symbol>",
		Short: "Find every definition and usage of a symbol",
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

			refs, err := search.References(resolvedRoot, cfg, args[0], pathPrefix)
			if err != nil {
				return printError(cmd, err)
			}

			if jsonOutput {
				return encodeJSON(cmd.OutOrStdout(), refs)
			}
			out := cmd.OutOrStdout()
			for _, r := range refs {
				fmt.Fprintf(out, "%s:%d\t%s\t%s\n", r.FilePath, r.Line, r.Kind, r.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pathPrefix, "path", "p", "", "Filter by path prefix")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	addRootFlag(cmd, &root)
	return cmd
}
