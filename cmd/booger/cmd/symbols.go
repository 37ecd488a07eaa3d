package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CryptArtificer/booger/internal/search"
)

func newSymbolsCmd() *cobra.Command {
	var (
		pathPrefix string
		kind       string
		jsonOutput bool
		root       string
	)

	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "List every structural symbol (non-raw chunk) in the index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolvedRoot, err := resolveRoot(root)
			if err != nil {
				return printError(cmd, err)
			}
			cfg, err := loadConfig(resolvedRoot)
			if err != nil {
				return printError(cmd, err)
			}

			symbols, err := search.ListSymbols(resolvedRoot, cfg, pathPrefix, kind)
			if err != nil {
				return printError(cmd, err)
			}

			if jsonOutput {
				return encodeJSON(cmd.OutOrStdout(), symbols)
			}
			out := cmd.OutOrStdout()
			for _, s := range symbols {
				fmt.Fprintf(out, "%s:%d\t%s\t%s\n", s.FilePath, s.StartLine, s.Kind, s.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pathPrefix, "path", "p", "", "Filter by path prefix")
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Filter by chunk kind")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	addRootFlag(cmd, &root)
	return cmd
}
