package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CryptArtificer/booger/internal/embed"
)

func newEmbedCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Auto-index, then embed every chunk lacking a vector for the configured model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer setupCLILogging()()

			resolvedRoot, err := resolveRoot(root)
			if err != nil {
				return printError(cmd, err)
			}
			cfg, err := loadConfig(resolvedRoot)
			if err != nil {
				return printError(cmd, err)
			}

			embedder, err := embed.NewFromConfig(cmd.Context(), cfg.Embed.Backend)
			if err != nil {
				return printError(cmd, err)
			}
			if embedder == nil {
				return printError(cmd, noEmbedderConfiguredErr())
			}

			result, err := embed.Produce(cmd.Context(), resolvedRoot, cfg, embedder)
			if err != nil {
				return printError(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "total_chunks=%d embedded_after=%d newly_embedded=%d\n",
				result.TotalChunks, result.EmbeddedAfter, result.NewlyEmbedded)
			return nil
		},
	}

	addRootFlag(cmd, &root)
	return cmd
}
