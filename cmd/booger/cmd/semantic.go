package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/CryptArtificer/booger/internal/embed"
	"github.com/CryptArtificer/booger/internal/search"
)

func newSemanticSearchCmd() *cobra.Command {
	var flags queryFlags
	var root string

	cmd := &cobra.Command{
		Use:   "semantic-search <query>",
		Short: "Cosine-similarity search over embedded chunks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer setupCLILogging()()

			query := strings.Join(args, " ")
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

			results, err := search.Semantic(cmd.Context(), resolvedRoot, cfg, embedder, flags.toQuery(query))
			if err != nil {
				return printError(cmd, err)
			}
			return renderResults(cmd, query, results, flags.format)
		},
	}
	addQueryFlags(cmd, &flags)
	addRootFlag(cmd, &root)
	return cmd
}
