package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/CryptArtificer/booger/internal/embed"
	"github.com/CryptArtificer/booger/internal/search"
)

func newHybridSearchCmd() *cobra.Command {
	var flags queryFlags
	var root string
	var alpha float64

	cmd := &cobra.Command{
		Use:   "hybrid-search <query>",
		Short: "Blend keyword and semantic search by max-normalization and a weighted blend",
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

			weight := alpha
			if !cmd.Flags().Changed("alpha") && cfg.Search.HybridAlpha > 0 {
				weight = cfg.Search.HybridAlpha
			}

			embedder, err := embed.NewFromConfig(cmd.Context(), cfg.Embed.Backend)
			if err != nil {
				return printError(cmd, err)
			}

			results, err := search.Hybrid(cmd.Context(), resolvedRoot, cfg, embedder, flags.toQuery(query), weight)
			if err != nil {
				return printError(cmd, err)
			}
			return renderResults(cmd, query, results, flags.format)
		},
	}
	addQueryFlags(cmd, &flags)
	addRootFlag(cmd, &root)
	cmd.Flags().Float64Var(&alpha, "alpha", 0.7, "Keyword/semantic blend weight (1=pure keyword, 0=pure semantic)")
	return cmd
}
