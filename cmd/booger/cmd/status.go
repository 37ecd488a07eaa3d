package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CryptArtificer/booger/internal/store"
)

// statusInfo is status's JSON/text rendering shape.
type statusInfo struct {
	Root          string          `json:"root"`
	FileCount     int             `json:"file_count"`
	ChunkCount    int             `json:"chunk_count"`
	EmbeddedCount int             `json:"embedded_count"`
	DBSizeBytes   int64           `json:"db_size_bytes"`
	Kinds         []store.KindCount `json:"kinds,omitempty"`
}

func newStatusCmd() *cobra.Command {
	var jsonOutput bool
	var root string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report index health: file/chunk/embedding counts and storage size",
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

			st, err := store.OpenIfExists(cfg.StorageDir(resolvedRoot))
			if err != nil {
				return printError(cmd, err)
			}
			if st == nil {
				return printError(cmd, fmt.Errorf("no index found in %s; run 'booger index' first", resolvedRoot))
			}
			defer st.Close()

			stats, err := st.Stats()
			if err != nil {
				return printError(cmd, err)
			}
			kinds, err := st.KindStats()
			if err != nil {
				return printError(cmd, err)
			}

			info := statusInfo{
				Root:          resolvedRoot,
				FileCount:     stats.FileCount,
				ChunkCount:    stats.ChunkCount,
				EmbeddedCount: stats.EmbeddedCount,
				DBSizeBytes:   stats.DBSizeBytes,
				Kinds:         kinds,
			}

			if jsonOutput {
				return encodeJSON(cmd.OutOrStdout(), info)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "root: %s\n", info.Root)
			fmt.Fprintf(out, "files: %d  chunks: %d  embedded: %d  db size: %d bytes\n",
				info.FileCount, info.ChunkCount, info.EmbeddedCount, info.DBSizeBytes)
			if len(info.Kinds) > 0 {
				fmt.Fprintln(out, "chunk kinds:")
				for _, k := range info.Kinds {
					fmt.Fprintf(out, "  %-12s %d\n", k.Kind, k.Count)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	addRootFlag(cmd, &root)
	return cmd
}
