package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/CryptArtificer/booger/internal/mcp"
)

func newServeCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio, exposing every operation as a tool",
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
			mgr, err := defaultRegistryManager()
			if err != nil {
				return printError(cmd, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := mcp.NewServer(resolvedRoot, cfg, mgr)
			if err := server.Serve(ctx); err != nil {
				return printError(cmd, err)
			}
			return nil
		},
	}

	addRootFlag(cmd, &root)
	return cmd
}
