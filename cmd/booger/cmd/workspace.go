package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/CryptArtificer/booger/internal/config"
	"github.com/CryptArtificer/booger/internal/search"
)

func newWorkspaceSearchCmd() *cobra.Command {
	var flags queryFlags

	cmd := &cobra.Command{
		Use:   "workspace-search <query>",
		Short: "Fan keyword search out across every registered project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer setupCLILogging()()

			query := strings.Join(args, " ")
			mgr, err := defaultRegistryManager()
			if err != nil {
				return printError(cmd, err)
			}
			registered, err := mgr.List()
			if err != nil {
				return printError(cmd, err)
			}

			projects := make([]search.Project, len(registered))
			for i, p := range registered {
				projects[i] = search.Project{Name: p.Name, Root: p.Entry.Path}
			}

			results, err := search.Workspace(cmd.Context(), projects, config.Default(), flags.toQuery(query))
			if err != nil {
				return printError(cmd, err)
			}
			return renderResults(cmd, query, results, flags.format)
		},
	}
	addQueryFlags(cmd, &flags)
	return cmd
}
