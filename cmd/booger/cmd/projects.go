package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage the cross-project registry ($HOME/.booger/projects.json)",
	}
	cmd.AddCommand(
		newProjectsAddCmd(),
		newProjectsRemoveCmd(),
		newProjectsListCmd(),
		newProjectsExportCmd(),
	)
	return cmd
}

func newProjectsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <path>",
		Short: "Register a project under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := defaultRegistryManager()
			if err != nil {
				return printError(cmd, err)
			}
			if err := mgr.Add(args[0], args[1]); err != nil {
				return printError(cmd, err)
			}
			return nil
		},
	}
}

func newProjectsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Unregister a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := defaultRegistryManager()
			if err != nil {
				return printError(cmd, err)
			}
			if err := mgr.Remove(args[0]); err != nil {
				return printError(cmd, err)
			}
			return nil
		},
	}
}

func newProjectsListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := defaultRegistryManager()
			if err != nil {
				return printError(cmd, err)
			}
			projects, err := mgr.List()
			if err != nil {
				return printError(cmd, err)
			}

			if jsonOutput {
				return encodeJSON(cmd.OutOrStdout(), projects)
			}
			out := cmd.OutOrStdout()
			for _, p := range projects {
				fmt.Fprintf(out, "%s\t%s\t%d files\t%d chunks\n", p.Name, p.Entry.Path, p.Entry.IndexStats.FileCount, p.Entry.IndexStats.ChunkCount)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newProjectsExportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the registry in an alternate format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := defaultRegistryManager()
			if err != nil {
				return printError(cmd, err)
			}
			switch format {
			case "yaml":
				out, err := mgr.ExportYAML()
				if err != nil {
					return printError(cmd, err)
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			case "json", "":
				projects, err := mgr.List()
				if err != nil {
					return printError(cmd, err)
				}
				return encodeJSON(cmd.OutOrStdout(), projects)
			default:
				return printError(cmd, fmt.Errorf("unknown export format %q (want json or yaml)", format))
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Export format: json, yaml")
	return cmd
}
