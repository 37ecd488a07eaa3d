package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	boogercontext "github.com/CryptArtificer/booger/internal/context"
)

func newAnnotationsCmd() *cobra.Command {
	var (
		target     string
		sessionID  string
		jsonOutput bool
		root       string
	)

	cmd := &cobra.Command{
		Use:   "annotations",
		Short: "List annotations visible to a session",
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

			annotations, err := boogercontext.Annotations(resolvedRoot, cfg, target, sessionID)
			if err != nil {
				return printError(cmd, err)
			}

			if jsonOutput {
				return encodeJSON(cmd.OutOrStdout(), annotations)
			}
			out := cmd.OutOrStdout()
			for _, a := range annotations {
				fmt.Fprintf(out, "[%d] %s: %s\n", a.ID, a.Target, a.Note)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Filter by exact target")
	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID scoping visibility")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	addRootFlag(cmd, &root)
	return cmd
}
