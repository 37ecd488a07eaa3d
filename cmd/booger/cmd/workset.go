package cmd

import (
	"github.com/spf13/cobra"

	boogercontext "github.com/CryptArtificer/booger/internal/context"
)

func newFocusCmd() *cobra.Command {
	var (
		sessionID string
		root      string
	)

	cmd := &cobra.Command{
		Use:   "focus <path...>",
		Short: "Mark paths as focused for a session, boosting their search rank",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolvedRoot, err := resolveRoot(root)
			if err != nil {
				return printError(cmd, err)
			}
			cfg, err := loadConfig(resolvedRoot)
			if err != nil {
				return printError(cmd, err)
			}
			if err := boogercontext.Focus(resolvedRoot, cfg, args, sessionID); err != nil {
				return printError(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID to scope focus to")
	addRootFlag(cmd, &root)
	return cmd
}

func newVisitCmd() *cobra.Command {
	var (
		sessionID string
		root      string
	)

	cmd := &cobra.Command{
		Use:   "visit <path...>",
		Short: "Mark paths as visited for a session, penalizing their search rank",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolvedRoot, err := resolveRoot(root)
			if err != nil {
				return printError(cmd, err)
			}
			cfg, err := loadConfig(resolvedRoot)
			if err != nil {
				return printError(cmd, err)
			}
			if err := boogercontext.Visit(resolvedRoot, cfg, args, sessionID); err != nil {
				return printError(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID to scope this visit to")
	addRootFlag(cmd, &root)
	return cmd
}
