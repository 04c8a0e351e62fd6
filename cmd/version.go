package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/rumble-cli/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "rumble %s\n", version.Version)
			return err
		},
	}
}
