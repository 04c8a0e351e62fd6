package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/rumble-cli/internal/adapters/api"
)

func newStatsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show fleet statistics for your robots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := restoreSession(cmd.Context(), app)
			if err != nil {
				return err
			}

			stats, err := app.gateway().DashboardStats(cmd.Context(), session.Caller())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), api.StatsFromDomain(stats))
			}

			rendered, err := app.renderer.stats(stats)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
