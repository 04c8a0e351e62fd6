package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/rumble-cli/internal/adapters/api"
	"github.com/bnema/rumble-cli/internal/adapters/render/dashboard"
	"github.com/bnema/rumble-cli/internal/domain"
)

type dashboardJSON struct {
	User      api.UserJSON     `json:"user"`
	Owned     []api.RobotJSON  `json:"owned"`
	Shared    []api.RobotJSON  `json:"shared"`
	Stats     api.StatsJSON    `json:"stats"`
	MapCenter api.LocationJSON `json:"mapCenter"`
}

func newDashboardCmd(app *app) *cobra.Command {
	var selected string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show your robots, robots shared with you and fleet statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := restoreSession(cmd.Context(), app)
			if err != nil {
				return err
			}

			board, err := app.gateway().Dashboard(cmd.Context(), session.Caller())
			if err != nil {
				return err
			}

			if asJSON {
				center := board.MapCenter
				if selected != "" {
					center = domain.MapCenter(append(append([]domain.Robot{}, board.Owned...), board.Shared...), domain.RobotID(selected))
				}
				return writeJSON(cmd.OutOrStdout(), dashboardJSON{
					User:      api.UserFromDomain(*session.User),
					Owned:     robotPayloads(board.Owned),
					Shared:    robotPayloads(board.Shared),
					Stats:     api.StatsFromDomain(board.Stats),
					MapCenter: api.LocationJSON{Lat: center.Lat, Lng: center.Lng},
				})
			}

			rendered, err := app.renderer.dashboard(session.User, board, dashboard.RenderOptions{
				Now:      app.now(),
				Selected: domain.RobotID(selected),
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&selected, "select", "", "Centre the map on this robot")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
