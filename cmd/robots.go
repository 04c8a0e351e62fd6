package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bnema/rumble-cli/internal/adapters/api"
	"github.com/bnema/rumble-cli/internal/adapters/render/dashboard"
	"github.com/bnema/rumble-cli/internal/domain"
)

func newRobotsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "robots",
		Aliases: []string{"robot"},
		Short:   "List, inspect and command robots",
	}

	cmd.AddCommand(
		newRobotsListCmd(app),
		newRobotsShowCmd(app),
		newRobotsCommandCmd(app),
	)

	return cmd
}

func newRobotsListCmd(app *app) *cobra.Command {
	var sharedOnly bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List robots you own, or robots shared with you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := restoreSession(cmd.Context(), app)
			if err != nil {
				return err
			}

			var robots []domain.Robot
			if sharedOnly {
				robots, err = app.gateway().ListSharedRobots(cmd.Context(), session.Caller())
			} else {
				robots, err = app.gateway().ListOwnedRobots(cmd.Context(), session.Caller())
			}
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), robotPayloads(robots))
			}
			if len(robots) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No robots.")
				return err
			}

			rendered, err := app.renderer.robots(robots, dashboard.RenderOptions{Now: app.now()})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&sharedOnly, "shared", false, "List robots shared with you instead of your own")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newRobotsShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <robot-id>",
		Short: "Show one robot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := restoreSession(cmd.Context(), app)
			if err != nil {
				return err
			}

			robot, err := app.gateway().GetRobot(cmd.Context(), session.Caller(), domain.RobotID(args[0]))
			if err != nil {
				return err
			}

			return writeRobot(cmd.OutOrStdout(), app, robot, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newRobotsCommandCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:       "command <robot-id> <start|stop|charge|maintenance>",
		Short:     "Send a command to one of your robots",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"start", "stop", "charge", "maintenance"},
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := restoreSession(cmd.Context(), app)
			if err != nil {
				return err
			}

			id := domain.RobotID(args[0])
			send := func(ctx context.Context) (domain.Robot, error) {
				return app.gateway().SendCommand(ctx, session.Caller(), id, args[1])
			}

			var robot domain.Robot
			if asJSON {
				robot, err = send(cmd.Context())
			} else {
				robot, err = runCommandSpinner(cmd.Context(), cmd.ErrOrStderr(), id, args[1], app.now, send)
			}
			if err != nil {
				return err
			}

			return writeRobot(cmd.OutOrStdout(), app, robot, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func writeRobot(w io.Writer, app *app, robot domain.Robot, asJSON bool) error {
	if asJSON {
		return writeJSON(w, api.RobotFromDomain(robot))
	}

	rendered, err := app.renderer.robot(robot, dashboard.RenderOptions{Now: app.now()})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, rendered)
	return err
}

func robotPayloads(robots []domain.Robot) []api.RobotJSON {
	payload := make([]api.RobotJSON, 0, len(robots))
	for _, robot := range robots {
		payload = append(payload, api.RobotFromDomain(robot))
	}
	return payload
}

func writeJSON(w io.Writer, payload any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
