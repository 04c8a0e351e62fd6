package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rumble",
		Short:         "RUMBLE fleet client: sign in, watch and command your trash collecting robots",
		Long:          "rumble signs you in to a RUMBLE fleet server, keeps the session between runs, lists owned and shared robots, shows dashboard statistics and sends start/stop/charge/maintenance commands.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().BoolVar(&app.demoShared, "demo-shared", false, "Use the built-in demo list for robots shared with you")

	rootCmd.AddCommand(
		newVersionCmd(),
		newAuthCmd(app),
		newAccountCmd(app),
		newRobotsCmd(app),
		newStatsCmd(app),
		newDashboardCmd(app),
		newDevServerCmd(app),
	)

	return rootCmd
}
