package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/rumble-cli/internal/domain"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the signed in account",
	}

	cmd.AddCommand(
		newAccountUpdateCmd(app),
		newAccountDeleteCmd(app),
	)

	return cmd
}

func newAccountUpdateCmd(app *app) *cobra.Command {
	var currentPassword string
	var update domain.UserUpdate

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change name, email, username or password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := restoreSession(cmd.Context(), app); err != nil {
				return err
			}

			user, err := app.sessions.UpdateProfile(cmd.Context(), currentPassword, update)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Profile updated: %s <%s> (%s)\n", user.Name, user.Email, user.Username)
			return err
		},
	}

	cmd.Flags().StringVar(&currentPassword, "current-password", "", "Current password")
	cmd.Flags().StringVar(&update.Name, "name", "", "New full name")
	cmd.Flags().StringVar(&update.Email, "email", "", "New email")
	cmd.Flags().StringVar(&update.Username, "username", "", "New username")
	cmd.Flags().StringVar(&update.Password, "new-password", "", "New password")
	_ = cmd.MarkFlagRequired("current-password")

	return cmd
}

func newAccountDeleteCmd(app *app) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the signed in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errors.New("account deletion is permanent; pass --yes to confirm")
			}
			if _, err := restoreSession(cmd.Context(), app); err != nil {
				return err
			}

			if err := app.sessions.DeleteAccount(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Account deleted.")
			return err
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm deletion")

	return cmd
}
