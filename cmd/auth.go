package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bnema/rumble-cli/internal/application"
	"github.com/bnema/rumble-cli/internal/domain"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in, sign up and manage the stored session",
	}

	cmd.AddCommand(
		newAuthLoginCmd(app),
		newAuthSignupCmd(app),
		newAuthLogoutCmd(app),
		newAuthClearCmd(app),
		newAuthWhoamiCmd(app),
		newAuthResetPasswordCmd(app),
	)

	return cmd
}

func newAuthLoginCmd(app *app) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := app.sessions.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			return writeSignedIn(cmd.OutOrStdout(), user)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newAuthSignupCmd(app *app) *cobra.Command {
	var registration domain.Registration
	var robotID string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account, pair it with a robot and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pairingID, err := domain.ParseRobotPairingID(robotID)
			if err != nil {
				return err
			}
			registration.RobotID = pairingID
			if !cmd.Flags().Changed("confirm-password") {
				registration.ConfirmPassword = registration.Password
			}

			user, err := app.sessions.Signup(cmd.Context(), registration)
			if err != nil {
				return err
			}

			return writeSignedIn(cmd.OutOrStdout(), user)
		},
	}

	cmd.Flags().StringVar(&registration.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&registration.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&registration.Username, "username", "", "Username")
	cmd.Flags().StringVar(&registration.Password, "password", "", "Account password")
	cmd.Flags().StringVar(&registration.ConfirmPassword, "confirm-password", "", "Repeat the password (default: same as --password)")
	cmd.Flags().StringVar(&robotID, "robot-id", "", "Six digit robot pairing id (default: generated)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newAuthLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.sessions.Logout(cmd.Context())

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return err
		},
	}
}

func newAuthClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove stored session data without contacting the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.sessions.ClearAuth(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Stored session cleared.")
			return err
		},
	}
}

func newAuthWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := restoreSession(cmd.Context(), app)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			user := session.User
			_, _ = fmt.Fprintf(out, "%s <%s>\n", user.Name, user.Email)
			_, _ = fmt.Fprintf(out, "id: %s\n", user.ID)
			_, _ = fmt.Fprintf(out, "username: %s\n", user.Username)
			_, _ = fmt.Fprintf(out, "robot id: %06d\n", user.RobotID)
			if !session.SignedInAt.IsZero() {
				_, _ = fmt.Fprintf(out, "signed in: %s\n", session.SignedInAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newAuthResetPasswordCmd(app *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Request a password reset email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.sessions.RequestPasswordReset(cmd.Context(), email); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "If %s is registered, a reset link is on its way.\n", email)
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

// restoreSession loads the stored session and fails when nobody is signed in.
func restoreSession(ctx context.Context, app *app) (domain.Session, error) {
	session, err := app.sessions.Restore(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	if !session.Active() {
		return domain.Session{}, fmt.Errorf("%w: run `rumble auth login` first", application.ErrNotSignedIn)
	}
	return session, nil
}

func writeSignedIn(w io.Writer, user domain.User) error {
	_, err := fmt.Fprintf(w, "Signed in as %s <%s>\n", user.Name, user.Email)
	return err
}
