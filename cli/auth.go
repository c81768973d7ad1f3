package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the backend and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := bufio.NewScanner(app.In)
			if username == "" {
				v, ok := prompt(sc, app.Out, "Username: ")
				if !ok || v == "" {
					return fmt.Errorf("username is required")
				}
				username = v
			}

			password, err := readPassword(sc, app.Out, "Password: ")
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			if password == "" {
				return fmt.Errorf("password cannot be empty")
			}

			// The backend's own message (invalid credentials, unverified
			// email) is the answer here; surface() is for calls made with an
			// established session and would misread this 401 as expiry.
			result, err := app.Session.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if result.NeedsVerification {
				app.println("Your email is not verified yet. Run 'verify-email' with the code you received, then log in again.")
				return nil
			}

			app.printf("Logged in as %s\n", result.User.Username)
			app.record("login", "session", 0, "")
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username (prompted when omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Logout(); err != nil {
				return err
			}
			app.println("Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Resolve(cmd.Context()); err != nil {
				return err
			}
			user := app.Session.User()
			if user == nil {
				app.println("Not logged in.")
				return nil
			}
			if user.Role != "" {
				app.printf("%s (%s)\n", user.Username, user.Role)
			} else {
				app.println(user.Username)
			}
			return nil
		},
	}
}

func newVerifyEmailCmd(app *App) *cobra.Command {
	var email, code string

	cmd := &cobra.Command{
		Use:   "verify-email",
		Short: "Submit an email verification code",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := bufio.NewScanner(app.In)
			if email == "" {
				v, ok := prompt(sc, app.Out, "Email: ")
				if !ok || v == "" {
					return fmt.Errorf("email is required")
				}
				email = v
			}
			if code == "" {
				v, ok := prompt(sc, app.Out, "Verification code: ")
				if !ok || v == "" {
					return fmt.Errorf("verification code is required")
				}
				code = v
			}

			msg, err := app.API.Auth().VerifyEmail(cmd.Context(), email, code)
			if err != nil {
				return app.surface(err)
			}
			if msg == "" {
				msg = "Email verified."
			}
			app.println(msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (prompted when omitted)")
	cmd.Flags().StringVar(&code, "code", "", "verification code (prompted when omitted)")
	return cmd
}
