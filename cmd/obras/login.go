package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/nbourbon/admin-obras-sub001/internal/cli"
	"github.com/nbourbon/admin-obras-sub001/internal/common"
	"github.com/nbourbon/admin-obras-sub001/internal/session"
)

func loginCmd() *cobra.Command {
	var useGoogle bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the Admin Obras service",
		Long: `Authenticate with email and password, or with Google via --google.
The session token is stored locally and reused until it is rejected by
the server or you log out.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if useGoogle {
				credential, err := session.AcquireGoogleCredential(ctx, session.GoogleOAuthConfig{
					ClientID:     viper.GetString("google.client_id"),
					ClientSecret: viper.GetString("google.client_secret"),
				})
				if err != nil {
					return err
				}
				if err := app.session.LoginWithGoogle(ctx, credential); err != nil {
					return err
				}
			} else {
				email, password, err := promptCredentials()
				if err != nil {
					return err
				}
				if err := app.session.Login(ctx, email, password); err != nil {
					if errors.Is(err, common.ErrInvalidCredentials) {
						return fmt.Errorf("login rejected: check your email and password")
					}
					return err
				}
			}

			fmt.Println(cli.FormatSuccess("Logged in as " + app.session.User().FullName()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&useGoogle, "google", false, "sign in with Google")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.session.Logout(ctx); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Logged out"))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			app, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.requireSession(ctx); err != nil {
				return err
			}

			user := app.session.User()
			fmt.Printf("%s <%s>\n", user.FullName(), user.Email)
			return nil
		},
	}
}

func promptCredentials() (string, string, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("failed to read email: %w", err)
	}
	email = strings.TrimSpace(email)

	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", "", fmt.Errorf("failed to read password: %w", err)
	}

	return email, string(passwordBytes), nil
}
