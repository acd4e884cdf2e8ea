package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var username, password, portalAlias string
	var asAdmin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the campus portal",
		Long: `Authenticate with the campus portal.

Student accounts use the default login; administrators pass --admin.
The account's role must match the chosen surface: logging an admin
account in without --admin (or vice versa) is rejected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, username, password, portalAlias, asAdmin)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Email or student ID (or set UNILIFE_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set UNILIFE_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")
	cmd.Flags().BoolVar(&asAdmin, "admin", false, "Log in as an administrator")

	return cmd
}

func runLogin(cmd *cobra.Command, username, password, portalAlias string, asAdmin bool) error {
	// Check for environment variables (useful for CI/CD)
	if username == "" {
		username = os.Getenv("UNILIFE_USERNAME")
	}
	if password == "" {
		password = os.Getenv("UNILIFE_PASSWORD")
	}

	if username == "" {
		return fmt.Errorf("username is required (use --username flag or UNILIFE_USERNAME env var)")
	}

	app, err := newAppContext(cmd.Context(), portalAlias)
	if err != nil {
		return err
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println()
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or UNILIFE_PASSWORD env var)")
		}
	}

	fmt.Printf("Logging in to %s (%s)...\n", app.portal.Alias, app.portal.URL)

	target, err := app.auth.Login(cmd.Context(), username, password, asAdmin)
	if err != nil {
		return err
	}

	user := app.auth.CurrentUser()
	fmt.Println("✓ Login successful!")
	fmt.Printf("  Welcome back, %s (%s)\n", user.Name, user.Email)
	if user.IsAdmin() {
		fmt.Println("  Role: Admin")
	}
	app.log.Debug().Str("target", target).Msg("post-login view")

	return nil
}
