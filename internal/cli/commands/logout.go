package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	var portalAlias string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out of the campus portal",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			// Logout is best-effort against the portal and always clears
			// the local session
			target := app.auth.Logout(cmd.Context(), "")

			fmt.Println("✓ Signed out")
			app.log.Debug().Str("target", target).Msg("post-logout view")
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")

	return cmd
}
