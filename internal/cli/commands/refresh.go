package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRefreshCmd creates the refresh command
func NewRefreshCmd() *cobra.Command {
	var portalAlias string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the cached profile from the portal",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if err := requireView(app.auth, false); err != nil {
				return err
			}

			// Best-effort: a failed refresh keeps the cached profile
			app.auth.RefreshUser(cmd.Context())

			user := app.auth.CurrentUser()
			if user == nil {
				return fmt.Errorf("not authenticated. Run 'unilife login' first")
			}
			fmt.Printf("✓ Profile refreshed for %s\n", user.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")

	return cmd
}
