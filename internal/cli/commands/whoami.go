package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	var portalAlias string
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if remote {
				// Re-validate against the portal instead of trusting the cache
				app.auth.Bootstrap(cmd.Context(), true)
				app.auth.RefreshUser(cmd.Context())
			}

			if err := requireView(app.auth, false); err != nil {
				return err
			}

			user := app.auth.CurrentUser()
			fmt.Printf("Name:       %s\n", user.Name)
			fmt.Printf("Email:      %s\n", user.Email)
			fmt.Printf("Student ID: %s\n", user.StudentID)
			fmt.Printf("Role:       %s\n", user.Role)
			if user.Major != "" {
				fmt.Printf("Major:      %s\n", user.Major)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")
	cmd.Flags().BoolVar(&remote, "remote", false, "Verify the session against the portal")

	return cmd
}
