package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unilife-dev/unilife/internal/cli/client"
)

// NewUsersCmd creates the users command group (admin only)
func NewUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage portal accounts (admin)",
	}

	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersShowCmd())
	cmd.AddCommand(newUsersEnableCmd())
	cmd.AddCommand(newUsersDisableCmd())
	cmd.AddCommand(newUsersDeleteCmd())

	return cmd
}

func newUsersListCmd() *cobra.Command {
	var portalAlias, search, role string
	var activeOnly, inactiveOnly bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List portal accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if err := requireView(app.auth, true); err != nil {
				return err
			}

			params := client.ListUsersParams{
				Search: search,
				Role:   role,
				Limit:  limit,
			}
			if activeOnly && inactiveOnly {
				return fmt.Errorf("--active and --inactive are mutually exclusive")
			}
			if activeOnly {
				active := true
				params.IsActive = &active
			}
			if inactiveOnly {
				active := false
				params.IsActive = &active
			}

			users, err := app.api.ListUsers(cmd.Context(), params)
			if err != nil {
				return err
			}

			if len(users) == 0 {
				fmt.Println("No accounts.")
				return nil
			}

			for _, u := range users {
				state := "active"
				if !u.IsActive {
					state = "disabled"
				}
				fmt.Printf("#%d %s <%s> [%s] %s - %s\n", u.ID, u.Name, u.Email, u.Role, u.StudentID, state)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")
	cmd.Flags().StringVar(&search, "search", "", "Search by name, email or student ID")
	cmd.Flags().StringVar(&role, "role", "", "Filter by role")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only active accounts")
	cmd.Flags().BoolVar(&inactiveOnly, "inactive", false, "Only disabled accounts")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of accounts")

	return cmd
}

func newUsersShowCmd() *cobra.Command {
	var portalAlias string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id: %s", args[0])
			}

			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if err := requireView(app.auth, true); err != nil {
				return err
			}

			u, err := app.api.GetUser(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Printf("#%d %s\n", u.ID, u.Name)
			fmt.Printf("Email:      %s\n", u.Email)
			fmt.Printf("Student ID: %s\n", u.StudentID)
			fmt.Printf("Role:       %s\n", u.Role)
			if u.Major != "" {
				fmt.Printf("Major:      %s\n", u.Major)
			}
			fmt.Printf("Active:     %t\n", u.IsActive)
			fmt.Printf("Verified:   %t\n", u.IsVerified)
			fmt.Printf("Created:    %s\n", u.CreatedAt)
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")

	return cmd
}

func newUsersEnableCmd() *cobra.Command {
	return newUsersStatusCmd("enable", "Enable accounts", true)
}

func newUsersDisableCmd() *cobra.Command {
	return newUsersStatusCmd("disable", "Disable accounts", false)
}

func newUsersStatusCmd(verb, short string, active bool) *cobra.Command {
	var portalAlias string

	cmd := &cobra.Command{
		Use:   verb + " <id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if err := requireView(app.auth, true); err != nil {
				return err
			}

			ids := make([]int, 0, len(args))
			for _, arg := range args {
				id, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid user id: %s", arg)
				}
				ids = append(ids, id)
			}

			if len(ids) == 1 {
				if _, err := app.api.SetUserStatus(cmd.Context(), ids[0], active); err != nil {
					return err
				}
				fmt.Printf("✓ Account #%d %sd\n", ids[0], verb)
				return nil
			}

			updated, err := app.api.BulkUpdateUsers(cmd.Context(), ids, active)
			if err != nil {
				return err
			}
			fmt.Printf("✓ %d accounts %sd\n", updated, verb)
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")

	return cmd
}

func newUsersDeleteCmd() *cobra.Command {
	var portalAlias string
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id: %s", args[0])
			}

			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if err := requireView(app.auth, true); err != nil {
				return err
			}

			if !force {
				return fmt.Errorf("deleting an account is permanent. Re-run with --force to confirm")
			}

			if err := app.api.DeleteUser(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Printf("✓ Deleted account #%d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation check")

	return cmd
}
