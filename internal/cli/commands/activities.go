package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unilife-dev/unilife/internal/cli/client"
)

// NewActivitiesCmd creates the activities command group
func NewActivitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Campus activities",
	}

	cmd.AddCommand(newActivitiesListCmd())
	cmd.AddCommand(newActivitiesShowCmd())
	cmd.AddCommand(newActivitiesRegisterCmd())
	cmd.AddCommand(newActivitiesCancelCmd())
	cmd.AddCommand(newActivitiesRegistrationsCmd())

	return cmd
}

func newActivitiesListCmd() *cobra.Command {
	var portalAlias, category, status string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List campus activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			activities, err := app.api.ListActivities(cmd.Context(), client.ListActivitiesParams{
				Category: category,
				Status:   status,
				Limit:    limit,
			})
			if err != nil {
				return err
			}

			if len(activities) == 0 {
				fmt.Println("No activities.")
				return nil
			}

			for _, a := range activities {
				fmt.Printf("#%d [%s] %s - %s @ %s (%s)\n", a.ID, a.Category, a.Title, a.Date, a.Location, a.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of activities")

	return cmd
}

func newActivitiesShowCmd() *cobra.Command {
	var portalAlias string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid activity id: %s", args[0])
			}

			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			a, err := app.api.GetActivity(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Printf("#%d %s\n", a.ID, a.Title)
			fmt.Printf("Category:  %s\n", a.Category)
			fmt.Printf("Organizer: %s\n", a.Organizer)
			fmt.Printf("Location:  %s\n", a.Location)
			fmt.Printf("Starts:    %s\n", a.ActivityStart)
			if a.ActivityEnd != nil {
				fmt.Printf("Ends:      %s\n", *a.ActivityEnd)
			}
			if a.RegistrationStart != nil && a.RegistrationEnd != nil {
				fmt.Printf("Signup:    %s - %s\n", *a.RegistrationStart, *a.RegistrationEnd)
			}
			if a.Capacity > 0 {
				fmt.Printf("Capacity:  %d\n", a.Capacity)
			}
			fmt.Printf("Status:    %s\n", a.Status)
			fmt.Printf("\n%s\n", a.Description)
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")

	return cmd
}

func newActivitiesRegisterCmd() *cobra.Command {
	var portalAlias, phone, remark string

	cmd := &cobra.Command{
		Use:   "register <id>",
		Short: "Sign up for an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid activity id: %s", args[0])
			}

			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if err := requireView(app.auth, false); err != nil {
				return err
			}

			registration, err := app.api.RegisterForActivity(cmd.Context(), id, client.RegisterRequest{
				Phone:  phone,
				Remark: remark,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Registered for activity #%d (registration #%d)\n", id, registration.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone")
	cmd.Flags().StringVar(&remark, "remark", "", "Remark for the organizer")

	return cmd
}

func newActivitiesCancelCmd() *cobra.Command {
	var portalAlias string

	cmd := &cobra.Command{
		Use:   "cancel <registration-id>",
		Short: "Cancel an activity signup",
		Long: `Cancel an activity signup by its registration ID.

Run 'unilife activities registrations' to list your signups and their IDs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid registration id: %s", args[0])
			}

			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if err := requireView(app.auth, false); err != nil {
				return err
			}

			if err := app.api.CancelRegistration(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Printf("✓ Cancelled registration #%d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")

	return cmd
}

func newActivitiesRegistrationsCmd() *cobra.Command {
	var portalAlias string

	cmd := &cobra.Command{
		Use:   "registrations",
		Short: "List your activity signups",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if err := requireView(app.auth, false); err != nil {
				return err
			}

			registrations, err := app.api.MyRegistrations(cmd.Context())
			if err != nil {
				return err
			}

			if len(registrations) == 0 {
				fmt.Println("No registrations.")
				return nil
			}

			for _, r := range registrations {
				fmt.Printf("#%d activity %d - %s (%s)\n", r.ID, r.ActivityID, r.Status, r.CreatedAt)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")

	return cmd
}
