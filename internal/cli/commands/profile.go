package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/unilife-dev/unilife/internal/cli/client"
)

// NewProfileCmd creates the profile command group
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your portal profile",
	}

	cmd.AddCommand(newProfileShowCmd())
	cmd.AddCommand(newProfileEditCmd())
	cmd.AddCommand(newProfileChangePasswordCmd())

	return cmd
}

func newProfileShowCmd() *cobra.Command {
	var portalAlias string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if err := requireView(app.auth, false); err != nil {
				return err
			}

			profile, err := app.api.Me(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Name:       %s\n", profile.Name)
			fmt.Printf("Email:      %s\n", profile.Email)
			fmt.Printf("Student ID: %s\n", profile.StudentID)
			fmt.Printf("Role:       %s\n", profile.Role)
			if profile.Major != "" {
				fmt.Printf("Major:      %s\n", profile.Major)
			}
			if profile.Phone != "" {
				fmt.Printf("Phone:      %s\n", profile.Phone)
			}
			if profile.Bio != "" {
				fmt.Printf("Bio:        %s\n", profile.Bio)
			}
			fmt.Printf("Verified:   %t\n", profile.IsVerified)
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")

	return cmd
}

func newProfileEditCmd() *cobra.Command {
	var portalAlias, name, major, bio, phone, avatar string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if err := requireView(app.auth, false); err != nil {
				return err
			}

			var req client.UpdateMeRequest
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("major") {
				req.Major = &major
			}
			if cmd.Flags().Changed("bio") {
				req.Bio = &bio
			}
			if cmd.Flags().Changed("phone") {
				req.Phone = &phone
			}
			if cmd.Flags().Changed("avatar") {
				req.Avatar = &avatar
			}

			if req == (client.UpdateMeRequest{}) {
				return fmt.Errorf("nothing to change. Pass at least one of --name, --major, --bio, --phone, --avatar")
			}
			if err := validate.Struct(req); err != nil {
				return describeValidation(err)
			}

			if _, err := app.api.UpdateMe(cmd.Context(), req); err != nil {
				return err
			}

			// Keep the cached profile in step with what the portal now has
			app.auth.RefreshUser(cmd.Context())

			fmt.Println("✓ Profile updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&major, "major", "", "Major")
	cmd.Flags().StringVar(&bio, "bio", "", "Bio")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&avatar, "avatar", "", "Avatar URL")

	return cmd
}

func newProfileChangePasswordCmd() *cobra.Command {
	var portalAlias string

	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Change your portal password",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if err := requireView(app.auth, false); err != nil {
				return err
			}

			oldPassword, err := promptPassword("Current password: ")
			if err != nil {
				return err
			}
			newPassword, err := promptPassword("New password: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassword("Confirm new password: ")
			if err != nil {
				return err
			}
			if newPassword != confirm {
				return fmt.Errorf("passwords do not match")
			}
			if len(newPassword) < 6 {
				return fmt.Errorf("new password must be at least 6 characters")
			}

			if err := app.api.ChangePassword(cmd.Context(), oldPassword, newPassword); err != nil {
				return err
			}

			fmt.Println("✓ Password changed")
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")

	return cmd
}

func promptPassword(label string) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("no terminal available for password prompt")
	}
	fmt.Fprint(os.Stderr, label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}
