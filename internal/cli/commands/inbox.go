package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewInboxCmd creates the inbox command group
func NewInboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Personal notifications",
	}

	cmd.AddCommand(newInboxListCmd())
	cmd.AddCommand(newInboxReadCmd())
	cmd.AddCommand(newInboxReadAllCmd())
	cmd.AddCommand(newInboxDeleteCmd())

	return cmd
}

func newInboxListCmd() *cobra.Command {
	var portalAlias string
	var limit int
	var unread bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your personal notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if err := requireView(app.auth, false); err != nil {
				return err
			}

			if unread {
				count, err := app.api.UnreadCount(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Printf("%d unread\n", count)
				return nil
			}

			items, err := app.api.ListInbox(cmd.Context(), 0, limit)
			if err != nil {
				return err
			}

			if len(items) == 0 {
				fmt.Println("Inbox is empty.")
				return nil
			}

			for _, item := range items {
				marker := "•"
				if item.IsRead {
					marker = " "
				}
				fmt.Printf("%s #%d [%s] %s - %s\n", marker, item.ID, item.Type, item.Title, item.CreatedAt)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of notifications")
	cmd.Flags().BoolVar(&unread, "unread", false, "Only print the unread count")

	return cmd
}

func newInboxReadCmd() *cobra.Command {
	var portalAlias string

	cmd := &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid notification id: %s", args[0])
			}

			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if err := requireView(app.auth, false); err != nil {
				return err
			}

			item, err := app.api.MarkRead(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Printf("#%d %s\n", item.ID, item.Title)
			fmt.Printf("\n%s\n", item.Content)
			if item.LinkURL != nil {
				fmt.Printf("\nLink: %s\n", *item.LinkURL)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")

	return cmd
}

func newInboxReadAllCmd() *cobra.Command {
	var portalAlias string

	cmd := &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if err := requireView(app.auth, false); err != nil {
				return err
			}

			if err := app.api.MarkAllRead(cmd.Context()); err != nil {
				return err
			}

			fmt.Println("✓ Inbox marked as read")
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")

	return cmd
}

func newInboxDeleteCmd() *cobra.Command {
	var portalAlias string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid notification id: %s", args[0])
			}

			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if err := requireView(app.auth, false); err != nil {
				return err
			}

			if err := app.api.DeleteInboxItem(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Printf("✓ Deleted notification #%d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")

	return cmd
}
