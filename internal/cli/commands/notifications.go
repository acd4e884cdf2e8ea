package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unilife-dev/unilife/internal/cli/client"
)

// NewNotificationsCmd creates the notifications command group
func NewNotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Course notifications",
	}

	cmd.AddCommand(newNotificationsListCmd())
	cmd.AddCommand(newNotificationsShowCmd())
	cmd.AddCommand(newNotificationsCreateCmd())
	cmd.AddCommand(newNotificationsDeleteCmd())

	return cmd
}

func newNotificationsListCmd() *cobra.Command {
	var portalAlias string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List course notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			localCache := app.openCache()

			items, err := app.api.ListNotifications(cmd.Context(), client.ListNotificationsParams{Limit: limit})
			if err != nil {
				if localCache != nil {
					cached, fetchedAt, cacheErr := localCache.Notifications(app.portal.Key(), limit)
					if cacheErr == nil && len(cached) > 0 {
						fmt.Printf("Portal unreachable; showing cached notifications from %s\n\n", fetchedAt.Format("2006-01-02 15:04"))
						printNotifications(cached)
						return nil
					}
				}
				return err
			}

			if localCache != nil {
				if err := localCache.PutNotifications(app.portal.Key(), items); err != nil {
					app.log.Warn().Err(err).Msg("failed to update notification cache")
				}
			}

			printNotifications(items)
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of notifications")

	return cmd
}

func printNotifications(items []client.Notification) {
	if len(items) == 0 {
		fmt.Println("No notifications.")
		return
	}

	for _, n := range items {
		marker := " "
		if n.IsImportant {
			marker = "!"
		}
		fmt.Printf("%s #%d [%s] %s - %s\n", marker, n.ID, n.Course, n.Title, n.Time)
	}
}

func newNotificationsShowCmd() *cobra.Command {
	var portalAlias string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one notification",
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

			n, err := app.api.GetNotification(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Printf("#%d %s\n", n.ID, n.Title)
			fmt.Printf("Course:   %s\n", n.Course)
			fmt.Printf("Author:   %s\n", n.Author)
			if n.Location != "" {
				fmt.Printf("Location: %s\n", n.Location)
			}
			fmt.Printf("Time:     %s\n", n.Time)
			if n.IsImportant {
				fmt.Println("Important: yes")
			}
			fmt.Printf("\n%s\n", n.Content)
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")

	return cmd
}

func newNotificationsCreateCmd() *cobra.Command {
	var portalAlias string
	var req client.CreateNotificationRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a course notification (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			if err := requireView(app.auth, true); err != nil {
				return err
			}

			if req.Title == "" || req.Content == "" || req.Course == "" {
				return fmt.Errorf("--title, --content and --course are required")
			}
			if req.Author == "" {
				req.Author = app.auth.CurrentUser().Name
			}

			n, err := app.api.CreateNotification(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Published notification #%d\n", n.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")
	cmd.Flags().StringVar(&req.Title, "title", "", "Notification title")
	cmd.Flags().StringVar(&req.Content, "content", "", "Notification body")
	cmd.Flags().StringVar(&req.Course, "course", "", "Course name")
	cmd.Flags().StringVar(&req.Author, "author", "", "Author name (defaults to your name)")
	cmd.Flags().StringVar(&req.Location, "location", "", "Location")
	cmd.Flags().BoolVar(&req.IsImportant, "important", false, "Mark as important")

	return cmd
}

func newNotificationsDeleteCmd() *cobra.Command {
	var portalAlias string

	cmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete notifications (admin)",
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
					return fmt.Errorf("invalid notification id: %s", arg)
				}
				ids = append(ids, id)
			}

			if len(ids) == 1 {
				if err := app.api.DeleteNotification(cmd.Context(), ids[0]); err != nil {
					return err
				}
				fmt.Printf("✓ Deleted notification #%d\n", ids[0])
				return nil
			}

			deleted, err := app.api.BatchDeleteNotifications(cmd.Context(), ids)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Deleted %d notifications\n", deleted)
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")

	return cmd
}
