package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unilife-dev/unilife/internal/cli/client"
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	var portalAlias string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search notifications, activities and lost-and-found items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(args[0])
			if query == "" {
				return fmt.Errorf("search query must not be empty")
			}

			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			// The portal has no search endpoint; fetch the three public
			// listings and filter locally, like the portal's own search page
			notifications, err := app.api.ListNotifications(cmd.Context(), client.ListNotificationsParams{})
			if err != nil {
				return err
			}
			activities, err := app.api.ListActivities(cmd.Context(), client.ListActivitiesParams{})
			if err != nil {
				return err
			}
			lostItems, err := app.api.ListLostItems(cmd.Context(), client.ListLostItemsParams{})
			if err != nil {
				return err
			}

			matchedNotifications := filterNotifications(notifications, query)
			matchedActivities := filterActivities(activities, query)
			matchedLostItems := filterLostItems(lostItems, query)

			total := len(matchedNotifications) + len(matchedActivities) + len(matchedLostItems)
			if total == 0 {
				fmt.Printf("No results for %q.\n", query)
				return nil
			}

			fmt.Printf("%d results for %q\n", total, query)

			if len(matchedNotifications) > 0 {
				fmt.Printf("\nNotifications (%d)\n", len(matchedNotifications))
				printNotifications(matchedNotifications)
			}
			if len(matchedActivities) > 0 {
				fmt.Printf("\nActivities (%d)\n", len(matchedActivities))
				for _, a := range matchedActivities {
					fmt.Printf("  #%d [%s] %s - %s @ %s\n", a.ID, a.Category, a.Title, a.Date, a.Location)
				}
			}
			if len(matchedLostItems) > 0 {
				fmt.Printf("\nLost & Found (%d)\n", len(matchedLostItems))
				for _, item := range matchedLostItems {
					fmt.Printf("  #%d [%s/%s] %s - %s\n", item.ID, item.Type, item.Category, item.Title, item.Location)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")

	return cmd
}

func filterNotifications(items []client.Notification, query string) []client.Notification {
	q := strings.ToLower(query)
	var matched []client.Notification
	for _, n := range items {
		if containsFold(q, n.Title, n.Content, n.Course) {
			matched = append(matched, n)
		}
	}
	return matched
}

func filterActivities(items []client.Activity, query string) []client.Activity {
	q := strings.ToLower(query)
	var matched []client.Activity
	for _, a := range items {
		if containsFold(q, a.Title, a.Description, a.Category, a.Location) {
			matched = append(matched, a)
		}
	}
	return matched
}

func filterLostItems(items []client.LostItem, query string) []client.LostItem {
	q := strings.ToLower(query)
	var matched []client.LostItem
	for _, item := range items {
		if containsFold(q, item.Title, item.Description, item.Category, item.Location) {
			matched = append(matched, item)
		}
	}
	return matched
}

// containsFold reports whether any field contains the already-lowercased query
func containsFold(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
