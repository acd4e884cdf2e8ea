package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unilife-dev/unilife/internal/cli/client"
)

// NewFeedCmd creates the feed command
func NewFeedCmd() *cobra.Command {
	var portalAlias string
	var limit int

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Show the latest campus feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), portalAlias)
			if err != nil {
				return err
			}

			localCache := app.openCache()

			feed, err := app.api.LatestFeed(cmd.Context(), limit)
			if err != nil {
				// Fall back to the last fetched feed when the portal is down
				if localCache != nil {
					items, fetchedAt, cacheErr := localCache.Feed(app.portal.Key(), limit)
					if cacheErr == nil && len(items) > 0 {
						fmt.Printf("Portal unreachable; showing cached feed from %s\n\n", fetchedAt.Format("2006-01-02 15:04"))
						printFeedItems(items)
						return nil
					}
				}
				return err
			}

			if localCache != nil {
				if err := localCache.PutFeed(app.portal.Key(), feed.Items); err != nil {
					app.log.Warn().Err(err).Msg("failed to update feed cache")
				}
			}

			printFeedItems(feed.Items)
			return nil
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias from unilife.json")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of items")

	return cmd
}

func printFeedItems(items []client.FeedItem) {
	if len(items) == 0 {
		fmt.Println("Nothing new on the feed.")
		return
	}

	for _, item := range items {
		fmt.Printf("[%s] %s\n", item.Tag, item.Title)
		if item.Description != "" {
			fmt.Printf("      %s\n", item.Description)
		}
		fmt.Printf("      %s\n", item.Time)
	}
}
