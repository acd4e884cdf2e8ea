package client

import (
	"context"
	"fmt"
)

// FeedItem is one entry on the portal's aggregated home feed
type FeedItem struct {
	ID          string `json:"id"`
	Type        string `json:"type"` // "notification", "activity", "lost_item"
	Tag         string `json:"tag"`
	TagColor    string `json:"tag_color"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"`
	CreatedAt   string `json:"created_at"`
	LinkURL     string `json:"link_url"`
}

// FeedResponse is the aggregated feed payload
type FeedResponse struct {
	Items []FeedItem `json:"items"`
	Total int        `json:"total"`
}

// LatestFeed returns the newest items across notifications, activities and
// lost-and-found listings (public endpoint)
func (c *Client) LatestFeed(ctx context.Context, limit int) (*FeedResponse, error) {
	if limit <= 0 {
		limit = 10
	}

	var feed FeedResponse
	if err := c.do(ctx, "GET", fmt.Sprintf("/api/feed/latest?limit=%d", limit), nil, &feed, false); err != nil {
		return nil, err
	}
	return &feed, nil
}
