package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// InboxItem is a personal notification addressed to the authenticated user
type InboxItem struct {
	ID        int     `json:"id"`
	UserID    int     `json:"user_id"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	LinkURL   *string `json:"link_url"`
	IsRead    bool    `json:"is_read"`
	CreatedAt string  `json:"created_at"`
	RelatedID *int    `json:"related_id"`
}

// ListInbox returns the caller's personal notifications
func (c *Client) ListInbox(ctx context.Context, skip, limit int) ([]InboxItem, error) {
	q := url.Values{}
	if skip > 0 {
		q.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	path := "/api/notifications/me"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var items []InboxItem
	if err := c.do(ctx, "GET", path, nil, &items, true); err != nil {
		return nil, err
	}
	return items, nil
}

// UnreadCount returns how many personal notifications are unread
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		UnreadCount int `json:"unread_count"`
	}
	if err := c.do(ctx, "GET", "/api/notifications/me/unread-count", nil, &resp, true); err != nil {
		return 0, err
	}
	return resp.UnreadCount, nil
}

// MarkRead marks one personal notification as read
func (c *Client) MarkRead(ctx context.Context, id int) (*InboxItem, error) {
	var item InboxItem
	if err := c.do(ctx, "PATCH", fmt.Sprintf("/api/notifications/me/%d/read", id), struct{}{}, &item, true); err != nil {
		return nil, err
	}
	return &item, nil
}

// MarkAllRead marks every personal notification as read
func (c *Client) MarkAllRead(ctx context.Context) error {
	var resp struct {
		Message string `json:"message"`
	}
	return c.do(ctx, "POST", "/api/notifications/me/read-all", struct{}{}, &resp, true)
}

// DeleteInboxItem removes one personal notification
func (c *Client) DeleteInboxItem(ctx context.Context, id int) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/api/notifications/me/%d", id), nil, nil, true)
}
