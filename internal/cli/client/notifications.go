package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Notification is a course notification published on the portal
type Notification struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	Course         string `json:"course"`
	Author         string `json:"author"`
	Avatar         string `json:"avatar,omitempty"`
	Location       string `json:"location,omitempty"`
	IsImportant    bool   `json:"is_important"`
	Attachment     string `json:"attachment,omitempty"`
	AttachmentName string `json:"attachment_name,omitempty"`
	Time           string `json:"time"`
	CreatedAt      string `json:"created_at"`
}

// ListNotificationsParams filters the notification listing
type ListNotificationsParams struct {
	CreatedBy *int
	Skip      int
	Limit     int
}

// ListNotifications returns course notifications (public endpoint)
func (c *Client) ListNotifications(ctx context.Context, params ListNotificationsParams) ([]Notification, error) {
	q := url.Values{}
	if params.CreatedBy != nil {
		q.Set("created_by", strconv.Itoa(*params.CreatedBy))
	}
	if params.Skip > 0 {
		q.Set("skip", strconv.Itoa(params.Skip))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}

	path := "/api/notifications"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var notifications []Notification
	if err := c.do(ctx, "GET", path, nil, &notifications, false); err != nil {
		return nil, err
	}
	return notifications, nil
}

// GetNotification returns a notification by ID (public endpoint)
func (c *Client) GetNotification(ctx context.Context, id int) (*Notification, error) {
	var notification Notification
	if err := c.do(ctx, "GET", fmt.Sprintf("/api/notifications/%d", id), nil, &notification, false); err != nil {
		return nil, err
	}
	return &notification, nil
}

// CreateNotificationRequest carries a new course notification (admin only)
type CreateNotificationRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Course      string `json:"course"`
	Author      string `json:"author"`
	Avatar      string `json:"avatar,omitempty"`
	Location    string `json:"location,omitempty"`
	IsImportant bool   `json:"is_important,omitempty"`
}

// CreateNotification publishes a course notification (admin only)
func (c *Client) CreateNotification(ctx context.Context, req CreateNotificationRequest) (*Notification, error) {
	var notification Notification
	if err := c.do(ctx, "POST", "/api/notifications", req, &notification, true); err != nil {
		return nil, err
	}
	return &notification, nil
}

// UpdateNotificationRequest carries a partial notification update (admin only)
type UpdateNotificationRequest struct {
	Title       *string `json:"title,omitempty"`
	Content     *string `json:"content,omitempty"`
	Course      *string `json:"course,omitempty"`
	Author      *string `json:"author,omitempty"`
	Location    *string `json:"location,omitempty"`
	IsImportant *bool   `json:"is_important,omitempty"`
}

// UpdateNotification updates a course notification (admin only)
func (c *Client) UpdateNotification(ctx context.Context, id int, req UpdateNotificationRequest) (*Notification, error) {
	var notification Notification
	if err := c.do(ctx, "PATCH", fmt.Sprintf("/api/notifications/%d", id), req, &notification, true); err != nil {
		return nil, err
	}
	return &notification, nil
}

// DeleteNotification removes a course notification (admin only)
func (c *Client) DeleteNotification(ctx context.Context, id int) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/api/notifications/%d", id), nil, nil, true)
}

// BatchDeleteNotifications removes several notifications at once (admin only)
func (c *Client) BatchDeleteNotifications(ctx context.Context, ids []int) (int, error) {
	body := struct {
		NotificationIDs []int `json:"notification_ids"`
	}{NotificationIDs: ids}

	var resp struct {
		Deleted int `json:"deleted"`
	}
	if err := c.do(ctx, "POST", "/api/notifications/batch-delete", body, &resp, true); err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}
