package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Publisher is the (privacy-filtered) identity attached to a lost item
type Publisher struct {
	ID     int    `json:"id"`
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
}

// LostItem is a lost-and-found listing on the portal
type LostItem struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Type        string     `json:"type"` // "lost" or "found"
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Time        string     `json:"time"`
	Images      []string   `json:"images,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Status      string     `json:"status"`
	Publisher   *Publisher `json:"publisher,omitempty"`
	CreatedAt   string     `json:"created_at"`
}

// ListLostItemsParams filters the lost-and-found listing
type ListLostItemsParams struct {
	Type      string
	Category  string
	CreatedBy *int
	Skip      int
	Limit     int
}

// ListLostItems returns lost-and-found listings (public endpoint)
func (c *Client) ListLostItems(ctx context.Context, params ListLostItemsParams) ([]LostItem, error) {
	q := url.Values{}
	if params.Type != "" {
		q.Set("type", params.Type)
	}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	if params.CreatedBy != nil {
		q.Set("created_by", strconv.Itoa(*params.CreatedBy))
	}
	if params.Skip > 0 {
		q.Set("skip", strconv.Itoa(params.Skip))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}

	path := "/api/lost-items"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var items []LostItem
	if err := c.do(ctx, "GET", path, nil, &items, false); err != nil {
		return nil, err
	}
	return items, nil
}

// GetLostItem returns a listing by ID (public endpoint)
func (c *Client) GetLostItem(ctx context.Context, id int) (*LostItem, error) {
	var item LostItem
	if err := c.do(ctx, "GET", fmt.Sprintf("/api/lost-items/%d", id), nil, &item, false); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateLostItemRequest carries a new lost-and-found listing
type CreateLostItemRequest struct {
	Title       string   `json:"title" validate:"required,max=100"`
	Type        string   `json:"type" validate:"required,oneof=lost found"`
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description" validate:"max=2000"`
	Location    string   `json:"location" validate:"required"`
	Time        string   `json:"time"`
	Images      []string `json:"images,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// CreateLostItem publishes a lost-and-found listing
func (c *Client) CreateLostItem(ctx context.Context, req CreateLostItemRequest) (*LostItem, error) {
	var item LostItem
	if err := c.do(ctx, "POST", "/api/lost-items", req, &item, true); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateLostItemRequest carries a partial listing update (owner or admin)
type UpdateLostItemRequest struct {
	Title       *string  `json:"title,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Images      []string `json:"images,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Status      *string  `json:"status,omitempty"`
}

// UpdateLostItem updates a listing (owner or admin)
func (c *Client) UpdateLostItem(ctx context.Context, id int, req UpdateLostItemRequest) (*LostItem, error) {
	var item LostItem
	if err := c.do(ctx, "PATCH", fmt.Sprintf("/api/lost-items/%d", id), req, &item, true); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteLostItem removes a listing (owner or admin)
func (c *Client) DeleteLostItem(ctx context.Context, id int) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/api/lost-items/%d", id), nil, nil, true)
}
