package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// UpdateMeRequest carries the editable fields of the caller's own profile.
// Nil pointers are omitted so the backend keeps the current value.
type UpdateMeRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Major  *string `json:"major,omitempty" validate:"omitempty,max=100"`
	Bio    *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Phone  *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Avatar *string `json:"avatar,omitempty" validate:"omitempty,url"`
}

// UpdateMe updates the caller's own profile
func (c *Client) UpdateMe(ctx context.Context, req UpdateMeRequest) (*UserProfile, error) {
	var profile UserProfile
	if err := c.do(ctx, "PATCH", "/api/users/me", req, &profile, true); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ChangePasswordRequest carries an authenticated password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword changes the caller's password
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	var resp struct {
		Message string `json:"message"`
	}
	return c.do(ctx, "POST", "/api/users/me/change-password", ChangePasswordRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	}, &resp, true)
}

// ListUsersParams filters the admin user listing
type ListUsersParams struct {
	Search   string
	Role     string
	IsActive *bool
	Skip     int
	Limit    int
}

// ListUsers returns portal users (admin only)
func (c *Client) ListUsers(ctx context.Context, params ListUsersParams) ([]UserProfile, error) {
	q := url.Values{}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Role != "" {
		q.Set("role", params.Role)
	}
	if params.IsActive != nil {
		q.Set("is_active", strconv.FormatBool(*params.IsActive))
	}
	if params.Skip > 0 {
		q.Set("skip", strconv.Itoa(params.Skip))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}

	path := "/api/users"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var users []UserProfile
	if err := c.do(ctx, "GET", path, nil, &users, true); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns a single user by ID (admin only)
func (c *Client) GetUser(ctx context.Context, id int) (*UserProfile, error) {
	var profile UserProfile
	if err := c.do(ctx, "GET", fmt.Sprintf("/api/users/%d", id), nil, &profile, true); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SetUserStatus enables or disables a user account (admin only)
func (c *Client) SetUserStatus(ctx context.Context, id int, isActive bool) (*UserProfile, error) {
	var profile UserProfile
	body := map[string]bool{"is_active": isActive}
	if err := c.do(ctx, "PATCH", fmt.Sprintf("/api/users/%d/status", id), body, &profile, true); err != nil {
		return nil, err
	}
	return &profile, nil
}

// BulkUpdateUsers enables or disables several accounts at once (admin only)
func (c *Client) BulkUpdateUsers(ctx context.Context, userIDs []int, isActive bool) (int, error) {
	body := struct {
		UserIDs  []int `json:"user_ids"`
		IsActive bool  `json:"is_active"`
	}{UserIDs: userIDs, IsActive: isActive}

	var resp struct {
		Updated int `json:"updated"`
	}
	if err := c.do(ctx, "PATCH", "/api/users/bulk", body, &resp, true); err != nil {
		return 0, err
	}
	return resp.Updated, nil
}

// DeleteUser removes a user account (admin only)
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/api/users/%d", id), nil, nil, true)
}
