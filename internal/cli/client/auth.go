package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/unilife-dev/unilife/internal/cli/session"
)

// LoginRequest represents the login request body. Username accepts either
// an email address or a student ID.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        UserProfile `json:"user"`
}

// UserProfile is the wire shape of a portal user (snake_case fields)
type UserProfile struct {
	ID         int    `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	StudentID  string `json:"student_id"`
	Role       string `json:"role"`
	Avatar     string `json:"avatar,omitempty"`
	Major      string `json:"major,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Phone      string `json:"phone,omitempty"`
	IsActive   bool   `json:"is_active"`
	IsVerified bool   `json:"is_verified"`
	CreatedAt  string `json:"created_at"`
}

// ToSessionUser converts the wire shape to the cached client-side projection
func (p *UserProfile) ToSessionUser() *session.User {
	return &session.User{
		ID:         strconv.Itoa(p.ID),
		StudentID:  p.StudentID,
		Email:      p.Email,
		Name:       p.Name,
		Role:       p.Role,
		Avatar:     p.Avatar,
		Major:      p.Major,
		Bio:        p.Bio,
		Phone:      p.Phone,
		IsVerified: p.IsVerified,
	}
}

// Login authenticates against the portal. On HTTP success the token and
// login type are persisted; role enforcement is the session manager's job,
// this only transports and persists.
func (c *Client) Login(ctx context.Context, username, password string, asAdmin bool) (*LoginResponse, error) {
	var loginResp LoginResponse
	if err := c.do(ctx, "POST", "/api/auth/login", LoginRequest{Username: username, Password: password}, &loginResp, false); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if err := c.store.SaveToken(c.portal, loginResp.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to save authentication token: %w", err)
	}

	kind := session.LoginTypeUser
	if asAdmin {
		kind = session.LoginTypeAdmin
	}
	if err := c.store.SaveLoginType(c.portal, kind); err != nil {
		return nil, fmt.Errorf("failed to save login type: %w", err)
	}

	return &loginResp, nil
}

// Logout calls the portal logout endpoint and clears the persisted token
// and user. The login type is left for the caller, which reads it to pick
// the post-logout redirect before clearing it. The endpoint call is
// best-effort; the local clears happen regardless of its outcome.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, "POST", "/api/auth/logout", nil, nil, false)

	if derr := c.store.DeleteToken(c.portal); derr != nil && err == nil {
		err = derr
	}
	if derr := c.store.DeleteUser(c.portal); derr != nil && err == nil {
		err = derr
	}

	return err
}

// Me fetches the canonical profile of the authenticated user
func (c *Client) Me(ctx context.Context) (*UserProfile, error) {
	var profile UserProfile
	if err := c.do(ctx, "GET", "/api/users/me", nil, &profile, true); err != nil {
		return nil, err
	}
	return &profile, nil
}
