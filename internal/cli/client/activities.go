package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Activity is a campus activity listed on the portal
type Activity struct {
	ID                int     `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	Date              string  `json:"date"`
	Location          string  `json:"location"`
	Organizer         string  `json:"organizer"`
	Image             string  `json:"image,omitempty"`
	Category          string  `json:"category"`
	Capacity          int     `json:"capacity"`
	Status            string  `json:"status"`
	RegistrationStart *string `json:"registration_start"`
	RegistrationEnd   *string `json:"registration_end"`
	ActivityStart     string  `json:"activity_start"`
	ActivityEnd       *string `json:"activity_end"`
	CreatedAt         string  `json:"created_at"`
	CreatedBy         int     `json:"created_by,omitempty"`
}

// ActivityRegistration is a user's signup for an activity
type ActivityRegistration struct {
	ID          int    `json:"id"`
	ActivityID  int    `json:"activity_id"`
	UserID      int    `json:"user_id"`
	Name        string `json:"name"`
	StudentID   string `json:"student_id"`
	Phone       string `json:"phone,omitempty"`
	Remark      string `json:"remark,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	CancelledAt string `json:"cancelled_at,omitempty"`
}

// ListActivitiesParams filters the activity listing
type ListActivitiesParams struct {
	Category string
	Status   string
	Skip     int
	Limit    int
}

// ListActivities returns campus activities (public endpoint)
func (c *Client) ListActivities(ctx context.Context, params ListActivitiesParams) ([]Activity, error) {
	q := url.Values{}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	if params.Skip > 0 {
		q.Set("skip", strconv.Itoa(params.Skip))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}

	path := "/api/activities"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var activities []Activity
	if err := c.do(ctx, "GET", path, nil, &activities, false); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetActivity returns an activity by ID (public endpoint)
func (c *Client) GetActivity(ctx context.Context, id int) (*Activity, error) {
	var activity Activity
	if err := c.do(ctx, "GET", fmt.Sprintf("/api/activities/%d", id), nil, &activity, false); err != nil {
		return nil, err
	}
	return &activity, nil
}

// RegisterRequest carries an activity signup. The profile fields are
// optional; the backend falls back to the caller's account values.
// ActivityID is filled from the path parameter on send.
type RegisterRequest struct {
	ActivityID int    `json:"activity_id"`
	Name       string `json:"name,omitempty"`
	StudentID  string `json:"student_id,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Remark     string `json:"remark,omitempty"`
}

// RegisterForActivity signs the caller up for an activity
func (c *Client) RegisterForActivity(ctx context.Context, activityID int, req RegisterRequest) (*ActivityRegistration, error) {
	req.ActivityID = activityID

	var registration ActivityRegistration
	path := fmt.Sprintf("/api/activities/%d/register", activityID)
	if err := c.do(ctx, "POST", path, req, &registration, true); err != nil {
		return nil, err
	}
	return &registration, nil
}

// CancelRegistration cancels one of the caller's signups by registration ID
func (c *Client) CancelRegistration(ctx context.Context, registrationID int) error {
	path := fmt.Sprintf("/api/activities/registrations/%d", registrationID)
	return c.do(ctx, "DELETE", path, nil, nil, true)
}

// MyRegistrations returns the caller's activity signups
func (c *Client) MyRegistrations(ctx context.Context) ([]ActivityRegistration, error) {
	var registrations []ActivityRegistration
	if err := c.do(ctx, "GET", "/api/activities/my-registrations", nil, &registrations, true); err != nil {
		return nil, err
	}
	return registrations, nil
}

// CreateActivityRequest carries a new campus activity (admin only)
type CreateActivityRequest struct {
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	Date              string  `json:"date"`
	Location          string  `json:"location"`
	Organizer         string  `json:"organizer"`
	Image             string  `json:"image,omitempty"`
	Category          string  `json:"category"`
	Capacity          int     `json:"capacity,omitempty"`
	ActivityStart     string  `json:"activity_start"`
	ActivityEnd       *string `json:"activity_end"`
	RegistrationStart *string `json:"registration_start"`
	RegistrationEnd   *string `json:"registration_end"`
	Status            string  `json:"status,omitempty"`
}

// CreateActivity publishes a campus activity (admin only)
func (c *Client) CreateActivity(ctx context.Context, req CreateActivityRequest) (*Activity, error) {
	var activity Activity
	if err := c.do(ctx, "POST", "/api/activities", req, &activity, true); err != nil {
		return nil, err
	}
	return &activity, nil
}

// UpdateActivityRequest carries a partial activity update (admin only)
type UpdateActivityRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	Location    *string `json:"location,omitempty"`
	Organizer   *string `json:"organizer,omitempty"`
	Category    *string `json:"category,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// UpdateActivity updates a campus activity (admin only)
func (c *Client) UpdateActivity(ctx context.Context, id int, req UpdateActivityRequest) (*Activity, error) {
	var activity Activity
	if err := c.do(ctx, "PATCH", fmt.Sprintf("/api/activities/%d", id), req, &activity, true); err != nil {
		return nil, err
	}
	return &activity, nil
}

// DeleteActivity removes a campus activity (admin only)
func (c *Client) DeleteActivity(ctx context.Context, id int) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/api/activities/%d", id), nil, nil, true)
}
