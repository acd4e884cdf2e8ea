package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/unilife-dev/unilife/internal/cli/session"
)

// ErrNotAuthenticated is returned when an authenticated endpoint is called
// without a stored token
var ErrNotAuthenticated = errors.New("not authenticated. Please run 'unilife login' first")

// APIError carries a non-2xx response from the portal. Detail is the
// backend's human-readable message, surfaced verbatim.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request failed (status %d): %s", e.StatusCode, e.Detail)
}

// IsAuthError reports whether err is a 401/403 rejection from the portal
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// Client represents an HTTP client for the UniLife portal API
type Client struct {
	baseURL    string
	portal     string
	store      session.Store
	httpClient *http.Client
}

// New creates a new API client. portal is the session-store key the bearer
// token is loaded from (normally config.Portal.Key()).
func New(baseURL, portal string, store session.Store) *Client {
	return &Client{
		baseURL: baseURL,
		portal:  portal,
		store:   store,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// do performs a single JSON request. No retries; failures surface
// immediately to the caller.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	// Correlation ID so portal-side logs can be matched to a CLI run
	req.Header.Set("X-Request-ID", ulid.Make().String())

	if authed {
		token, err := c.store.Token(c.portal)
		if err != nil {
			return fmt.Errorf("failed to load token: %w", err)
		}
		if token == "" {
			return ErrNotAuthenticated
		}
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// decodeAPIError extracts the backend's {"detail": ...} error body, falling
// back to the HTTP status text when the body is not decodable
func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Detail == "" {
		payload.Detail = http.StatusText(resp.StatusCode)
	}

	return &APIError{StatusCode: resp.StatusCode, Detail: payload.Detail}
}
