package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/unilife-dev/unilife/internal/cli/session"
)

const testPortal = "portal.campus.edu"

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.MemoryStore, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewMemoryStore()
	c := New(server.URL, testPortal, store)
	return c, store, server
}

func loginHandler(t *testing.T, wantUser, wantPass, token, role string) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != "POST" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if req.Username != wantUser || req.Password != wantPass {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "用户名或密码错误"})
			return
		}

		json.NewEncoder(w).Encode(LoginResponse{
			AccessToken: token,
			TokenType:   "bearer",
			User: UserProfile{
				ID:        7,
				Email:     "s@campus.edu",
				Name:      "Student Seven",
				StudentID: "20250007",
				Role:      role,
			},
		})
	})
}

func TestClient_Login_PersistsTokenAndLoginType(t *testing.T) {
	c, store, _ := newTestClient(t, loginHandler(t, "20250007", "secret", "tok-123", "user"))

	resp, err := c.Login(context.Background(), "20250007", "secret", false)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.AccessToken != "tok-123" {
		t.Errorf("expected token tok-123, got %q", resp.AccessToken)
	}
	if resp.User.Role != "user" {
		t.Errorf("expected role user, got %q", resp.User.Role)
	}

	token, _ := store.Token(testPortal)
	if token != "tok-123" {
		t.Errorf("expected persisted token tok-123, got %q", token)
	}
	kind, _ := store.LoginType(testPortal)
	if kind != session.LoginTypeUser {
		t.Errorf("expected login type %q, got %q", session.LoginTypeUser, kind)
	}
}

func TestClient_Login_AdminSurfaceRecordsAdminLoginType(t *testing.T) {
	c, store, _ := newTestClient(t, loginHandler(t, "admin@campus.edu", "secret", "tok-admin", "admin"))

	if _, err := c.Login(context.Background(), "admin@campus.edu", "secret", true); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	kind, _ := store.LoginType(testPortal)
	if kind != session.LoginTypeAdmin {
		t.Errorf("expected login type %q, got %q", session.LoginTypeAdmin, kind)
	}
}

func TestClient_Login_BackendRejection(t *testing.T) {
	c, store, _ := newTestClient(t, loginHandler(t, "20250007", "secret", "tok-123", "user"))

	_, err := c.Login(context.Background(), "20250007", "wrong", false)
	if err == nil {
		t.Fatal("expected error for wrong password")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", apiErr.StatusCode)
	}
	// The backend's message must surface verbatim
	if apiErr.Detail != "用户名或密码错误" {
		t.Errorf("expected backend detail verbatim, got %q", apiErr.Detail)
	}

	// No token must be persisted on failure
	token, _ := store.Token(testPortal)
	if token != "" {
		t.Errorf("expected no persisted token, got %q", token)
	}
}

func TestClient_Me_WithoutToken(t *testing.T) {
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server without a token")
	}))

	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestClient_APIError_FallbackToStatusText(t *testing.T) {
	c, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>gateway exploded</html>"))
	}))

	store.SaveToken(testPortal, "tok-123")

	_, err := c.Me(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.Detail != http.StatusText(http.StatusInternalServerError) {
		t.Errorf("expected status-text fallback, got %q", apiErr.Detail)
	}
}

func TestClient_Me_SendsBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	c, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode(UserProfile{ID: 7, Role: "user", StudentID: "20250007"})
	}))

	if err := store.SaveToken(testPortal, "tok-123"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}

	profile, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if profile.ID != 7 {
		t.Errorf("expected user id 7, got %d", profile.ID)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("expected Authorization 'Bearer tok-123', got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("expected an X-Request-ID header")
	}
}

func TestClient_Logout_ClearsTokenAndUserEvenOnServerError(t *testing.T) {
	c, store, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	store.SaveToken(testPortal, "tok-123")
	store.SaveUser(testPortal, &session.User{ID: "7", Role: session.RoleUser})
	store.SaveLoginType(testPortal, session.LoginTypeUser)

	// Kill the server entirely to simulate an unreachable backend
	server.Close()

	_ = c.Logout(context.Background())

	token, _ := store.Token(testPortal)
	if token != "" {
		t.Errorf("expected token cleared, got %q", token)
	}
	user, _ := store.User(testPortal)
	if user != nil {
		t.Errorf("expected user cleared, got %+v", user)
	}
	// Login type is left for the caller, which reads it for the redirect
	kind, _ := store.LoginType(testPortal)
	if kind != session.LoginTypeUser {
		t.Errorf("expected login type untouched, got %q", kind)
	}
}

func TestClient_ToSessionUser(t *testing.T) {
	profile := UserProfile{
		ID:         42,
		Email:      "s@campus.edu",
		Name:       "Student",
		StudentID:  "20250042",
		Role:       "admin",
		IsVerified: true,
	}

	u := profile.ToSessionUser()
	if u.ID != "42" {
		t.Errorf("expected string id \"42\", got %q", u.ID)
	}
	if !u.IsAdmin() {
		t.Error("expected admin user")
	}
	if u.StudentID != "20250042" || !u.IsVerified {
		t.Errorf("unexpected projection: %+v", u)
	}
}

func TestClient_ListNotifications_QueryParams(t *testing.T) {
	var gotQuery string
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]Notification{{ID: 1, Title: "Lecture moved"}})
	}))

	createdBy := 9
	items, err := c.ListNotifications(context.Background(), ListNotificationsParams{
		CreatedBy: &createdBy,
		Skip:      20,
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Lecture moved" {
		t.Errorf("unexpected items: %+v", items)
	}

	want := "created_by=9&limit=10&skip=20"
	if gotQuery != want {
		t.Errorf("expected query %q, got %q", want, gotQuery)
	}
}

func TestClient_DeleteHandles204(t *testing.T) {
	c, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "DELETE" {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	store.SaveToken(testPortal, "tok-123")

	if err := c.DeleteLostItem(context.Background(), 3); err != nil {
		t.Fatalf("DeleteLostItem failed: %v", err)
	}
}
