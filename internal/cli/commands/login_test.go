package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"

	"github.com/unilife-dev/unilife/internal/cli/config"
)

// setupTestEnvironment creates a temporary directory with a test config and
// points HOME at it so user-level state stays inside the test
func setupTestEnvironment(t *testing.T, portals []config.Portal) (string, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "unilife-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	cfg := config.Config{Portals: portals}
	cfgData, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal config: %v", err)
	}

	cfgPath := filepath.Join(tempDir, config.ConfigFileName)
	if err := os.WriteFile(cfgPath, cfgData, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}

	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)

	cleanup := func() {
		os.Setenv("HOME", originalHome)
		os.Chdir(originalDir)
		os.RemoveAll(tempDir)
	}

	return tempDir, cleanup
}

// mockPortalServer serves the login endpoint for a single known account
func mockPortalServer(t *testing.T, username, password, role string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != "POST" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if req.Username != username || req.Password != password {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "incorrect username or password"}`))
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-token-abc",
			"token_type":   "bearer",
			"user": map[string]interface{}{
				"id":          7,
				"email":       "test@campus.edu",
				"name":        "Test Student",
				"student_id":  "20250107",
				"role":        role,
				"is_active":   true,
				"is_verified": true,
			},
		})
	}))
}

func newTestCommand() *cobra.Command {
	cmd := NewLoginCmd()
	cmd.SetContext(context.Background())
	return cmd
}

func TestLoginCommand_MissingUsername(t *testing.T) {
	_, cleanup := setupTestEnvironment(t, []config.Portal{
		{Alias: "campus", URL: "http://127.0.0.1:1"},
	})
	defer cleanup()

	t.Setenv("UNILIFE_USERNAME", "")
	t.Setenv("UNILIFE_PASSWORD", "")

	err := runLogin(newTestCommand(), "", "password123", "", false)
	if err == nil {
		t.Fatal("expected error when username is missing, got nil")
	}

	expected := "username is required (use --username flag or UNILIFE_USERNAME env var)"
	if err.Error() != expected {
		t.Errorf("expected error %q, got %q", expected, err.Error())
	}
}

func TestLoginCommand_NoConfigFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "unilife-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	originalDir, _ := os.Getwd()
	os.Chdir(tempDir)
	defer os.Chdir(originalDir)

	t.Setenv("UNILIFE_PORTAL_URL", "")

	err = runLogin(newTestCommand(), "test@campus.edu", "password123", "", false)
	if err == nil {
		t.Fatal("expected error when config file is missing, got nil")
	}
	if !strings.HasPrefix(err.Error(), "failed to load config:") {
		t.Errorf("expected error to start with 'failed to load config:', got %q", err.Error())
	}
}

func TestLoginCommand_EmptyPortalURL(t *testing.T) {
	_, cleanup := setupTestEnvironment(t, []config.Portal{
		{Alias: "campus", URL: ""},
	})
	defer cleanup()

	err := runLogin(newTestCommand(), "test@campus.edu", "password123", "", false)
	if err == nil {
		t.Fatal("expected error when portal URL is empty, got nil")
	}

	expected := "portal URL is empty. Please edit unilife.json and add a valid portal URL"
	if err.Error() != expected {
		t.Errorf("expected error %q, got %q", expected, err.Error())
	}
}

func TestLoginCommand_SuccessfulLogin(t *testing.T) {
	keyring.MockInit()

	mockServer := mockPortalServer(t, "test@campus.edu", "password123", "user")
	defer mockServer.Close()

	_, cleanup := setupTestEnvironment(t, []config.Portal{
		{Alias: "campus", URL: mockServer.URL},
	})
	defer cleanup()

	err := runLogin(newTestCommand(), "test@campus.edu", "password123", "", false)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
}

func TestLoginCommand_EnvVarCredentials(t *testing.T) {
	keyring.MockInit()

	mockServer := mockPortalServer(t, "env@campus.edu", "envpass", "user")
	defer mockServer.Close()

	_, cleanup := setupTestEnvironment(t, []config.Portal{
		{Alias: "campus", URL: mockServer.URL},
	})
	defer cleanup()

	t.Setenv("UNILIFE_USERNAME", "env@campus.edu")
	t.Setenv("UNILIFE_PASSWORD", "envpass")

	err := runLogin(newTestCommand(), "", "", "", false)
	if err != nil {
		t.Fatalf("expected credentials to come from env vars, got error: %v", err)
	}
}

func TestLoginCommand_AdminSurfaceRejectsStudentAccount(t *testing.T) {
	keyring.MockInit()

	mockServer := mockPortalServer(t, "test@campus.edu", "password123", "user")
	defer mockServer.Close()

	_, cleanup := setupTestEnvironment(t, []config.Portal{
		{Alias: "campus", URL: mockServer.URL},
	})
	defer cleanup()

	err := runLogin(newTestCommand(), "test@campus.edu", "password123", "", true)
	if err == nil {
		t.Fatal("expected role mismatch error, got nil")
	}
	if !strings.Contains(err.Error(), "not an admin account") {
		t.Errorf("expected role mismatch message, got %q", err.Error())
	}
}

func TestLoginCommand_BadCredentials(t *testing.T) {
	keyring.MockInit()

	mockServer := mockPortalServer(t, "test@campus.edu", "password123", "user")
	defer mockServer.Close()

	_, cleanup := setupTestEnvironment(t, []config.Portal{
		{Alias: "campus", URL: mockServer.URL},
	})
	defer cleanup()

	err := runLogin(newTestCommand(), "test@campus.edu", "wrong-password", "", false)
	if err == nil {
		t.Fatal("expected error for bad credentials, got nil")
	}
	if !strings.Contains(err.Error(), "incorrect username or password") {
		t.Errorf("expected backend rejection message, got %q", err.Error())
	}
}
