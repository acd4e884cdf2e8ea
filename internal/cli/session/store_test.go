package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zalando/go-keyring"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestFileStore_UserRoundTrip(t *testing.T) {
	store := newTestFileStore(t)

	user := &User{
		ID:        "42",
		StudentID: "20250042",
		Email:     "student@campus.edu",
		Name:      "Test Student",
		Role:      RoleUser,
	}

	if err := store.SaveUser("portal.campus.edu", user); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	got, err := store.User("portal.campus.edu")
	if err != nil {
		t.Fatalf("User failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected user, got nil")
	}
	if got.ID != "42" || got.Role != RoleUser || got.StudentID != "20250042" {
		t.Errorf("unexpected user: %+v", got)
	}

	// A different portal must not see it
	other, err := store.User("other.campus.edu")
	if err != nil {
		t.Fatalf("User failed: %v", err)
	}
	if other != nil {
		t.Errorf("expected nil user for other portal, got %+v", other)
	}
}

func TestFileStore_MissingStateFile(t *testing.T) {
	store := newTestFileStore(t)

	user, err := store.User("portal.campus.edu")
	if err != nil {
		t.Fatalf("User failed: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user, got %+v", user)
	}

	kind, err := store.LoginType("portal.campus.edu")
	if err != nil {
		t.Fatalf("LoginType failed: %v", err)
	}
	if kind != "" {
		t.Errorf("expected empty login type, got %q", kind)
	}
}

func TestFileStore_CorruptStateFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "truncated json", content: `{"portals": {"p": {"user"`},
		{name: "not json at all", content: "definitely not json"},
		{name: "wrong shape", content: `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestFileStore(t)
			if err := os.WriteFile(store.Path(), []byte(tt.content), 0600); err != nil {
				t.Fatalf("failed to write corrupt state: %v", err)
			}

			user, err := store.User("portal.campus.edu")
			if err != nil {
				t.Fatalf("User should not fail on corrupt state: %v", err)
			}
			if user != nil {
				t.Errorf("expected nil user from corrupt state, got %+v", user)
			}

			// The corrupt file must be removed so it cannot wedge later runs
			if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
				t.Error("expected corrupt state file to be removed")
			}
		})
	}
}

func TestFileStore_LoginTypeRoundTrip(t *testing.T) {
	store := newTestFileStore(t)

	if err := store.SaveLoginType("portal.campus.edu", LoginTypeAdmin); err != nil {
		t.Fatalf("SaveLoginType failed: %v", err)
	}

	kind, err := store.LoginType("portal.campus.edu")
	if err != nil {
		t.Fatalf("LoginType failed: %v", err)
	}
	if kind != LoginTypeAdmin {
		t.Errorf("expected %q, got %q", LoginTypeAdmin, kind)
	}

	if err := store.DeleteLoginType("portal.campus.edu"); err != nil {
		t.Fatalf("DeleteLoginType failed: %v", err)
	}

	kind, _ = store.LoginType("portal.campus.edu")
	if kind != "" {
		t.Errorf("expected empty login type after delete, got %q", kind)
	}
}

func TestFileStore_TokenRoundTrip(t *testing.T) {
	keyring.MockInit()
	store := newTestFileStore(t)

	token, err := store.Token("portal.campus.edu")
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if token != "" {
		t.Errorf("expected empty token before login, got %q", token)
	}

	if err := store.SaveToken("portal.campus.edu", "bearer-abc"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}

	token, err = store.Token("portal.campus.edu")
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if token != "bearer-abc" {
		t.Errorf("expected token %q, got %q", "bearer-abc", token)
	}

	if err := store.DeleteToken("portal.campus.edu"); err != nil {
		t.Fatalf("DeleteToken failed: %v", err)
	}
	// Deleting again is a no-op, not an error
	if err := store.DeleteToken("portal.campus.edu"); err != nil {
		t.Fatalf("second DeleteToken failed: %v", err)
	}
}

func TestFileStore_ClearRemovesTokenUserAndLoginType(t *testing.T) {
	keyring.MockInit()
	store := newTestFileStore(t)

	if err := store.SaveToken("portal.campus.edu", "bearer-abc"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}

	if err := store.SaveUser("portal.campus.edu", &User{ID: "1", Role: RoleUser}); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}
	if err := store.SaveLoginType("portal.campus.edu", LoginTypeUser); err != nil {
		t.Fatalf("SaveLoginType failed: %v", err)
	}

	if err := store.Clear("portal.campus.edu"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	token, _ := store.Token("portal.campus.edu")
	if token != "" {
		t.Errorf("expected empty token after Clear, got %q", token)
	}
	user, _ := store.User("portal.campus.edu")
	if user != nil {
		t.Errorf("expected nil user after Clear, got %+v", user)
	}
	kind, _ := store.LoginType("portal.campus.edu")
	if kind != "" {
		t.Errorf("expected empty login type after Clear, got %q", kind)
	}
}

func TestFileStore_PersistedShapeIsClientSide(t *testing.T) {
	store := newTestFileStore(t)

	user := &User{ID: "7", StudentID: "20250007", Name: "Shape Check", Role: RoleUser, IsVerified: true}
	if err := store.SaveUser("portal.campus.edu", user); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("failed to read state file: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("state file is not valid JSON: %v", err)
	}

	// The cached projection uses camelCase keys, not the wire's snake_case
	text := string(data)
	for _, want := range []string{`"studentId"`, `"isVerified"`} {
		if !strings.Contains(text, want) {
			t.Errorf("expected state file to contain %s, got: %s", want, text)
		}
	}
	if strings.Contains(text, `"student_id"`) {
		t.Errorf("state file must not use wire field names: %s", text)
	}
}

func TestWatcher_FiresOnExternalWrite(t *testing.T) {
	keyring.MockInit()
	store := newTestFileStore(t)
	if err := store.SaveUser("portal.campus.edu", &User{ID: "1", Role: RoleUser}); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	watcher := NewWatcher(store.Path(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 1)
	go watcher.Run(ctx, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	// Give the watcher time to take its baseline
	time.Sleep(50 * time.Millisecond)

	// Simulate another process logging out
	if err := store.Clear("portal.campus.edu"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not observe external state change")
	}
}
