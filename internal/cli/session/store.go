package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "unilife-cli"
	stateFileName  = "session.json"
)

// Store defines the persisted session operations, scoped per portal.
// This allows the keyring-backed store to be swapped for an in-memory
// fake in tests.
//
// The store is untyped persistence only: it never enforces that token and
// user are consistent with each other. That invariant is owned by the
// session manager, which writes and clears them together.
type Store interface {
	SaveToken(portal, token string) error
	Token(portal string) (string, error)
	DeleteToken(portal string) error

	SaveUser(portal string, user *User) error
	// User returns the cached user, or nil when absent. A corrupt state
	// file is deleted and reported as absent, never as an error.
	User(portal string) (*User, error)
	DeleteUser(portal string) error

	SaveLoginType(portal, kind string) error
	LoginType(portal string) (string, error)
	DeleteLoginType(portal string) error

	// Clear removes token, user and login type together
	Clear(portal string) error
}

// portalState is the per-portal slice of the state file
type portalState struct {
	User      *User  `json:"user,omitempty"`
	LoginType string `json:"loginType,omitempty"`
}

// stateFile is the on-disk shape of the session state file
type stateFile struct {
	Portals map[string]portalState `json:"portals"`
}

// FileStore persists the bearer token in the OS keychain/credential manager
// and the cached user + login type in a JSON state file.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing its state file at the given path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// getKeyringKey returns a unique key for storing tokens per portal
func getKeyringKey(portal string) string {
	return fmt.Sprintf("token-%s", portal)
}

// SaveToken persists the bearer token securely in the OS keychain/credential manager
func (s *FileStore) SaveToken(portal, token string) error {
	if err := keyring.Set(keyringService, getKeyringKey(portal), token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Token retrieves the bearer token. A missing token is returned as an
// empty string without error; the caller decides whether that means
// "not logged in" or "run unilife login".
func (s *FileStore) Token(portal string) (string, error) {
	token, err := keyring.Get(keyringService, getKeyringKey(portal))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

// DeleteToken removes the bearer token from the OS keychain/credential manager
func (s *FileStore) DeleteToken(portal string) error {
	if err := keyring.Delete(keyringService, getKeyringKey(portal)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// SaveUser persists the cached user projection
func (s *FileStore) SaveUser(portal string, user *User) error {
	return s.update(portal, func(ps *portalState) {
		ps.User = user
	})
}

// User returns the cached user projection, or nil when absent
func (s *FileStore) User(portal string) (*User, error) {
	state := s.read()
	ps, ok := state.Portals[portal]
	if !ok {
		return nil, nil
	}
	return ps.User, nil
}

// DeleteUser removes the cached user projection
func (s *FileStore) DeleteUser(portal string) error {
	return s.update(portal, func(ps *portalState) {
		ps.User = nil
	})
}

// SaveLoginType records which login surface was used ("admin" or "user")
func (s *FileStore) SaveLoginType(portal, kind string) error {
	return s.update(portal, func(ps *portalState) {
		ps.LoginType = kind
	})
}

// LoginType returns the remembered login surface, or empty when absent
func (s *FileStore) LoginType(portal string) (string, error) {
	state := s.read()
	return state.Portals[portal].LoginType, nil
}

// DeleteLoginType removes the remembered login surface
func (s *FileStore) DeleteLoginType(portal string) error {
	return s.update(portal, func(ps *portalState) {
		ps.LoginType = ""
	})
}

// Clear removes token, user and login type for the portal together
func (s *FileStore) Clear(portal string) error {
	if err := s.DeleteToken(portal); err != nil {
		return err
	}
	return s.update(portal, func(ps *portalState) {
		*ps = portalState{}
	})
}

// Path returns the state file location, used by the session watcher
func (s *FileStore) Path() string {
	return s.path
}

// read loads the state file. Any failure (missing file, unreadable file,
// corrupt JSON) degrades to an empty state; corrupt files are deleted so
// they cannot wedge every subsequent run.
func (s *FileStore) read() stateFile {
	state := stateFile{Portals: map[string]portalState{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return state
	}

	if err := json.Unmarshal(data, &state); err != nil {
		// Corrupt state must never crash startup
		_ = os.Remove(s.path)
		return stateFile{Portals: map[string]portalState{}}
	}

	if state.Portals == nil {
		state.Portals = map[string]portalState{}
	}
	return state
}

func (s *FileStore) update(portal string, fn func(*portalState)) error {
	state := s.read()

	ps := state.Portals[portal]
	fn(&ps)
	if ps == (portalState{}) {
		delete(state.Portals, portal)
	} else {
		state.Portals[portal] = ps
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session state: %w", err)
	}

	return nil
}
