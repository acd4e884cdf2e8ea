package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/unilife-dev/unilife/internal/cli/client"
	"github.com/unilife-dev/unilife/internal/cli/session"
)

// ErrWrongAccountType is returned when credentials are valid but the
// account's role does not match the login surface that was used. The
// backend issues a session regardless of which surface the user picked,
// so the client must reject the technically-valid-but-wrong-context one.
var ErrWrongAccountType = errors.New("wrong account type")

// Event is broadcast to subscribers whenever the in-memory session changes
type Event struct {
	User *session.User
}

// Snapshot is a point-in-time view of the session, consumed by the view gate
type Snapshot struct {
	User    *session.User
	Loading bool
}

// Manager is the single in-memory source of truth for "who is logged in".
// It initializes from the persisted store, mirrors every change back into
// it, and notifies subscribers so concurrent consumers converge.
type Manager struct {
	portal string
	store  session.Store
	api    *client.Client
	log    zerolog.Logger

	mu      sync.Mutex
	user    *session.User
	loading bool

	subMu  sync.Mutex
	subs   map[int]chan Event
	nextID int
}

// New creates a manager and synchronously loads the cached user from the
// store. An absent or corrupt persisted user reads as logged out.
func New(portal string, store session.Store, api *client.Client, log zerolog.Logger) *Manager {
	user, err := store.User(portal)
	if err != nil {
		user = nil
	}

	return &Manager{
		portal: portal,
		store:  store,
		api:    api,
		log:    log,
		user:   user,
		subs:   make(map[int]chan Event),
	}
}

// CurrentUser returns the in-memory user, or nil when logged out
func (m *Manager) CurrentUser() *session.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// IsAuthenticated reports whether a user is logged in
func (m *Manager) IsAuthenticated() bool {
	return m.CurrentUser() != nil
}

// IsLoading reports whether a login call is in flight
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Snapshot returns the current session state for gate evaluation
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{User: m.user, Loading: m.loading}
}

// Login authenticates against the portal and, on success, checks the
// account's role against the login surface: an admin login requires the
// admin role, a student login requires the user role. A mismatch revokes
// the just-issued session entirely and returns ErrWrongAccountType. Other
// failures propagate so the caller can keep its input and show the error.
// On accepted login the role's home target is returned ("/admin" or "/home").
func (m *Manager) Login(ctx context.Context, username, password string, asAdmin bool) (string, error) {
	m.setLoading(true)
	defer m.setLoading(false)

	resp, err := m.api.Login(ctx, username, password, asAdmin)
	if err != nil {
		return "", err
	}

	role := resp.User.Role
	if (asAdmin && role != session.RoleAdmin) || (!asAdmin && role != session.RoleUser) {
		if err := m.store.Clear(m.portal); err != nil {
			m.log.Warn().Err(err).Msg("failed to clear revoked session")
		}
		m.setUser(nil)

		if asAdmin {
			return "", fmt.Errorf("%w: this account is not an admin account", ErrWrongAccountType)
		}
		return "", fmt.Errorf("%w: this account is not a student account", ErrWrongAccountType)
	}

	user := resp.User.ToSessionUser()
	if err := m.store.SaveUser(m.portal, user); err != nil {
		return "", fmt.Errorf("failed to persist session: %w", err)
	}
	m.setUser(user)

	m.log.Debug().Str("user", user.Name).Str("role", user.Role).Msg("login accepted")

	if asAdmin {
		return RouteAdminHome, nil
	}
	return RouteHome, nil
}

// Logout clears the session and returns the redirect target: redirectTo
// when given, otherwise the login surface matching the remembered login
// type. The portal logout call is best-effort; logout never fails from the
// caller's point of view.
func (m *Manager) Logout(ctx context.Context, redirectTo string) string {
	kind, err := m.store.LoginType(m.portal)
	if err != nil {
		kind = ""
	}

	target := redirectTo
	if target == "" {
		if kind == session.LoginTypeAdmin {
			target = RouteAdminLogin
		} else {
			target = RouteLogin
		}
	}

	if err := m.api.Logout(ctx); err != nil {
		m.log.Warn().Err(err).Msg("portal logout failed; clearing local session anyway")
	}
	if err := m.store.DeleteLoginType(m.portal); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear login type")
	}

	m.setUser(nil)

	return target
}

// RefreshUser overwrites the cached user with the portal's canonical
// profile. Failures are logged, never surfaced; the cached user stays.
func (m *Manager) RefreshUser(ctx context.Context) {
	profile, err := m.api.Me(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("failed to refresh user")
		return
	}

	user := profile.ToSessionUser()
	if err := m.store.SaveUser(m.portal, user); err != nil {
		m.log.Warn().Err(err).Msg("failed to persist refreshed user")
	}
	m.setUser(user)
}

// Bootstrap validates the persisted session before commands run. The
// stored token's exp claim is screened locally (no signature check; that is
// the backend's job) and an expired token clears the session. With
// verifyOnline the token is also confirmed against the portal, and a
// 401/403 clears the session; transport failures keep the cached session
// so the CLI stays usable offline.
func (m *Manager) Bootstrap(ctx context.Context, verifyOnline bool) {
	token, err := m.store.Token(m.portal)
	if err != nil || token == "" {
		if m.CurrentUser() != nil {
			// A cached user without a token is leftover inconsistent
			// state; drop it rather than pretend to be logged in.
			if err := m.store.DeleteUser(m.portal); err != nil {
				m.log.Warn().Err(err).Msg("failed to drop orphaned user")
			}
			m.setUser(nil)
		}
		return
	}

	if tokenExpired(token) {
		m.revoke("stored token is expired")
		return
	}

	if verifyOnline {
		if _, err := m.api.Me(ctx); err != nil {
			if client.IsAuthError(err) {
				m.revoke("portal rejected stored token")
			} else {
				m.log.Debug().Err(err).Msg("skipping online token check")
			}
		}
	}
}

// tokenExpired screens a JWT's exp claim without verifying its signature.
// Opaque or claim-less tokens pass the screen; the portal remains the
// authority on their validity.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func (m *Manager) revoke(reason string) {
	m.log.Info().Msg(reason + "; signing out")
	if err := m.store.Clear(m.portal); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear session")
	}
	m.setUser(nil)
}

// Subscribe returns a channel receiving an Event after every session
// change, plus a cancel function. Slow subscribers drop events rather than
// block session operations.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextID
	m.nextID++
	ch := make(chan Event, 4)
	m.subs[id] = ch

	cancel := func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		if sub, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(sub)
		}
	}

	return ch, cancel
}

// Watch converges this process with session changes made by other unilife
// processes: it polls the store's state file and re-reads the session when
// it changes. Only file-backed stores have cross-process state to watch.
func (m *Manager) Watch(ctx context.Context, interval time.Duration) {
	fs, ok := m.store.(*session.FileStore)
	if !ok {
		return
	}

	watcher := session.NewWatcher(fs.Path(), interval)
	go watcher.Run(ctx, m.reload)
}

// reload re-reads the persisted user after an external change
func (m *Manager) reload() {
	user, err := m.store.User(m.portal)
	if err != nil {
		user = nil
	}
	m.setUser(user)
}

func (m *Manager) setUser(user *session.User) {
	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	m.notify(user)
}

func (m *Manager) setLoading(loading bool) {
	m.mu.Lock()
	m.loading = loading
	m.mu.Unlock()
}

func (m *Manager) notify(user *session.User) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	for _, ch := range m.subs {
		select {
		case ch <- Event{User: user}:
		default:
		}
	}
}
