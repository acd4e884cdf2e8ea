package session

import "sync"

// MemoryStore is an in-memory Store used in tests and anywhere keyring
// access is unavailable (e.g. headless CI).
type MemoryStore struct {
	mu     sync.Mutex
	tokens map[string]string
	users  map[string]*User
	kinds  map[string]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens: make(map[string]string),
		users:  make(map[string]*User),
		kinds:  make(map[string]string),
	}
}

func (m *MemoryStore) SaveToken(portal, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[portal] = token
	return nil
}

func (m *MemoryStore) Token(portal string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens[portal], nil
}

func (m *MemoryStore) DeleteToken(portal string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, portal)
	return nil
}

func (m *MemoryStore) SaveUser(portal string, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[portal] = user
	return nil
}

func (m *MemoryStore) User(portal string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[portal], nil
}

func (m *MemoryStore) DeleteUser(portal string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, portal)
	return nil
}

func (m *MemoryStore) SaveLoginType(portal, kind string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kinds[portal] = kind
	return nil
}

func (m *MemoryStore) LoginType(portal string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.kinds[portal], nil
}

func (m *MemoryStore) DeleteLoginType(portal string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.kinds, portal)
	return nil
}

func (m *MemoryStore) Clear(portal string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, portal)
	delete(m.users, portal)
	delete(m.kinds, portal)
	return nil
}
