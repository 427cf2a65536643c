package session

import "sync"

// TokenStore is the persistent home of the admin session token.
// Implementations must treat a missing token as ("", nil), not an error.
type TokenStore interface {
	Get() (string, error)
	Set(token string) error
	Delete() error
}

// MemoryStore is an in-process TokenStore used in tests and as a
// fallback when no system keyring backend is available.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
