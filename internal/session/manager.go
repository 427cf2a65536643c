// Package session owns the admin authentication token lifecycle:
// login, persistent storage, logout, and change notification for every
// part of the UI that shows authentication-dependent affordances.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// AuthAPI is the slice of the API client the session manager needs.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)
	// Logout invalidates the server-side session for the current token.
	Logout(ctx context.Context) error
}

// Event describes a session state change.
type Event struct {
	Authenticated bool
}

// Manager is the single owner of session state. Components never read
// the token store directly; they go through Manager so every change is
// observed and broadcast.
type Manager struct {
	mu     sync.Mutex
	store  TokenStore
	auth   AuthAPI
	subs   []chan Event
	logger *slog.Logger
}

// NewManager creates a session manager over the given token store.
func NewManager(store TokenStore, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, logger: logger}
}

// UseAuthAPI wires the API client used for login/logout calls. Set once
// at startup; the client and manager reference each other through
// narrow interfaces, so wiring happens after both exist.
func (m *Manager) UseAuthAPI(auth AuthAPI) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auth = auth
}

// Token returns the stored session token, or "" when absent. Storage
// read failures log and report no token rather than blocking the app.
func (m *Manager) Token() string {
	token, err := m.store.Get()
	if err != nil {
		m.logger.Warn("reading session token", "error", err)
		return ""
	}
	return token
}

// IsAuthenticated reports whether a session token is present.
func (m *Manager) IsAuthenticated() bool {
	return m.Token() != ""
}

// AuthHeader returns the Authorization header value for the stored
// token. ok is false when no token is present and no header should be sent.
func (m *Manager) AuthHeader() (value string, ok bool) {
	token := m.Token()
	if token == "" {
		return "", false
	}
	return "Bearer " + token, true
}

// Login authenticates against the backend and stores the returned
// token. Exactly one session-changed event fires on success; nothing is
// stored on failure.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.mu.Lock()
	auth := m.auth
	m.mu.Unlock()
	if auth == nil {
		return fmt.Errorf("session: no auth API configured")
	}

	token, err := auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("login succeeded but no token was returned")
	}

	if err := m.store.Set(token); err != nil {
		return fmt.Errorf("storing session token: %w", err)
	}

	m.broadcast(Event{Authenticated: true})
	return nil
}

// Logout invalidates the server-side session on a best-effort basis and
// always clears the local token. Local state is the source of truth for
// whether this client is authenticated, so a failed server call never
// blocks logout.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	auth := m.auth
	m.mu.Unlock()

	if auth != nil {
		if err := auth.Logout(ctx); err != nil {
			m.logger.Warn("server-side logout failed", "error", err)
		}
	}

	m.Clear()
}

// Clear removes the stored token and broadcasts the change.
func (m *Manager) Clear() {
	if err := m.store.Delete(); err != nil {
		m.logger.Warn("clearing session token", "error", err)
	}
	m.broadcast(Event{Authenticated: false})
}

// Invalidate is the API client's hook for server-forced invalidation
// (an HTTP 401 on any call).
func (m *Manager) Invalidate() {
	m.Clear()
}

// Subscribe registers a listener for session changes. The returned
// channel is buffered; events are dropped, not blocked on, if the
// subscriber falls behind. cancel removes the subscription.
func (m *Manager) Subscribe() (events <-chan Event, cancel func()) {
	ch := make(chan Event, 4)

	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, sub := range m.subs {
			if sub == ch {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				break
			}
		}
	}
}

func (m *Manager) broadcast(ev Event) {
	m.mu.Lock()
	subs := append([]chan Event(nil), m.subs...)
	m.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
