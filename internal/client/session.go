package client

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/jobdeck/jobdeck/internal/logging"
	"github.com/jobdeck/jobdeck/types"
)

// Listener is notified on every authentication transition. A non-nil
// user means a session was established; nil means it ended.
type Listener func(user *types.User)

// SessionManager owns the current authenticated identity. It delegates
// credential checks to the backend, persists a session marker across
// restarts within the browsing-session lifetime, and notifies
// registered listeners on every transition.
//
// State machine: Unauthenticated -> (Login|Signup success) ->
// Authenticated -> (Logout) -> Unauthenticated. Restore may transition
// Unauthenticated -> Authenticated once at startup.
type SessionManager struct {
	api   API
	cache *SessionCache
	log   logging.Logger

	mu        sync.Mutex
	user      *types.User
	listeners []Listener
}

func NewSessionManager(api API, cache *SessionCache, log logging.Logger) *SessionManager {
	return &SessionManager{api: api, cache: cache, log: log}
}

// OnChange registers a listener for authentication transitions.
// Listeners are invoked synchronously, outside the manager's lock.
func (m *SessionManager) OnChange(fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Current returns the authenticated identity, if any.
func (m *SessionManager) Current() (types.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return types.User{}, false
	}
	return *m.user, true
}

// Login checks credentials against the backend. On success the session
// is established and persisted; on any failure no session is
// established and false is returned.
func (m *SessionManager) Login(ctx context.Context, email, password string) bool {
	user, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.log.Warn(ctx, "login failed", "email", email, "error", err)
		return false
	}
	m.establish(ctx, user)
	return true
}

// Signup registers a new identity. On success it behaves like a
// successful login with the new identity; a taken email or any other
// failure returns false with no session established.
func (m *SessionManager) Signup(ctx context.Context, name, email, password, dob string) bool {
	user, err := m.api.Signup(ctx, name, email, password, dob)
	if err != nil {
		m.log.Warn(ctx, "signup failed", "email", email, "error", err)
		return false
	}
	m.establish(ctx, user)
	return true
}

// Logout destroys the current session, removes the persisted marker,
// and signals listeners to discard dependent state.
func (m *SessionManager) Logout() {
	ctx := context.Background()
	if err := m.cache.Clear(); err != nil {
		m.log.Warn(ctx, "session marker removal failed", "error", err)
	}

	m.mu.Lock()
	m.user = nil
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(nil)
	}
}

// Restore re-establishes a session from a previously persisted marker.
// Invoked once at startup. A marker that fails to load is discarded and
// the client starts unauthenticated; this is fail-safe, not fatal.
func (m *SessionManager) Restore(ctx context.Context) {
	user, err := m.cache.Load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			m.log.Warn(ctx, "discarding unreadable session marker", "error", err)
			if clearErr := m.cache.Clear(); clearErr != nil {
				m.log.Warn(ctx, "session marker removal failed", "error", clearErr)
			}
		}
		return
	}

	m.mu.Lock()
	m.user = &user
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	m.log.Info(ctx, "session restored", "userId", user.ID)
	for _, fn := range listeners {
		u := user
		fn(&u)
	}
}

// establish records the identity, persists the marker, and notifies
// listeners. A marker write failure is logged but does not tear the
// session down: the in-memory session remains authoritative.
func (m *SessionManager) establish(ctx context.Context, user types.User) {
	if err := m.cache.Save(user); err != nil {
		m.log.Warn(ctx, "session marker save failed", "error", err)
	}

	m.mu.Lock()
	m.user = &user
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		u := user
		fn(&u)
	}
}
