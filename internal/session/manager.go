// Package session owns the authentication lifecycle: the current user, the
// startup loading flag, and the last auth error.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ganot/rosterdesk/internal/identity"
	"github.com/ganot/rosterdesk/internal/localstore"
)

// UserKey is the store key holding the cached user snapshot. The snapshot is
// a non-authoritative fallback for the window before the provider resolves.
const UserKey = "user"

// Session is a point-in-time view of the auth state.
type Session struct {
	User      *identity.User `json:"user,omitempty"`
	Loading   bool           `json:"loading"`
	LastError string         `json:"last_error,omitempty"`
}

// Authenticated reports whether a user is signed in.
func (s Session) Authenticated() bool {
	return s.User != nil
}

// Manager reconciles the provider's auth-state stream with the cached user
// snapshot. One instance exists per process; consumers get it injected.
type Manager struct {
	provider identity.Provider
	store    *localstore.Store
	logger   *slog.Logger

	mu          sync.Mutex
	user        *identity.User
	loading     bool
	lastError   string
	closed      bool
	next        int
	subs        map[int]func(Session)
	unsubscribe func()
}

// New creates a Manager and hydrates it: it subscribes to the provider, then
// consults the cached snapshot as a fallback. Loading is true only inside
// this call; it is permanently false by the time New returns. A provider
// emission is authoritative and overwrites the fallback whenever it arrives.
func New(provider identity.Provider, store *localstore.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := &Manager{
		provider: provider,
		store:    store,
		logger:   logger,
		loading:  true,
		subs:     map[int]func(Session){},
	}

	m.unsubscribe = provider.Subscribe(m.onChange, m.onError)

	m.mu.Lock()
	if m.loading {
		var cached identity.User
		if store.Get(UserKey, &cached) {
			m.user = &cached
		}
		m.loading = false
	}
	subs := m.subscriberList()
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	notify(subs, snapshot)
	return m
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe registers fn to run on every session transition and returns a
// release function.
func (m *Manager) Subscribe(fn func(Session)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.next
	m.next++
	m.subs[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// SignUp registers a new account. The signed-in user arrives through the
// provider's state stream, not through this call. Failures are recorded in
// the session's error slot and returned.
func (m *Manager) SignUp(ctx context.Context, email, password string) error {
	m.clearError()

	if _, err := m.provider.CreateAccount(ctx, email, password); err != nil {
		m.setError(err)
		return err
	}
	return nil
}

// SignIn verifies credentials and returns the resolved identity. The state
// stream also emits it, which persists the snapshot.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*identity.User, error) {
	m.clearError()

	user, err := m.provider.VerifyCredentials(ctx, email, password)
	if err != nil {
		m.setError(err)
		return nil, err
	}
	return user, nil
}

// SignOut ends the session. The state stream emits the absent user.
func (m *Manager) SignOut(ctx context.Context) error {
	m.clearError()

	if err := m.provider.SignOut(ctx); err != nil {
		m.setError(err)
		return err
	}
	return nil
}

// Close releases the provider subscription. Provider callbacks arriving
// after Close are discarded.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	unsubscribe := m.unsubscribe
	m.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (m *Manager) onChange(user *identity.User) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}

	m.user = user
	m.loading = false
	if user != nil {
		m.store.Set(UserKey, user)
	} else {
		m.store.Remove(UserKey)
	}
	subs := m.subscriberList()
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	notify(subs, snapshot)
}

func (m *Manager) onError(err error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}

	m.logger.Error("auth state error", "error", err)
	m.lastError = err.Error()
	subs := m.subscriberList()
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	notify(subs, snapshot)
}

func (m *Manager) clearError() {
	m.mu.Lock()
	m.lastError = ""
	subs := m.subscriberList()
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	notify(subs, snapshot)
}

func (m *Manager) setError(err error) {
	m.mu.Lock()
	m.lastError = err.Error()
	subs := m.subscriberList()
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	notify(subs, snapshot)
}

func (m *Manager) snapshotLocked() Session {
	return Session{User: m.user, Loading: m.loading, LastError: m.lastError}
}

func (m *Manager) subscriberList() []func(Session) {
	subs := make([]func(Session), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func(Session), snapshot Session) {
	for _, fn := range subs {
		fn(snapshot)
	}
}
