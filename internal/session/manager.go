// Package session holds the client-side session lifecycle: one current
// identity restored from a persisted token on startup and mutated only by
// login, register and logout.
package session

import (
	"context"
	"sync"

	"github.com/medlegalmatch/auth-service/internal/api/dto"
)

// State is the session lifecycle phase.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateRestoring       State = "restoring"
	StateAuthenticated   State = "authenticated"
)

// Snapshot is an immutable view of the current session handed to observers.
type Snapshot struct {
	State State
	User  *dto.UserResponse
}

// Observer receives session snapshots after each state change.
type Observer func(Snapshot)

// Manager owns the process-wide session state. All methods are safe for
// concurrent use; observers are invoked outside the lock.
type Manager struct {
	client *APIClient
	store  TokenStore

	mu        sync.Mutex
	state     State
	user      *dto.UserResponse
	token     string
	observers []Observer
}

// NewManager starts empty (unauthenticated); call Restore or RestoreAsync to
// hydrate from a previously persisted token.
func NewManager(client *APIClient, store TokenStore) *Manager {
	return &Manager{
		client: client,
		store:  store,
		state:  StateUnauthenticated,
	}
}

// Subscribe registers an observer and immediately delivers the current state.
func (m *Manager) Subscribe(fn Observer) {
	m.mu.Lock()
	m.observers = append(m.observers, fn)
	snap := m.snapshotLocked()
	m.mu.Unlock()
	fn(snap)
}

// Snapshot returns the current session view.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Token returns the held session token, empty when unauthenticated.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Restore replays a persisted token against the server. Any failure —
// expired, invalid or network — discards the token and settles the session
// in the unauthenticated state.
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.store.Load()
	if err != nil || token == "" {
		m.transition(StateUnauthenticated, nil, "")
		return err
	}

	m.transition(StateRestoring, nil, token)

	user, err := m.client.Me(ctx, token)
	if err != nil {
		_ = m.store.Clear()
		m.transition(StateUnauthenticated, nil, "")
		return err
	}

	m.transition(StateAuthenticated, user, token)
	return nil
}

// RestoreAsync hydrates in the background so startup rendering is never
// blocked; observers see the restoring and settled states as they happen.
func (m *Manager) RestoreAsync(ctx context.Context) {
	go func() {
		_ = m.Restore(ctx)
	}()
}

// Login authenticates and persists the returned token. On failure the prior
// session state is left untouched and the error propagates to the caller.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	resp, err := m.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	_ = m.store.Save(resp.Token)
	m.transition(StateAuthenticated, &resp.User, resp.Token)
	return nil
}

// Register creates an account, passing the full role-specific payload
// through unmodified, with the same success/failure contract as Login.
func (m *Manager) Register(ctx context.Context, payload dto.RegisterRequest) error {
	resp, err := m.client.Register(ctx, payload)
	if err != nil {
		return err
	}

	_ = m.store.Save(resp.Token)
	m.transition(StateAuthenticated, &resp.User, resp.Token)
	return nil
}

// Logout clears the in-memory identity and discards the persisted token.
// It never calls the server; a stateless token cannot be invalidated there.
func (m *Manager) Logout() {
	_ = m.store.Clear()
	m.transition(StateUnauthenticated, nil, "")
}

func (m *Manager) transition(state State, user *dto.UserResponse, token string) {
	m.mu.Lock()
	m.state = state
	m.user = user
	m.token = token
	observers := append([]Observer{}, m.observers...)
	snap := m.snapshotLocked()
	m.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{State: m.state, User: m.user}
}
