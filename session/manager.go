package session

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"library-console/api"
)

// State is the authentication state of the console.
type State int

const (
	Unauthenticated State = iota
	Resolving
	Authenticated
)

func (s State) String() string {
	switch s {
	case Resolving:
		return "resolving"
	case Authenticated:
		return "authenticated"
	}
	return "unauthenticated"
}

// ErrNotAuthenticated is returned by operations that need a logged-in
// session when there is none.
var ErrNotAuthenticated = errors.New("not logged in")

// LoginResult reports how a login attempt ended.
type LoginResult struct {
	// NeedsVerification is set when the account exists but its email has
	// not been confirmed. The session stays unauthenticated.
	NeedsVerification bool
	User              *api.Profile
}

// Manager is the auth gateway: it validates stored tokens on startup,
// performs login/logout, and hands the current token to the API client.
// Transitions: Unauthenticated -> Resolving on startup-with-token or login
// attempt; Resolving -> Authenticated on profile success; Resolving ->
// Unauthenticated on any failure; Authenticated -> Unauthenticated on
// logout or a later unauthorized response (Demote).
type Manager struct {
	store *Store
	auth  *api.AuthService
	log   *logrus.Logger

	mu    sync.Mutex
	state State
	token string
	user  *api.Profile
}

// NewManager wires the gateway. It does not touch the network; call
// Resolve before relying on State.
func NewManager(store *Store, auth *api.AuthService, log *logrus.Logger) *Manager {
	return &Manager{store: store, auth: auth, log: log, state: Unauthenticated}
}

// Token implements api.TokenSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// State returns the current authentication state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns the resolved profile, nil unless Authenticated.
func (m *Manager) User() *api.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Resolve validates any stored token by fetching the profile. A failed
// fetch purges the token and reverts to Unauthenticated without surfacing
// an error; this is the only automatic invalidation path.
func (m *Manager) Resolve(ctx context.Context) error {
	token, err := m.store.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	m.setResolving(token)
	user, err := m.auth.Profile(ctx)
	if err != nil {
		m.log.WithError(err).Debug("stored token rejected, clearing session")
		m.reset()
		return m.store.Clear()
	}

	m.setAuthenticated(token, user)
	return nil
}

// Login exchanges credentials for a session. On an unverified account the
// result says so and the session stays unauthenticated; on any error the
// session is left (or put back) unauthenticated.
func (m *Manager) Login(ctx context.Context, username, password string) (LoginResult, error) {
	m.setResolving("")

	outcome, err := m.auth.Login(ctx, username, password)
	if err != nil {
		m.reset()
		return LoginResult{}, err
	}
	if outcome.NeedsVerification {
		m.reset()
		return LoginResult{NeedsVerification: true}, nil
	}

	// Hold the token so the profile fetch is authenticated, but only
	// persist once the profile confirms the token works.
	m.setResolving(outcome.Token)
	user, err := m.auth.Profile(ctx)
	if err != nil {
		m.reset()
		return LoginResult{}, err
	}
	if err := m.store.Save(outcome.Token); err != nil {
		m.reset()
		return LoginResult{}, err
	}

	m.setAuthenticated(outcome.Token, user)
	m.log.WithField("user", user.Username).Debug("logged in")
	return LoginResult{User: user}, nil
}

// Logout clears the token and user unconditionally.
func (m *Manager) Logout() error {
	m.reset()
	return m.store.Clear()
}

// Demote drops to Unauthenticated after a request came back unauthorized.
func (m *Manager) Demote() {
	m.log.Debug("authorization failure, demoting session")
	m.reset()
	_ = m.store.Clear()
}

func (m *Manager) setResolving(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Resolving
	m.token = token
	m.user = nil
}

func (m *Manager) setAuthenticated(token string, user *api.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Authenticated
	m.token = token
	m.user = user
}

func (m *Manager) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Unauthenticated
	m.token = ""
	m.user = nil
}
