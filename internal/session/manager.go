// Package session owns the authenticated user and the persisted bearer
// token. It is constructed once at startup and injected into everything
// that needs the session, never reached through a global.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nbourbon/admin-obras-sub001/internal/common"
	"github.com/nbourbon/admin-obras-sub001/internal/model"
)

// TokenStore persists the bearer token across runs.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// AuthAPI is the slice of the API client the session needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	GoogleLogin(ctx context.Context, credential string) (string, error)
	Me(ctx context.Context) (*model.User, error)
	SetToken(token string)
}

// Manager is the session store.
type Manager struct {
	store TokenStore
	api   AuthAPI
	user  *model.User
	mu    sync.RWMutex
}

// NewManager creates a session manager over the given store and API.
func NewManager(store TokenStore, api AuthAPI) *Manager {
	return &Manager{store: store, api: api}
}

// CheckAuth rehydrates the session at startup. Without a persisted
// token it resolves immediately to unauthenticated. With one, it asks
// the service who the token belongs to. Only a server-confirmed
// rejection (401/403) destroys the token; any other failure (network,
// timeout, cancellation) preserves it so the session can be retried
// later.
func (m *Manager) CheckAuth(ctx context.Context) error {
	token, err := m.store.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to read persisted token: %w", err)
	}
	if token == "" {
		return nil
	}

	m.api.SetToken(token)
	user, err := m.api.Me(ctx)
	if err != nil {
		if common.IsAuthError(err) {
			slog.Debug("Persisted session rejected by server, clearing token")
			m.api.SetToken("")
			if clearErr := m.store.ClearToken(ctx); clearErr != nil {
				return fmt.Errorf("failed to clear rejected token: %w", clearErr)
			}
			return nil
		}
		// Could not verify right now; the token stays.
		return common.NewUserError("could not verify session", err)
	}

	m.setUser(user)
	return nil
}

// Login authenticates with email and password, persists the returned
// token, and loads the user profile. Credential rejections surface as
// common.ErrInvalidCredentials.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	token, err := m.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return m.adopt(ctx, token)
}

// LoginWithGoogle authenticates with a Google ID token; same contract
// as Login, different upstream exchange.
func (m *Manager) LoginWithGoogle(ctx context.Context, credential string) error {
	token, err := m.api.GoogleLogin(ctx, credential)
	if err != nil {
		return err
	}
	return m.adopt(ctx, token)
}

func (m *Manager) adopt(ctx context.Context, token string) error {
	if err := m.store.SetToken(ctx, token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	m.api.SetToken(token)

	user, err := m.api.Me(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}
	m.setUser(user)
	return nil
}

// Logout clears the persisted token and the in-memory user. There is no
// server round trip.
func (m *Manager) Logout(ctx context.Context) error {
	m.setUser(nil)
	m.api.SetToken("")
	if err := m.store.ClearToken(ctx); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// User returns the authenticated user, nil when unauthenticated.
func (m *Manager) User() *model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// IsAuthenticated reports whether a verified user is present.
func (m *Manager) IsAuthenticated() bool {
	return m.User() != nil
}

func (m *Manager) setUser(user *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
}
