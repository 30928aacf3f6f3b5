package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbourbon/admin-obras-sub001/internal/common"
	"github.com/nbourbon/admin-obras-sub001/internal/model"
)

type fakeStore struct {
	token string
}

func (f *fakeStore) Token(_ context.Context) (string, error)          { return f.token, nil }
func (f *fakeStore) SetToken(_ context.Context, token string) error   { f.token = token; return nil }
func (f *fakeStore) ClearToken(_ context.Context) error               { f.token = ""; return nil }

type fakeAPI struct {
	meErr      error
	loginErr   error
	user       *model.User
	loginToken string
	token      string
	meCalls    int
}

func (f *fakeAPI) Login(_ context.Context, _, _ string) (string, error) {
	return f.loginToken, f.loginErr
}

func (f *fakeAPI) GoogleLogin(_ context.Context, _ string) (string, error) {
	return f.loginToken, f.loginErr
}

func (f *fakeAPI) Me(_ context.Context) (*model.User, error) {
	f.meCalls++
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.user, nil
}

func (f *fakeAPI) SetToken(token string) { f.token = token }

func TestCheckAuthNoTokenResolvesUnauthenticated(t *testing.T) {
	api := &fakeAPI{}
	m := NewManager(&fakeStore{}, api)

	require.NoError(t, m.CheckAuth(context.Background()))
	assert.False(t, m.IsAuthenticated())
	assert.Zero(t, api.meCalls, "no who-am-i call without a token")
}

func TestCheckAuthValidTokenLoadsUser(t *testing.T) {
	store := &fakeStore{token: "tok-1"}
	api := &fakeAPI{user: &model.User{ID: 3, Email: "ana@example.com"}}
	m := NewManager(store, api)

	require.NoError(t, m.CheckAuth(context.Background()))
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "ana@example.com", m.User().Email)
	assert.Equal(t, "tok-1", api.token)
}

func TestCheckAuthServerRejectionClearsToken(t *testing.T) {
	for _, status := range []int{401, 403} {
		store := &fakeStore{token: "stale"}
		api := &fakeAPI{meErr: &common.APIError{StatusCode: status}}
		m := NewManager(store, api)

		require.NoError(t, m.CheckAuth(context.Background()))
		assert.False(t, m.IsAuthenticated())
		assert.Empty(t, store.token, "status %d must destroy the session", status)
	}
}

func TestCheckAuthTransientFailurePreservesToken(t *testing.T) {
	store := &fakeStore{token: "tok-1"}
	api := &fakeAPI{meErr: errors.New("dial tcp: i/o timeout")}
	m := NewManager(store, api)

	err := m.CheckAuth(context.Background())
	require.Error(t, err)
	assert.False(t, m.IsAuthenticated())
	assert.Equal(t, "tok-1", store.token, "transient failures must not destroy the session")
}

func TestCheckAuthServerErrorPreservesToken(t *testing.T) {
	store := &fakeStore{token: "tok-1"}
	api := &fakeAPI{meErr: &common.APIError{StatusCode: 500}}
	m := NewManager(store, api)

	require.Error(t, m.CheckAuth(context.Background()))
	assert.Equal(t, "tok-1", store.token)
}

func TestLoginPersistsTokenAndLoadsProfile(t *testing.T) {
	store := &fakeStore{}
	api := &fakeAPI{loginToken: "fresh", user: &model.User{ID: 1}}
	m := NewManager(store, api)

	require.NoError(t, m.Login(context.Background(), "a@b.com", "pw"))
	assert.Equal(t, "fresh", store.token)
	assert.Equal(t, "fresh", api.token)
	assert.True(t, m.IsAuthenticated())
}

func TestLoginRejectionPropagates(t *testing.T) {
	store := &fakeStore{}
	api := &fakeAPI{loginErr: common.ErrInvalidCredentials}
	m := NewManager(store, api)

	err := m.Login(context.Background(), "a@b.com", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Empty(t, store.token)
	assert.False(t, m.IsAuthenticated())
}

func TestLogoutIsLocalOnly(t *testing.T) {
	store := &fakeStore{token: "tok-1"}
	api := &fakeAPI{user: &model.User{ID: 1}}
	m := NewManager(store, api)
	require.NoError(t, m.CheckAuth(context.Background()))

	calls := api.meCalls
	require.NoError(t, m.Logout(context.Background()))
	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, store.token)
	assert.Empty(t, api.token)
	assert.Equal(t, calls, api.meCalls, "logout makes no server round trip")
}

func TestLoginWithGoogle(t *testing.T) {
	store := &fakeStore{}
	api := &fakeAPI{loginToken: "g-tok", user: &model.User{ID: 2}}
	m := NewManager(store, api)

	require.NoError(t, m.LoginWithGoogle(context.Background(), "id-token"))
	assert.Equal(t, "g-tok", store.token)
	assert.True(t, m.IsAuthenticated())
}
