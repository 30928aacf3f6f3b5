package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbourbon/admin-obras-sub001/internal/common"
	"github.com/nbourbon/admin-obras-sub001/internal/model"
	"github.com/nbourbon/admin-obras-sub001/internal/testutil"
)

// These tests run the manager against the real SQLite state store
// instead of the in-memory fake, covering the login-restart-rehydrate
// path end to end.

func TestSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStateStore(t)

	api := &fakeAPI{loginToken: "tok-1", user: &model.User{ID: 1, Email: "ana@example.com"}}
	m := NewManager(store, api)
	require.NoError(t, m.Login(ctx, "ana@example.com", "pw"))

	// A fresh manager over the same store is a process restart.
	api2 := &fakeAPI{user: &model.User{ID: 1, Email: "ana@example.com"}}
	m2 := NewManager(store, api2)
	require.NoError(t, m2.CheckAuth(ctx))

	assert.True(t, m2.IsAuthenticated())
	assert.Equal(t, "tok-1", api2.token)
}

func TestRejectedSessionIsGoneAfterRestart(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStateStore(t)

	api := &fakeAPI{loginToken: "stale", user: &model.User{ID: 1}}
	m := NewManager(store, api)
	require.NoError(t, m.Login(ctx, "a@b.com", "pw"))

	// The server revoked the token while the app was closed.
	rejecting := &fakeAPI{meErr: &common.APIError{StatusCode: 401}}
	m2 := NewManager(store, rejecting)
	require.NoError(t, m2.CheckAuth(ctx))
	assert.False(t, m2.IsAuthenticated())

	// Third start: the cleared token means no who-am-i call at all.
	api3 := &fakeAPI{}
	m3 := NewManager(store, api3)
	require.NoError(t, m3.CheckAuth(ctx))
	assert.Zero(t, api3.meCalls)
}

func TestLogoutClearsPersistedToken(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStateStore(t)

	api := &fakeAPI{loginToken: "tok-1", user: &model.User{ID: 1}}
	m := NewManager(store, api)
	require.NoError(t, m.Login(ctx, "a@b.com", "pw"))
	require.NoError(t, m.Logout(ctx))

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}
