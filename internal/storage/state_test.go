package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	got, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.Set(ctx, KeyToken, "tok-1"))
	got, err = store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)

	// Overwrite.
	require.NoError(t, store.Set(ctx, KeyToken, "tok-2"))
	got, err = store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got)

	require.NoError(t, store.Delete(ctx, KeyToken))
	got, err = store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Deleting again is fine.
	require.NoError(t, store.Delete(ctx, KeyToken))
}

func TestSetEmptyValueDeletes(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Set(ctx, KeyCurrentProjectID, "7"))
	require.NoError(t, store.Set(ctx, KeyCurrentProjectID, ""))

	got, err := store.Get(ctx, KeyCurrentProjectID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSelectionPreferenceDefaultsToLast(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	pref, err := store.SelectionPreference(ctx)
	require.NoError(t, err)
	assert.Equal(t, PreferLast, pref)

	require.NoError(t, store.SetSelectionPreference(ctx, PreferSelector))
	pref, err = store.SelectionPreference(ctx)
	require.NoError(t, err)
	assert.Equal(t, PreferSelector, pref)

	assert.Error(t, store.SetSelectionPreference(ctx, "sometimes"))
}

func TestTokenHelpersSurviveReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "state.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.SetToken(ctx, "persisted"))
	require.NoError(t, store.Close())

	store, err = Open(dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	require.NoError(t, store.Migrate(ctx))

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)

	require.NoError(t, store.ClearToken(ctx))
	token, err = store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}
