// Package testutil provides shared helpers for tests that need real
// local state instead of hand-rolled fakes.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nbourbon/admin-obras-sub001/internal/storage"
)

// NewStateStore opens a migrated state store in a per-test temp
// directory. Cleanup is registered automatically.
func NewStateStore(t *testing.T) *storage.Store {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return store
}
