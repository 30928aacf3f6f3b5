package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Persisted state keys. These mirror the keys the browser client kept
// in local storage, so their semantics are contract:
//   - token survives reloads and is cleared only on logout or a
//     server-confirmed auth rejection;
//   - current_project_id and project_selection_preference survive
//     logout.
const (
	KeyToken               = "token"
	KeyCurrentProjectID    = "current_project_id"
	KeySelectionPreference = "project_selection_preference"
)

// Selection preference values.
const (
	PreferLast     = "last"
	PreferSelector = "selector"
)

// Get returns the value for a key, or "" when the key is absent.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read state key %q: %w", key, err)
	}
	return value, nil
}

// Set stores a value under a key. An empty value deletes the key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if value == "" {
		return s.Delete(ctx, key)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to write state key %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete state key %q: %w", key, err)
	}
	return nil
}

// Token returns the persisted session token, "" when logged out.
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.Get(ctx, KeyToken)
}

// SetToken persists the session token.
func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.Set(ctx, KeyToken, token)
}

// ClearToken removes the persisted session token.
func (s *Store) ClearToken(ctx context.Context) error {
	return s.Delete(ctx, KeyToken)
}

// CurrentProjectID returns the last-used project id as the stored
// string, "" when never set.
func (s *Store) CurrentProjectID(ctx context.Context) (string, error) {
	return s.Get(ctx, KeyCurrentProjectID)
}

// SetCurrentProjectID persists the last-used project id.
func (s *Store) SetCurrentProjectID(ctx context.Context, id string) error {
	return s.Set(ctx, KeyCurrentProjectID, id)
}

// SelectionPreference returns the stored selector preference,
// defaulting to PreferLast.
func (s *Store) SelectionPreference(ctx context.Context) (string, error) {
	pref, err := s.Get(ctx, KeySelectionPreference)
	if err != nil {
		return "", err
	}
	if pref != PreferSelector {
		return PreferLast, nil
	}
	return pref, nil
}

// SetSelectionPreference persists the selector preference.
func (s *Store) SetSelectionPreference(ctx context.Context, pref string) error {
	if pref != PreferLast && pref != PreferSelector {
		return fmt.Errorf("invalid selection preference %q", pref)
	}
	return s.Set(ctx, KeySelectionPreference, pref)
}
