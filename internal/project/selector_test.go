package project

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbourbon/admin-obras-sub001/internal/common"
	"github.com/nbourbon/admin-obras-sub001/internal/model"
)

type fakeAPI struct {
	listErr   error
	release   chan struct{}
	entered   chan struct{}
	projects  []model.Project
	scoped    []int64
	enterOnce sync.Once
	mu        sync.Mutex
}

func (f *fakeAPI) ListProjects(_ context.Context) ([]model.Project, error) {
	if f.entered != nil {
		f.enterOnce.Do(func() { close(f.entered) })
	}
	if f.release != nil {
		<-f.release
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.projects, nil
}

func (f *fakeAPI) SetProject(projectID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scoped = append(f.scoped, projectID)
}

type fakeStore struct {
	projectID  string
	preference string
}

func (f *fakeStore) CurrentProjectID(_ context.Context) (string, error) { return f.projectID, nil }
func (f *fakeStore) SetCurrentProjectID(_ context.Context, id string) error {
	f.projectID = id
	return nil
}

func (f *fakeStore) SelectionPreference(_ context.Context) (string, error) {
	if f.preference == "" {
		return PreferLast, nil
	}
	return f.preference, nil
}

func (f *fakeStore) SetSelectionPreference(_ context.Context, pref string) error {
	f.preference = pref
	return nil
}

func projects(ids ...int64) []model.Project {
	out := make([]model.Project, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Project{ID: id, CurrencyMode: model.DualCurrency})
	}
	return out
}

func TestLoadRestoresPersistedProject(t *testing.T) {
	api := &fakeAPI{projects: projects(5, 7, 9)}
	store := &fakeStore{projectID: "7", preference: PreferLast}
	s := NewSelector(api, store)

	require.NoError(t, s.Load(context.Background()))
	require.NotNil(t, s.Current())
	assert.Equal(t, int64(7), s.Current().ID)
	assert.False(t, s.ShowSelector(), "preference last hides the selector")
	assert.Equal(t, "7", store.projectID, "persisted id unchanged")
}

func TestLoadFallsBackToFirstAndRePersists(t *testing.T) {
	api := &fakeAPI{projects: projects(5, 7)}
	store := &fakeStore{projectID: "99", preference: PreferLast}
	s := NewSelector(api, store)

	require.NoError(t, s.Load(context.Background()))
	require.NotNil(t, s.Current())
	assert.Equal(t, int64(5), s.Current().ID)
	assert.Equal(t, "5", store.projectID, "fallback must re-persist the chosen id")
	assert.False(t, s.ShowSelector())
}

func TestLoadNonNumericPersistedIDIsNotFound(t *testing.T) {
	api := &fakeAPI{projects: projects(5, 7)}
	store := &fakeStore{projectID: "abc"}
	s := NewSelector(api, store)

	require.NoError(t, s.Load(context.Background()))
	require.NotNil(t, s.Current())
	assert.Equal(t, int64(5), s.Current().ID)
	assert.Equal(t, "5", store.projectID)
}

func TestLoadEmptyListForcesSelector(t *testing.T) {
	for _, pref := range []string{PreferLast, PreferSelector} {
		api := &fakeAPI{}
		store := &fakeStore{projectID: "7", preference: pref}
		s := NewSelector(api, store)

		require.NoError(t, s.Load(context.Background()))
		assert.Nil(t, s.Current())
		assert.True(t, s.ShowSelector(), "preference %s must not hide an empty-list selector", pref)
		assert.False(t, s.IsAdmin())
		assert.Equal(t, model.DualCurrency, s.CurrencyMode())
	}
}

func TestLoadFirstUseBootstrap(t *testing.T) {
	api := &fakeAPI{projects: projects(3, 4)}
	store := &fakeStore{}
	s := NewSelector(api, store)

	require.NoError(t, s.Load(context.Background()))
	require.NotNil(t, s.Current())
	assert.Equal(t, int64(3), s.Current().ID)
	assert.True(t, s.ShowSelector(), "first use always shows the selector")
	assert.Equal(t, "3", store.projectID)
}

func TestLoadSelectorPreferenceStillResolvesProject(t *testing.T) {
	api := &fakeAPI{projects: projects(5, 7)}
	store := &fakeStore{projectID: "7", preference: PreferSelector}
	s := NewSelector(api, store)

	require.NoError(t, s.Load(context.Background()))
	require.NotNil(t, s.Current())
	assert.Equal(t, int64(7), s.Current().ID)
	assert.True(t, s.ShowSelector())
}

func TestLoadFailurePreservesState(t *testing.T) {
	api := &fakeAPI{projects: projects(5)}
	store := &fakeStore{projectID: "5"}
	s := NewSelector(api, store)
	require.NoError(t, s.Load(context.Background()))

	api.listErr = errors.New("dial tcp: connection refused")
	err := s.Load(context.Background())
	require.Error(t, err)
	require.NotNil(t, s.Current(), "a failed reload must not clear the current project")
	assert.Equal(t, int64(5), s.Current().ID)
}

func TestSelectAppliesAndPersists(t *testing.T) {
	api := &fakeAPI{projects: projects(5, 7, 9)}
	store := &fakeStore{projectID: "5"}
	s := NewSelector(api, store)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Select(context.Background(), 9))
	assert.Equal(t, int64(9), s.Current().ID)
	assert.Equal(t, "9", store.projectID)
}

func TestSelectUnknownIDIsNoOp(t *testing.T) {
	api := &fakeAPI{projects: projects(5, 7)}
	store := &fakeStore{projectID: "5"}
	s := NewSelector(api, store)
	require.NoError(t, s.Load(context.Background()))

	err := s.Select(context.Background(), 42)
	assert.ErrorIs(t, err, common.ErrProjectNotFound)
	assert.Equal(t, int64(5), s.Current().ID, "unknown id must not clear the current project")
	assert.Equal(t, "5", store.projectID)
}

func TestSelectDerivesAdminAndCurrency(t *testing.T) {
	api := &fakeAPI{projects: []model.Project{
		{ID: 1, CurrencyMode: model.CurrencyARS},
		{ID: 2, CurrencyMode: model.CurrencyUSD, CurrentUserIsAdmin: true},
	}}
	store := &fakeStore{projectID: "1"}
	s := NewSelector(api, store)
	require.NoError(t, s.Load(context.Background()))

	assert.False(t, s.IsAdmin())
	assert.Equal(t, model.CurrencyARS, s.CurrencyMode())

	require.NoError(t, s.Select(context.Background(), 2))
	assert.True(t, s.IsAdmin())
	assert.Equal(t, model.CurrencyUSD, s.CurrencyMode())

	// Applying the same project twice changes nothing.
	require.NoError(t, s.Select(context.Background(), 2))
	assert.True(t, s.IsAdmin())
	assert.Equal(t, model.CurrencyUSD, s.CurrencyMode())
}

func TestCloseSelectorRefusesWithoutProject(t *testing.T) {
	api := &fakeAPI{}
	store := &fakeStore{}
	s := NewSelector(api, store)
	require.NoError(t, s.Load(context.Background()))
	require.True(t, s.ShowSelector())

	s.CloseSelector()
	assert.True(t, s.ShowSelector(), "selector cannot be dismissed with no project")
}

func TestCloseSelectorWithProject(t *testing.T) {
	api := &fakeAPI{projects: projects(5)}
	store := &fakeStore{projectID: "5", preference: PreferSelector}
	s := NewSelector(api, store)
	require.NoError(t, s.Load(context.Background()))
	require.True(t, s.ShowSelector())

	s.CloseSelector()
	assert.False(t, s.ShowSelector())

	s.OpenSelector()
	assert.True(t, s.ShowSelector())
}

func TestResetClearsState(t *testing.T) {
	api := &fakeAPI{projects: projects(5)}
	store := &fakeStore{projectID: "5"}
	s := NewSelector(api, store)
	require.NoError(t, s.Load(context.Background()))

	s.Reset()
	assert.Nil(t, s.Current())
	assert.Empty(t, s.Projects())
	assert.False(t, s.ShowSelector())
	assert.Equal(t, "5", store.projectID, "persisted id survives logout")
}

func TestOverlappingLoadsNewestWins(t *testing.T) {
	firstRelease := make(chan struct{})
	firstEntered := make(chan struct{})
	first := &fakeAPI{projects: projects(1), release: firstRelease, entered: firstEntered}
	store := &fakeStore{projectID: "2"}

	// Both loads share the selector but hit different API snapshots; the
	// shim swaps the backing API between the two calls.
	shim := &switchingAPI{current: first}
	s := NewSelector(shim, store)

	done := make(chan error, 1)
	go func() { done <- s.Load(context.Background()) }()
	<-firstEntered

	// Start a newer load that completes immediately.
	second := &fakeAPI{projects: projects(2)}
	shim.swap(second)
	require.NoError(t, s.Load(context.Background()))
	require.NotNil(t, s.Current())
	assert.Equal(t, int64(2), s.Current().ID)

	// Let the older load finish; its result must be discarded.
	close(firstRelease)
	require.NoError(t, <-done)
	require.NotNil(t, s.Current())
	assert.Equal(t, int64(2), s.Current().ID, "a stale load must not supersede a newer one")
}

type switchingAPI struct {
	current *fakeAPI
	mu      sync.Mutex
}

func (s *switchingAPI) swap(api *fakeAPI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = api
}

func (s *switchingAPI) ListProjects(ctx context.Context) ([]model.Project, error) {
	s.mu.Lock()
	api := s.current
	s.mu.Unlock()
	return api.ListProjects(ctx)
}

func (s *switchingAPI) SetProject(projectID int64) {
	s.mu.Lock()
	api := s.current
	s.mu.Unlock()
	api.SetProject(projectID)
}
