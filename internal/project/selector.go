// Package project owns project selection: which of the user's projects
// is active, the admin flag and currency mode derived from it, and
// whether the project selector must be shown.
package project

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/nbourbon/admin-obras-sub001/internal/common"
	"github.com/nbourbon/admin-obras-sub001/internal/model"
)

// API is the slice of the API client the selector needs.
type API interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	SetProject(projectID int64)
}

// SelectionStore persists the last-used project id and the selector
// preference. Both survive logout.
type SelectionStore interface {
	CurrentProjectID(ctx context.Context) (string, error)
	SetCurrentProjectID(ctx context.Context, id string) error
	SelectionPreference(ctx context.Context) (string, error)
	SetSelectionPreference(ctx context.Context, pref string) error
}

// Preference values, re-exported for callers that don't import storage.
const (
	PreferLast     = "last"
	PreferSelector = "selector"
)

// Selector is the project selection store.
type Selector struct {
	api          API
	store        SelectionStore
	projects     []model.Project
	view         model.ProjectView
	mu           sync.Mutex
	generation   uint64
	showSelector bool
}

// NewSelector creates a selector over the given API and store.
func NewSelector(api API, store SelectionStore) *Selector {
	return &Selector{
		api:   api,
		store: store,
		view:  model.DeriveProjectView(nil),
	}
}

// Reset clears all selection state. Called when the session becomes
// unauthenticated. The persisted project id and preference survive; only
// in-memory state is dropped.
func (s *Selector) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.projects = nil
	s.showSelector = false
	s.applyLocked(nil)
}

// Load fetches the project list and resolves the current project from
// the persisted id and preference. When loads overlap, the newest one
// wins: an older load finishing late finds its generation stale and
// discards its result.
func (s *Selector) Load(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	projects, err := s.api.ListProjects(ctx)
	if err != nil {
		return common.NewUserError("could not load projects", err)
	}

	persistedID, err := s.store.CurrentProjectID(ctx)
	if err != nil {
		return err
	}
	pref, err := s.store.SelectionPreference(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		slog.Debug("Discarding stale project load", "generation", gen)
		return nil
	}

	s.projects = projects

	// No projects: the user must create one before anything else works,
	// so the selector is forced open regardless of preference.
	if len(projects) == 0 {
		s.showSelector = true
		s.applyLocked(nil)
		return nil
	}

	// First use: no id was ever persisted. Show the selector and start
	// on the first project the server returned.
	if persistedID == "" {
		s.showSelector = true
		return s.applyAndPersistLocked(ctx, &projects[0])
	}

	s.showSelector = pref == PreferSelector

	if found := findProject(projects, persistedID); found != nil {
		s.applyLocked(found)
		return nil
	}

	// The persisted project is gone (deleted, or access revoked). Fall
	// back to the first project and re-persist so the next session does
	// not repeat the fallback silently.
	slog.Debug("Persisted project not in list, falling back to first",
		"persisted_id", persistedID)
	return s.applyAndPersistLocked(ctx, &projects[0])
}

// Refresh re-runs Load in full; used after a project is created or
// updated elsewhere in the app.
func (s *Selector) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

// Select switches to a project by id, looking it up in the already
// loaded list only. An unknown id leaves the current project untouched.
func (s *Selector) Select(ctx context.Context, projectID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.projects {
		if s.projects[i].ID == projectID {
			return s.applyAndPersistLocked(ctx, &s.projects[i])
		}
	}
	return fmt.Errorf("%w: id %d", common.ErrProjectNotFound, projectID)
}

// OpenSelector shows the project selector.
func (s *Selector) OpenSelector() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showSelector = true
}

// CloseSelector hides the selector. It refuses while no project is
// current: the app must never be left without a usable project context.
func (s *Selector) CloseSelector() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view.Project == nil {
		return
	}
	s.showSelector = false
}

// SetPreference persists the selector preference.
func (s *Selector) SetPreference(ctx context.Context, pref string) error {
	return s.store.SetSelectionPreference(ctx, pref)
}

// Projects returns the loaded project list in server order.
func (s *Selector) Projects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projects
}

// Current returns the active project, nil when none is selected.
func (s *Selector) Current() *model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.Project
}

// IsAdmin reports whether the user administers the active project.
func (s *Selector) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.IsAdmin
}

// CurrencyMode returns the active project's display mode, DUAL when no
// project is selected.
func (s *Selector) CurrencyMode() model.CurrencyMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.CurrencyMode
}

// ShowSelector reports whether the selector must be shown.
func (s *Selector) ShowSelector() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showSelector
}

// applyLocked is the single place the derived view is rebuilt, so the
// admin flag and currency mode always come from the project they belong
// to. Callers hold s.mu.
func (s *Selector) applyLocked(p *model.Project) {
	s.view = model.DeriveProjectView(p)
	if p != nil {
		s.api.SetProject(p.ID)
	} else {
		s.api.SetProject(0)
	}
}

func (s *Selector) applyAndPersistLocked(ctx context.Context, p *model.Project) error {
	s.applyLocked(p)
	id := strconv.FormatInt(p.ID, 10)
	if err := s.store.SetCurrentProjectID(ctx, id); err != nil {
		return fmt.Errorf("failed to persist project id: %w", err)
	}
	return nil
}

// findProject resolves a persisted string id against numeric project
// ids. A non-numeric or unknown id is "not found", never a crash.
func findProject(projects []model.Project, persistedID string) *model.Project {
	id, err := strconv.ParseInt(persistedID, 10, 64)
	if err != nil {
		return nil
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i]
		}
	}
	return nil
}
