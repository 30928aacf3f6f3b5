package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbourbon/admin-obras-sub001/internal/api"
	"github.com/nbourbon/admin-obras-sub001/internal/model"
	"github.com/nbourbon/admin-obras-sub001/internal/project"
)

type stubAPI struct {
	projects []model.Project
}

func (s *stubAPI) ListProjects(_ context.Context) ([]model.Project, error) {
	return s.projects, nil
}

func (s *stubAPI) SetProject(_ int64) {}

type stubStore struct {
	projectID  string
	preference string
}

func (s *stubStore) CurrentProjectID(_ context.Context) (string, error) { return s.projectID, nil }
func (s *stubStore) SetCurrentProjectID(_ context.Context, id string) error {
	s.projectID = id
	return nil
}

func (s *stubStore) SelectionPreference(_ context.Context) (string, error) {
	if s.preference == "" {
		return project.PreferLast, nil
	}
	return s.preference, nil
}

func (s *stubStore) SetSelectionPreference(_ context.Context, pref string) error {
	s.preference = pref
	return nil
}

func newTestModel(t *testing.T, projects []model.Project, persistedID string) Model {
	t.Helper()

	selector := project.NewSelector(&stubAPI{projects: projects}, &stubStore{projectID: persistedID})
	require.NoError(t, selector.Load(context.Background()))

	return NewModel(Config{
		API:      api.New("http://localhost:0"),
		Selector: selector,
		Filter:   model.FilterAll,
	})
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEscape}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func march(day int) *model.Date {
	d := model.NewDate(2025, 3, day)
	return &d
}

func TestProjectsLoadedRoutesToSelectorWhenForced(t *testing.T) {
	// No projects at all: selector forced open.
	m := newTestModel(t, nil, "")

	next, _ := m.Update(projectsLoadedMsg{})
	assert.Equal(t, StateProjectSelector, next.(Model).state)
}

func TestProjectsLoadedRoutesToPaymentsWhenResolved(t *testing.T) {
	m := newTestModel(t, []model.Project{{ID: 5, Name: "Casa"}}, "5")

	next, cmd := m.Update(projectsLoadedMsg{})
	assert.Equal(t, StateLoading, next.(Model).state)
	assert.NotNil(t, cmd, "a payments load must follow")
}

func TestPaymentsLoadedBuildsFilteredRows(t *testing.T) {
	m := newTestModel(t, []model.Project{{ID: 5, Name: "Casa"}}, "5")

	payments := []model.Payment{
		{ID: 1, ExpenseDescription: "Cemento", IsPaid: true, ExpenseDate: march(3)},
		{ID: 2, ExpenseDescription: "Arena", ExpenseDate: march(9)},
		{ID: 3, ExpenseDescription: "Cal", IsPendingApproval: true, ExpenseDate: march(1)},
	}

	next, _ := m.Update(paymentsLoadedMsg{payments: payments})
	got := next.(Model)
	assert.Equal(t, StatePayments, got.state)
	require.Len(t, got.filtered, 3)
	assert.Equal(t, int64(2), got.filtered[0].ID, "sorted most recent first")

	// Cycle filter all -> pending: only the unpaid, unsubmitted one stays.
	afterFilter, _ := got.Update(keyMsg("f"))
	got = afterFilter.(Model)
	require.Len(t, got.filtered, 1)
	assert.Equal(t, int64(2), got.filtered[0].ID)
}

func TestEnterOpensPaymentDetail(t *testing.T) {
	m := newTestModel(t, []model.Project{{ID: 5, Name: "Casa"}}, "5")

	next, _ := m.Update(paymentsLoadedMsg{payments: []model.Payment{
		{ID: 9, ExpenseDescription: "Hierro", RejectionReason: "monto incorrecto"},
	}})
	got := next.(Model)

	afterEnter, _ := got.Update(keyMsg("enter"))
	got = afterEnter.(Model)
	assert.Equal(t, StatePaymentDetail, got.state)
	require.NotNil(t, got.selected)
	assert.Equal(t, int64(9), got.selected.ID)

	afterBack, _ := got.Update(keyMsg("esc"))
	got = afterBack.(Model)
	assert.Equal(t, StatePayments, got.state)
	assert.Nil(t, got.selected)
}

func TestSelectorCannotBeDismissedWithoutProject(t *testing.T) {
	m := newTestModel(t, nil, "")
	next, _ := m.Update(projectsLoadedMsg{})
	got := next.(Model)
	require.Equal(t, StateProjectSelector, got.state)

	afterEsc, _ := got.Update(keyMsg("esc"))
	got = afterEsc.(Model)
	assert.Equal(t, StateProjectSelector, got.state)
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, []model.Project{{ID: 5}}, "5")
	next, cmd := m.Update(keyMsg("q"))
	assert.True(t, next.(Model).quitting)
	assert.NotNil(t, cmd)
}
