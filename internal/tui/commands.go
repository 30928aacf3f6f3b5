package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// loadProjects runs the selector's full load state machine and reports
// the outcome. Overlapping loads are resolved inside the selector:
// the newest one wins.
func (m Model) loadProjects() tea.Cmd {
	return func() tea.Msg {
		err := m.selector.Load(context.Background())
		return projectsLoadedMsg{err: err}
	}
}

// loadPayments fetches the caller's payments for the active project.
func (m Model) loadPayments() tea.Cmd {
	return func() tea.Msg {
		payments, err := m.api.MyPayments(context.Background(), m.showAll)
		return paymentsLoadedMsg{payments: payments, err: err}
	}
}

// loadContributions fetches the active project's contributions.
func (m Model) loadContributions() tea.Cmd {
	return func() tea.Msg {
		contributions, err := m.api.ListContributions(context.Background())
		return contributionsLoadedMsg{contributions: contributions, err: err}
	}
}
