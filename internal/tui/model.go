// Package tui is the interactive payments browser: project selection,
// the caller's payment list with derived status badges, and the
// project's contributions.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nbourbon/admin-obras-sub001/internal/api"
	"github.com/nbourbon/admin-obras-sub001/internal/cli"
	"github.com/nbourbon/admin-obras-sub001/internal/currency"
	"github.com/nbourbon/admin-obras-sub001/internal/model"
	"github.com/nbourbon/admin-obras-sub001/internal/project"
)

// State represents the current state of the TUI.
type State int

// TUI states.
const (
	StateLoading State = iota
	StateProjectSelector
	StatePayments
	StatePaymentDetail
	StateContributions
	StateError
)

// filterCycle is the order the filter key steps through.
var filterCycle = []model.PaymentFilter{
	model.FilterAll,
	model.FilterPending,
	model.FilterPendingApproval,
	model.FilterPaid,
}

// Config wires the TUI to its collaborators.
type Config struct {
	API      *api.Client
	Selector *project.Selector
	Filter   model.PaymentFilter
	Dates    model.DateRange
	ShowAll  bool
}

// Model holds the TUI state.
type Model struct {
	api           *api.Client
	selector      *project.Selector
	lastError     error
	selected      *model.Payment
	payments      []model.Payment
	filtered      []model.Payment
	contributions []model.Contribution
	dates         model.DateRange
	keymap        KeyMap
	paymentTable  table.Model
	spinner       spinner.Model
	filterIndex   int
	cursor        int
	width         int
	height        int
	state         State
	showAll       bool
	quitting      bool
}

// NewModel creates the TUI model.
func NewModel(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cli.PrimaryColor)

	filterIndex := 0
	for i, f := range filterCycle {
		if f == cfg.Filter {
			filterIndex = i
		}
	}

	columns := []table.Column{
		{Title: "Expense", Width: 32},
		{Title: "Date", Width: 10},
		{Title: "Due", Width: 28},
		{Title: "Status", Width: 18},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return Model{
		api:          cfg.API,
		selector:     cfg.Selector,
		keymap:       DefaultKeyMap(),
		spinner:      sp,
		paymentTable: tbl,
		filterIndex:  filterIndex,
		dates:        cfg.Dates,
		showAll:      cfg.ShowAll,
		state:        StateLoading,
	}
}

// Init starts the project load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadProjects())
}

func (m Model) filter() model.PaymentFilter {
	return filterCycle[m.filterIndex]
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case projectsLoadedMsg:
		return m.handleProjectsLoaded(msg)

	case paymentsLoadedMsg:
		if msg.err != nil {
			m.lastError = msg.err
			m.state = StateError
			return m, nil
		}
		m.payments = msg.payments
		m.rebuildRows()
		m.state = StatePayments
		return m, nil

	case contributionsLoadedMsg:
		if msg.err != nil {
			m.lastError = msg.err
			m.state = StateError
			return m, nil
		}
		m.contributions = msg.contributions
		m.state = StateContributions
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleProjectsLoaded(msg projectsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.lastError = msg.err
		m.state = StateError
		return m, nil
	}
	if m.selector.ShowSelector() {
		m.cursor = 0
		m.state = StateProjectSelector
		return m, nil
	}
	m.state = StateLoading
	return m, m.loadPayments()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StateProjectSelector:
		return m.handleSelectorKey(msg)
	case StatePayments:
		return m.handlePaymentsKey(msg)
	case StatePaymentDetail:
		if key.Matches(msg, m.keymap.Back) {
			m.selected = nil
			m.state = StatePayments
		}
		return m, nil
	case StateContributions:
		switch {
		case key.Matches(msg, m.keymap.Back), key.Matches(msg, m.keymap.Payments):
			m.state = StateLoading
			return m, m.loadPayments()
		case key.Matches(msg, m.keymap.Reload):
			m.state = StateLoading
			return m, m.loadContributions()
		}
		return m, nil
	case StateError:
		if key.Matches(msg, m.keymap.Reload) {
			m.state = StateLoading
			return m, m.loadProjects()
		}
		return m, nil
	case StateLoading:
		return m, nil
	}
	return m, nil
}

func (m Model) handleSelectorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	projects := m.selector.Projects()

	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(projects)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Enter):
		if len(projects) == 0 {
			return m, nil
		}
		if err := m.selector.Select(context.Background(), projects[m.cursor].ID); err != nil {
			m.lastError = err
			m.state = StateError
			return m, nil
		}
		m.selector.CloseSelector()
		m.state = StateLoading
		return m, m.loadPayments()
	case key.Matches(msg, m.keymap.Back):
		m.selector.CloseSelector()
		// Dismissal is refused while no project is active.
		if !m.selector.ShowSelector() {
			m.state = StateLoading
			return m, m.loadPayments()
		}
	}
	return m, nil
}

func (m Model) handlePaymentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Filter):
		m.filterIndex = (m.filterIndex + 1) % len(filterCycle)
		m.rebuildRows()
		return m, nil
	case key.Matches(msg, m.keymap.ToggleAll):
		m.showAll = !m.showAll
		m.state = StateLoading
		return m, m.loadPayments()
	case key.Matches(msg, m.keymap.Reload):
		m.state = StateLoading
		return m, m.loadPayments()
	case key.Matches(msg, m.keymap.Projects):
		m.selector.OpenSelector()
		m.cursor = 0
		m.state = StateProjectSelector
		return m, nil
	case key.Matches(msg, m.keymap.Funds):
		m.state = StateLoading
		return m, m.loadContributions()
	case key.Matches(msg, m.keymap.Enter):
		row := m.paymentTable.Cursor()
		if row >= 0 && row < len(m.filtered) {
			m.selected = &m.filtered[row]
			m.state = StatePaymentDetail
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.paymentTable, cmd = m.paymentTable.Update(msg)
	return m, cmd
}

func (m *Model) rebuildRows() {
	m.filtered = model.FilterPayments(m.payments, m.filter(), m.dates)
	mode := m.selector.CurrencyMode()

	rows := make([]table.Row, 0, len(m.filtered))
	for _, p := range m.filtered {
		date := ""
		if p.ExpenseDate != nil && !p.ExpenseDate.IsZero() {
			date = p.ExpenseDate.Format(model.DateFormat)
		}
		rows = append(rows, table.Row{
			p.ExpenseDescription,
			date,
			currency.Format(mode, p.AmountDueARS, p.AmountDueUSD),
			model.ClassifyPayment(p).Label(),
		})
	}
	m.paymentTable.SetRows(rows)
	m.paymentTable.SetCursor(0)
}
