package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nbourbon/admin-obras-sub001/internal/cli"
	"github.com/nbourbon/admin-obras-sub001/internal/common"
	"github.com/nbourbon/admin-obras-sub001/internal/currency"
	"github.com/nbourbon/admin-obras-sub001/internal/model"
)

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StateLoading:
		return m.spinner.View() + " loading…\n"
	case StateProjectSelector:
		return m.viewProjectSelector()
	case StatePayments:
		return m.viewPayments()
	case StatePaymentDetail:
		return m.viewPaymentDetail()
	case StateContributions:
		return m.viewContributions()
	case StateError:
		return m.viewError()
	}
	return ""
}

func (m Model) header() string {
	current := m.selector.Current()
	if current == nil {
		return cli.FormatTitle("obras")
	}

	title := cli.FormatTitle("obras — " + current.Name)
	badges := cli.SubtleStyle.Render(string(m.selector.CurrencyMode()))
	if m.selector.IsAdmin() {
		badges += " " + cli.InfoStyle.Render("admin")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", badges)
}

func (m Model) viewProjectSelector() string {
	var b strings.Builder
	b.WriteString(cli.FormatTitle("Select a project") + "\n\n")

	projects := m.selector.Projects()
	if len(projects) == 0 {
		b.WriteString(cli.InfoStyle.Render("You have no projects yet. Create one with 'obras projects' on the web app.") + "\n")
		return b.String()
	}

	for i, p := range projects {
		cursor := "  "
		name := p.Name
		if i == m.cursor {
			cursor = cli.BoldStyle.Render("> ")
			name = cli.BoldStyle.Render(name)
		}
		line := fmt.Sprintf("%s%s %s", cursor, name,
			cli.SubtleStyle.Render(string(p.CurrencyMode)))
		if p.CurrentUserIsAdmin {
			line += " " + cli.InfoStyle.Render("admin")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + m.helpLine("↑/↓", "move", "enter", "select", "esc", "close", "q", "quit"))
	return b.String()
}

func (m Model) viewPayments() string {
	var b strings.Builder
	b.WriteString(m.header() + "\n\n")

	scope := "unsettled"
	if m.showAll {
		scope = "all"
	}
	b.WriteString(fmt.Sprintf("My payments  %s  %s\n\n",
		cli.SubtleStyle.Render("filter: "+string(m.filter())),
		cli.SubtleStyle.Render("scope: "+scope)))

	if len(m.filtered) == 0 {
		b.WriteString(cli.InfoStyle.Render("No payments match the current filter.") + "\n")
	} else {
		b.WriteString(m.paymentTable.View() + "\n")
	}

	b.WriteString("\n" + m.helpLine(
		"f", "filter", "a", "all/unsettled", "enter", "detail",
		"p", "projects", "c", "contributions", "r", "reload", "q", "quit"))
	return b.String()
}

func (m Model) viewPaymentDetail() string {
	p := m.selected
	if p == nil {
		return ""
	}

	mode := m.selector.CurrencyMode()
	status := model.ClassifyPayment(*p)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n\n", cli.BoldStyle.Render(p.ExpenseDescription)))
	b.WriteString(fmt.Sprintf("Status:   %s\n", cli.FormatStatus(status)))
	if status == model.StatusRejected {
		b.WriteString(fmt.Sprintf("Reason:   %s\n", cli.ErrorStyle.Render(p.RejectionReason)))
	}
	b.WriteString(fmt.Sprintf("Due:      %s\n", currency.Format(mode, p.AmountDueARS, p.AmountDueUSD)))
	if p.ExpenseDate != nil && !p.ExpenseDate.IsZero() {
		b.WriteString(fmt.Sprintf("Date:     %s\n", p.ExpenseDate.Format(model.DateFormat)))
	}
	if p.AmountPaid > 0 {
		b.WriteString(fmt.Sprintf("Paid:     %.2f %s\n", p.AmountPaid, p.CurrencyPaid))
	}
	if p.HasReceipt() {
		b.WriteString("Receipt:  attached\n")
	}

	b.WriteString("\n" + m.helpLine("esc", "back", "q", "quit"))
	return cli.BoxStyle.Render(b.String())
}

func (m Model) viewContributions() string {
	var b strings.Builder
	b.WriteString(m.header() + "\n\n")
	b.WriteString("Contributions\n\n")

	if len(m.contributions) == 0 {
		b.WriteString(cli.InfoStyle.Render("No contributions in this project.") + "\n")
	}
	for _, c := range m.contributions {
		status := model.ClassifyContribution(c)
		b.WriteString(fmt.Sprintf("%-32s %10.2f %s  %s  %s\n",
			c.Description, c.Amount, c.Currency,
			cli.SubtleStyle.Render(c.Progress()),
			cli.FormatStatus(status)))
	}

	b.WriteString("\n" + m.helpLine("m/esc", "payments", "r", "reload", "q", "quit"))
	return b.String()
}

func (m Model) viewError() string {
	msg := common.UserMessage(m.lastError)
	return cli.FormatError(msg) + "\n\n" + m.helpLine("r", "retry", "q", "quit")
}

func (m Model) helpLine(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts,
			cli.BoldStyle.Render(pairs[i])+" "+cli.SubtleStyle.Render(pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}
