package model

// CurrencyMode controls which currencies a project displays and collects.
type CurrencyMode string

// Currency mode constants. DualCurrency is the server-side default.
const (
	CurrencyARS  CurrencyMode = "ARS"
	CurrencyUSD  CurrencyMode = "USD"
	DualCurrency CurrencyMode = "DUAL"
)

// Valid reports whether the mode is one the API can return.
func (m CurrencyMode) Valid() bool {
	switch m {
	case CurrencyARS, CurrencyUSD, DualCurrency:
		return true
	}
	return false
}

// Project is a shared-expense project the user participates in.
type Project struct {
	ID                 int64        `json:"id"`
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	CurrencyMode       CurrencyMode `json:"currency_mode"`
	CurrentUserIsAdmin bool         `json:"current_user_is_admin"`
	IsIndividual       bool         `json:"is_individual"`
	ParticipantCount   int          `json:"participant_count"`
}

// ProjectView is the tuple of display state derived from the active
// project. It is built in exactly one place so the admin flag and
// currency mode can never diverge from the project they came from.
type ProjectView struct {
	Project      *Project
	IsAdmin      bool
	CurrencyMode CurrencyMode
}

// DeriveProjectView computes the derived display state for a project.
// A nil project yields the unauthorized defaults: not admin, dual display.
func DeriveProjectView(p *Project) ProjectView {
	view := ProjectView{Project: p, CurrencyMode: DualCurrency}
	if p == nil {
		return view
	}
	view.IsAdmin = p.CurrentUserIsAdmin
	if p.CurrencyMode.Valid() {
		view.CurrencyMode = p.CurrencyMode
	}
	return view
}
