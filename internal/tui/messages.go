package tui

import (
	"github.com/nbourbon/admin-obras-sub001/internal/model"
)

// projectsLoadedMsg reports the outcome of a project list load. The
// selector has already applied the result when err is nil.
type projectsLoadedMsg struct {
	err error
}

// paymentsLoadedMsg carries a freshly fetched payment collection.
type paymentsLoadedMsg struct {
	err      error
	payments []model.Payment
}

// contributionsLoadedMsg carries a freshly fetched contribution list.
type contributionsLoadedMsg struct {
	err           error
	contributions []model.Contribution
}
