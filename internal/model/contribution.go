package model

import (
	"fmt"
	"time"
)

// Contribution is a request for participants to fund a shared pool.
// Structurally parallel to an expense: split among participants, paid
// individually, approved by an admin.
type Contribution struct {
	ID                int64      `json:"id"`
	ProjectID         int64      `json:"project_id"`
	Description       string     `json:"description"`
	Amount            float64    `json:"amount"`
	Currency          string     `json:"currency"`
	MyAmountDue       float64    `json:"my_amount_due"`
	MyPaymentID       *int64     `json:"my_payment_id"`
	IPaid             bool       `json:"i_paid"`
	IsPendingApproval bool       `json:"is_pending_approval"`
	IsComplete        bool       `json:"is_complete"`
	PaidParticipants  int        `json:"paid_participants"`
	TotalParticipants int        `json:"total_participants"`
	CreatedAt         *time.Time `json:"created_at"`
}

// ClassifyContribution derives the caller's status on a contribution,
// with the same first-match-wins discipline as ClassifyPayment. A
// completed pool outranks the caller's own flags.
func ClassifyContribution(c Contribution) PaymentStatus {
	switch {
	case c.IsComplete, c.IPaid:
		return StatusPaid
	case c.IsPendingApproval:
		return StatusPendingApproval
	default:
		return StatusPendingPayment
	}
}

// Progress renders the paid-participant counter, e.g. "3/5".
func (c Contribution) Progress() string {
	return fmt.Sprintf("%d/%d", c.PaidParticipants, c.TotalParticipants)
}
