package model

import (
	"sort"
	"strings"
	"time"
)

// PaymentStatus is the single discrete state derived from a payment's
// server-supplied flags.
type PaymentStatus string

// Payment status constants.
const (
	StatusPaid            PaymentStatus = "PAID"
	StatusPendingApproval PaymentStatus = "PENDING_APPROVAL"
	StatusRejected        PaymentStatus = "REJECTED"
	StatusPendingPayment  PaymentStatus = "PENDING_PAYMENT"
)

// Label returns the human-readable status text.
func (s PaymentStatus) Label() string {
	switch s {
	case StatusPaid:
		return "Paid"
	case StatusPendingApproval:
		return "Pending approval"
	case StatusRejected:
		return "Rejected"
	case StatusPendingPayment:
		return "Pending payment"
	}
	return string(s)
}

// Payment is one participant's share of an expense. The status flags are
// not guaranteed mutually exclusive by the server; ClassifyPayment owns
// the precedence that resolves them.
type Payment struct {
	ID                 int64      `json:"id"`
	ExpenseID          int64      `json:"expense_id"`
	UserID             int64      `json:"user_id"`
	UserName           string     `json:"user_name"`
	ExpenseDescription string     `json:"expense_description"`
	ExpenseDate        *Date      `json:"expense_date"`
	AmountDueUSD       float64    `json:"amount_due_usd"`
	AmountDueARS       float64    `json:"amount_due_ars"`
	IsPaid             bool       `json:"is_paid"`
	IsPendingApproval  bool       `json:"is_pending_approval"`
	RejectionReason    string     `json:"rejection_reason"`
	ReceiptFilePath    string     `json:"receipt_file_path"`
	SubmittedAt        *time.Time `json:"submitted_at"`
	ApprovedAt         *time.Time `json:"approved_at"`
	PaidAt             *time.Time `json:"paid_at"`
	AmountPaid         float64    `json:"amount_paid"`
	CurrencyPaid       string     `json:"currency_paid"`
}

// HasReceipt reports whether a receipt file is attached.
func (p Payment) HasReceipt() bool {
	return p.ReceiptFilePath != ""
}

// ClassifyPayment derives the single status of a payment. The flags can
// legitimately overlap on the wire, so precedence is fixed: paid beats
// pending approval beats rejected beats the pending-payment fallback.
// Do not reorder these cases.
func ClassifyPayment(p Payment) PaymentStatus {
	switch {
	case p.IsPaid:
		return StatusPaid
	case p.IsPendingApproval:
		return StatusPendingApproval
	case strings.TrimSpace(p.RejectionReason) != "":
		return StatusRejected
	default:
		return StatusPendingPayment
	}
}

// PaymentFilter selects payments by derived status.
type PaymentFilter string

// Payment filter constants. FilterPending covers everything still owed:
// both the pending-payment fallback and rejected submissions, which are
// back in the payer's court.
const (
	FilterAll             PaymentFilter = "all"
	FilterPending         PaymentFilter = "pending"
	FilterPendingApproval PaymentFilter = "pending_approval"
	FilterPaid            PaymentFilter = "paid"
)

// Valid reports whether f is a recognized filter.
func (f PaymentFilter) Valid() bool {
	switch f {
	case FilterAll, FilterPending, FilterPendingApproval, FilterPaid:
		return true
	}
	return false
}

// Matches reports whether a payment with the given derived status is
// visible under this filter. FilterFor is its inverse; they must agree.
func (f PaymentFilter) Matches(status PaymentStatus) bool {
	switch f {
	case FilterAll:
		return true
	case FilterPending:
		return status == StatusPendingPayment || status == StatusRejected
	case FilterPendingApproval:
		return status == StatusPendingApproval
	case FilterPaid:
		return status == StatusPaid
	}
	return false
}

// FilterFor returns the narrowest filter under which a payment of the
// given status is visible.
func FilterFor(status PaymentStatus) PaymentFilter {
	switch status {
	case StatusPaid:
		return FilterPaid
	case StatusPendingApproval:
		return FilterPendingApproval
	default:
		return FilterPending
	}
}

// DateRange is an inclusive day-granularity range. A nil bound is open;
// a payment with no expense date is never excluded by a range.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether the given date falls inside the range.
func (r DateRange) Contains(d *Date) bool {
	if d == nil || d.IsZero() {
		return true
	}
	day := d.Day()
	if r.From != nil && day.Before(dayOf(*r.From)) {
		return false
	}
	if r.To != nil && day.After(dayOf(*r.To)) {
		return false
	}
	return true
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FilterPayments returns the payments whose derived status matches the
// filter and whose expense date falls in the range, sorted most recent
// first. The input slice is not modified.
func FilterPayments(payments []Payment, filter PaymentFilter, dates DateRange) []Payment {
	out := make([]Payment, 0, len(payments))
	for _, p := range payments {
		if filter.Matches(ClassifyPayment(p)) && dates.Contains(p.ExpenseDate) {
			out = append(out, p)
		}
	}
	SortPaymentsByDate(out)
	return out
}

// SortPaymentsByDate orders payments by expense date descending.
// Payments without a date sort as oldest.
func SortPaymentsByDate(payments []Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		return paymentDate(payments[i]).After(paymentDate(payments[j]))
	})
}

func paymentDate(p Payment) time.Time {
	if p.ExpenseDate == nil {
		return time.Time{}
	}
	return p.ExpenseDate.Day()
}
