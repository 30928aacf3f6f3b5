package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/nbourbon/admin-obras-sub001/internal/model"
)

// ExpenseUpdate carries the editable fields of an expense. Pointers
// distinguish "leave unchanged" from "set to zero value".
type ExpenseUpdate struct {
	Description  *string     `json:"description,omitempty"`
	Date         *model.Date `json:"date,omitempty"`
	Amount       *float64    `json:"amount,omitempty"`
	Currency     *string     `json:"currency,omitempty"`
	ExchangeRate *float64    `json:"exchange_rate,omitempty"`
	CategoryID   *int64      `json:"category_id,omitempty"`
	ProviderID   *int64      `json:"provider_id,omitempty"`
	RubroID      *int64      `json:"rubro_id,omitempty"`
}

// MarkAllPaidRequest settles every outstanding payment of an expense at
// once.
type MarkAllPaidRequest struct {
	PaymentDate          *model.Date `json:"payment_date,omitempty"`
	ExchangeRateOverride *float64    `json:"exchange_rate_override,omitempty"`
	Currency             string      `json:"currency,omitempty"`
}

// GetExpense fetches one expense with its payments.
func (c *Client) GetExpense(ctx context.Context, expenseID int64) (*model.Expense, error) {
	var expense model.Expense
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/expenses/%d", expenseID), nil, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// UpdateExpense applies a partial update to an expense.
func (c *Client) UpdateExpense(ctx context.Context, expenseID int64, update ExpenseUpdate) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/expenses/%d", expenseID), update, nil)
}

// MarkAllPaid settles all pending payments of an expense, an admin
// operation.
func (c *Client) MarkAllPaid(ctx context.Context, expenseID int64, req MarkAllPaidRequest) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/expenses/%d/mark-all-paid", expenseID), req, nil)
}

// DeleteExpense removes an expense. The server refuses while payments
// are active; the detail text explains the conflict.
func (c *Client) DeleteExpense(ctx context.Context, expenseID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/expenses/%d", expenseID), nil, nil)
}

// UploadInvoice attaches an invoice file to an expense.
func (c *Client) UploadInvoice(ctx context.Context, expenseID int64, fileName string, r io.Reader) error {
	return c.upload(ctx, fmt.Sprintf("/expenses/%d/invoice", expenseID), fileName, r)
}

// DownloadInvoice fetches an expense's invoice. The caller must close
// the returned body.
func (c *Client) DownloadInvoice(ctx context.Context, expenseID int64) (io.ReadCloser, int64, error) {
	return c.download(ctx, fmt.Sprintf("/expenses/%d/invoice", expenseID))
}
