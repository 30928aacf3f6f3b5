package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/nbourbon/admin-obras-sub001/internal/model"
)

// PaymentRequest carries the fields for submitting or confirming a
// payment. The exchange-rate override and date are optional; the server
// fills defaults.
type PaymentRequest struct {
	PaymentDate          *model.Date `json:"payment_date,omitempty"`
	ExchangeRateOverride *float64    `json:"exchange_rate_override,omitempty"`
	AmountPaid           float64     `json:"amount_paid"`
	CurrencyPaid         string      `json:"currency_paid"`
}

// MyPayments lists the caller's payments in the active project. With
// all false the server returns only unsettled ones.
func (c *Client) MyPayments(ctx context.Context, all bool) ([]model.Payment, error) {
	path := "/payments/mine"
	if all {
		path += "?all=true"
	}
	var payments []model.Payment
	if err := c.do(ctx, http.MethodGet, path, nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// SubmitPayment submits the caller's own payment for admin approval.
func (c *Client) SubmitPayment(ctx context.Context, paymentID int64, req PaymentRequest) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/payments/%d/submit", paymentID), req, nil)
}

// MarkPaid confirms a payment directly, an admin-only shortcut.
func (c *Client) MarkPaid(ctx context.Context, paymentID int64, req PaymentRequest) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/payments/%d/mark-paid", paymentID), req, nil)
}

// UnmarkPaid reverts a confirmed payment to pending.
func (c *Client) UnmarkPaid(ctx context.Context, paymentID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/payments/%d/unmark-paid", paymentID), nil, nil)
}

// DeletePayment removes a payment. The server refuses when a receipt is
// attached; the detail text explains the conflict.
func (c *Client) DeletePayment(ctx context.Context, paymentID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/payments/%d", paymentID), nil, nil)
}

// UploadReceipt attaches a receipt file to a payment.
func (c *Client) UploadReceipt(ctx context.Context, paymentID int64, fileName string, r io.Reader) error {
	return c.upload(ctx, fmt.Sprintf("/payments/%d/receipt", paymentID), fileName, r)
}

// DownloadReceipt fetches a payment's receipt. The caller must close
// the returned body.
func (c *Client) DownloadReceipt(ctx context.Context, paymentID int64) (io.ReadCloser, int64, error) {
	return c.download(ctx, fmt.Sprintf("/payments/%d/receipt", paymentID))
}
