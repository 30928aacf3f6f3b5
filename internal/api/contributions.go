package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/nbourbon/admin-obras-sub001/internal/model"
)

// ContributionRequest creates a shared-fund request split among the
// project's participants.
type ContributionRequest struct {
	Description string  `json:"description"`
	Currency    string  `json:"currency"`
	Amount      float64 `json:"amount"`
}

// ListContributions returns the active project's contributions.
func (c *Client) ListContributions(ctx context.Context) ([]model.Contribution, error) {
	var contributions []model.Contribution
	if err := c.do(ctx, http.MethodGet, "/contributions", nil, &contributions); err != nil {
		return nil, err
	}
	return contributions, nil
}

// CreateContribution opens a new shared-fund request.
func (c *Client) CreateContribution(ctx context.Context, req ContributionRequest) (*model.Contribution, error) {
	var created model.Contribution
	if err := c.do(ctx, http.MethodPost, "/contributions", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// SubmitContributionPayment submits the caller's share of a
// contribution for approval. The payment id comes from the
// contribution's my_payment_id field.
func (c *Client) SubmitContributionPayment(ctx context.Context, paymentID int64, req PaymentRequest) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/contributions/payments/%d/submit", paymentID), req, nil)
}

// UploadContributionReceipt attaches a receipt to a contribution payment.
func (c *Client) UploadContributionReceipt(ctx context.Context, paymentID int64, fileName string, r io.Reader) error {
	return c.upload(ctx, fmt.Sprintf("/contributions/payments/%d/receipt", paymentID), fileName, r)
}
