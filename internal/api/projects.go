package api

import (
	"context"
	"net/http"

	"github.com/nbourbon/admin-obras-sub001/internal/model"
)

// ListProjects returns every project the authenticated user belongs to,
// in server order.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}
