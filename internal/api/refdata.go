package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nbourbon/admin-obras-sub001/internal/model"
)

// Reference-data CRUD: categories, providers, and rubros are simple
// project-scoped lookup tables.

// ListCategories returns the project's categories.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory adds a category, optionally under a rubro.
func (c *Client) CreateCategory(ctx context.Context, name string, rubroID *int64) (*model.Category, error) {
	req := model.Category{Name: name, RubroID: rubroID}
	var created model.Category
	if err := c.do(ctx, http.MethodPost, "/categories", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCategory renames a category or moves it to another rubro.
func (c *Client) UpdateCategory(ctx context.Context, id int64, name string, rubroID *int64) error {
	req := model.Category{Name: name, RubroID: rubroID}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), req, nil)
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil)
}

// ListProviders returns the project's providers.
func (c *Client) ListProviders(ctx context.Context) ([]model.Provider, error) {
	var out []model.Provider
	if err := c.do(ctx, http.MethodGet, "/providers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProvider adds a provider.
func (c *Client) CreateProvider(ctx context.Context, name, cuit string) (*model.Provider, error) {
	req := model.Provider{Name: name, CUIT: cuit}
	var created model.Provider
	if err := c.do(ctx, http.MethodPost, "/providers", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProvider updates a provider's name and tax id.
func (c *Client) UpdateProvider(ctx context.Context, id int64, name, cuit string) error {
	req := model.Provider{Name: name, CUIT: cuit}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/providers/%d", id), req, nil)
}

// DeleteProvider removes a provider.
func (c *Client) DeleteProvider(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/providers/%d", id), nil, nil)
}

// ListRubros returns the project's rubros.
func (c *Client) ListRubros(ctx context.Context) ([]model.Rubro, error) {
	var out []model.Rubro
	if err := c.do(ctx, http.MethodGet, "/rubros", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRubro adds a rubro.
func (c *Client) CreateRubro(ctx context.Context, name string) (*model.Rubro, error) {
	req := model.Rubro{Name: name}
	var created model.Rubro
	if err := c.do(ctx, http.MethodPost, "/rubros", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateRubro renames a rubro.
func (c *Client) UpdateRubro(ctx context.Context, id int64, name string) error {
	req := model.Rubro{Name: name}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/rubros/%d", id), req, nil)
}

// DeleteRubro removes a rubro.
func (c *Client) DeleteRubro(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/rubros/%d", id), nil, nil)
}
