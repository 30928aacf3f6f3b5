package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/nbourbon/admin-obras-sub001/internal/common"
	"github.com/nbourbon/admin-obras-sub001/internal/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	Credential string `json:"credential"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for a bearer token. A 401 from the
// service means the credentials were rejected, not that a session
// expired, so it maps to ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		var apiErr *common.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return "", fmt.Errorf("%w: %s", common.ErrInvalidCredentials, apiErr.Detail)
		}
		return "", err
	}
	return resp.AccessToken, nil
}

// GoogleLogin exchanges a Google ID token for a bearer token.
func (c *Client) GoogleLogin(ctx context.Context, credential string) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/google", googleLoginRequest{Credential: credential}, &resp)
	if err != nil {
		var apiErr *common.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return "", fmt.Errorf("%w: %s", common.ErrInvalidCredentials, apiErr.Detail)
		}
		return "", err
	}
	return resp.AccessToken, nil
}

// Me returns the profile of the token's owner.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
