// Package common provides shared utilities and types used across the
// application.
package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Common application errors.
var (
	// Session errors.
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Project selection errors.
	ErrNoProject       = errors.New("no project selected")
	ErrProjectNotFound = errors.New("project not found")

	// Storage errors.
	ErrNotFound = errors.New("not found")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
)

// APIError is a non-2xx response from the Admin Obras service, carrying
// the server-authored detail message when one was provided.
type APIError struct {
	Detail     string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// IsAuthError reports whether the server rejected the session itself.
// Only these errors may destroy a persisted token; transient failures
// must leave it intact.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized ||
		apiErr.StatusCode == http.StatusForbidden
}

// IsValidationError reports whether the failure is a 4xx business or
// validation rejection whose detail text should be shown verbatim.
func IsValidationError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 && !IsAuthError(err)
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage extracts the text to show for an error: the server's
// detail for validation failures, the wrapped user message when present,
// and a generic retry hint for everything else. Failed actions are never
// retried automatically; the user re-invokes them.
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}

	return "something went wrong, please try again"
}
