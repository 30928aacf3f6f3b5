package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{&APIError{StatusCode: 401}, "unauthorized", true},
		{&APIError{StatusCode: 403}, "forbidden", true},
		{&APIError{StatusCode: 400, Detail: "bad amount"}, "validation", false},
		{&APIError{StatusCode: 500}, "server error", false},
		{errors.New("connection refused"), "network failure", false},
		{fmt.Errorf("fetch profile: %w", &APIError{StatusCode: 403}), "wrapped", true},
		{nil, "nil", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAuthError(tt.err))
		})
	}
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(&APIError{StatusCode: 400, Detail: "amount required"}))
	assert.True(t, IsValidationError(&APIError{StatusCode: 409, Detail: "payment has a receipt attached"}))
	assert.False(t, IsValidationError(&APIError{StatusCode: 401}))
	assert.False(t, IsValidationError(&APIError{StatusCode: 503}))
	assert.False(t, IsValidationError(errors.New("timeout")))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "amount required",
		UserMessage(&APIError{StatusCode: 400, Detail: "amount required"}))
	assert.Equal(t, "could not load projects",
		UserMessage(NewUserError("could not load projects", errors.New("dial tcp"))))
	assert.Equal(t, "something went wrong, please try again",
		UserMessage(errors.New("dial tcp: i/o timeout")))
}
