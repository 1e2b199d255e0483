package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryCodeAndStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"validation", NewValidationError("email is required"), CodeValidation, http.StatusBadRequest},
		{"credentials", NewUnauthorized(CodeInvalidCredentials, "invalid credentials"), CodeInvalidCredentials, http.StatusUnauthorized},
		{"refresh expired", NewUnauthorized(CodeRefreshTokenExpired, "refresh token expired"), CodeRefreshTokenExpired, http.StatusUnauthorized},
		{"forbidden", NewForbidden("insufficient role"), CodeForbidden, http.StatusForbidden},
		{"not found", NewNotFound("user"), CodeNotFound, http.StatusNotFound},
		{"conflict", NewConflict("user is already a member of this tenant"), CodeConflict, http.StatusConflict},
		{"rate limited", NewRateLimited("too many login attempts"), CodeRateLimited, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var domainErr *DomainError
			require.ErrorAs(t, tt.err, &domainErr)
			assert.Equal(t, tt.code, domainErr.Code)
			assert.Equal(t, tt.status, domainErr.HTTPStatus)
			assert.NotEmpty(t, domainErr.Message)
		})
	}
}

func TestNotFoundMessageNamesResource(t *testing.T) {
	var domainErr *DomainError
	require.ErrorAs(t, NewNotFound("property"), &domainErr)
	assert.Equal(t, "property not found", domainErr.Message)
}

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewForbidden("insufficient role")
	converted := ToDomainError(original)
	assert.Equal(t, CodeForbidden, converted.Code)

	wrapped := fmt.Errorf("handler: %w", original)
	converted = ToDomainError(wrapped)
	assert.Equal(t, CodeForbidden, converted.Code)
}

func TestToDomainErrorMasksUnknownErrors(t *testing.T) {
	cause := errors.New("pq: connection refused")
	converted := ToDomainError(cause)

	assert.Equal(t, CodeInternal, converted.Code)
	assert.Equal(t, http.StatusInternalServerError, converted.HTTPStatus)
	assert.Equal(t, "internal server error", converted.Message)
	assert.ErrorIs(t, converted, cause)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestInternalErrorHidesCause(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := NewInternalError(cause)

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "internal server error", domainErr.Message)
	assert.ErrorIs(t, err, cause)
}
