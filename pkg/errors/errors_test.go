package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrGroupNotFound, http.StatusNotFound},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrInvalidToken, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrAccountSuspended, http.StatusForbidden},
		{ErrNotGroupCreator, http.StatusForbidden},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrEmptyMessage, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		require.Equal(t, tc.code, HTTPStatusFromError(tc.err), "error: %v", tc.err)
	}
}

func TestBadRequestKeepsMessage(t *testing.T) {
	err := BadRequest("amount must be positive")

	require.Equal(t, "amount must be positive", err.Error())
	require.Equal(t, http.StatusBadRequest, HTTPStatusFromError(err))
}

func TestAPIErrorCodePassthrough(t *testing.T) {
	err := NewAPIError("upstream busy", http.StatusServiceUnavailable)

	require.Equal(t, http.StatusServiceUnavailable, HTTPStatusFromError(err))

	// Код сохраняется и через обёртку
	wrapped := fmt.Errorf("payment check: %w", err)
	require.Equal(t, http.StatusServiceUnavailable, HTTPStatusFromError(wrapped))
}
