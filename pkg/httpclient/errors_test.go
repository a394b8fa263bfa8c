package httpclient

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/shopsphere/storefront/pkg/errors"
)

func newResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_ExtractsMessage(t *testing.T) {
	resp := newResponse(http.StatusBadRequest, `{"message":"Invalid order items"}`)

	err := ParseResponseError(resp, "backend")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Invalid order items", appErr.Message)
}

func TestParseResponseError_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		target error
	}{
		{http.StatusNotFound, apperrors.ErrNotFound},
		{http.StatusUnauthorized, apperrors.ErrUnauthorized},
		{http.StatusForbidden, apperrors.ErrForbidden},
		{http.StatusConflict, apperrors.ErrConflict},
		{http.StatusBadGateway, apperrors.ErrUpstream},
	}

	for _, tt := range tests {
		err := ParseResponseError(newResponse(tt.status, `{"message":"nope"}`), "backend")
		assert.ErrorIs(t, err, tt.target, "status %d", tt.status)
	}
}

func TestParseResponseError_NonJSONBody(t *testing.T) {
	resp := newResponse(http.StatusInternalServerError, "<html>Server Error</html>")

	err := ParseResponseError(resp, "backend")

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "backend returned status 500")
}

func TestParseResponseError_EmptyMessage(t *testing.T) {
	resp := newResponse(http.StatusBadGateway, `{}`)

	err := ParseResponseError(resp, "backend")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "502")
}
