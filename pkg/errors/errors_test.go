package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := NotFound("session", "p1")

	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Message, "session")
	assert.Contains(t, err.Message, "p1")
}

func TestUpstream_PreservesStatus(t *testing.T) {
	err := Upstream("backend said no", http.StatusConflict)

	assert.Equal(t, http.StatusConflict, err.Status)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestUpstream_NonErrorStatusBecomesBadGateway(t *testing.T) {
	err := Upstream("weird status", http.StatusOK)

	assert.Equal(t, http.StatusBadGateway, err.Status)
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := Internal(inner)

	assert.ErrorIs(t, err, inner)
}

func TestAppError_ErrorString(t *testing.T) {
	err := InvalidInput("quantity must be greater than 0")

	assert.Contains(t, err.Error(), "INVALID_INPUT")
	assert.Contains(t, err.Error(), "quantity must be greater than 0")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("x", "1"), http.StatusNotFound},
		{InvalidInput("bad"), http.StatusBadRequest},
		{Unauthorized("no"), http.StatusUnauthorized},
		{Forbidden("no"), http.StatusForbidden},
		{Conflict("dup"), http.StatusConflict},
		{Unavailable("down"), http.StatusServiceUnavailable},
		{fmt.Errorf("wrapped: %w", ErrNotFound), http.StatusNotFound},
		{errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err))
	}
}

func TestWrap(t *testing.T) {
	err := Wrap(ErrConflict, "save session")

	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "save session")
}
