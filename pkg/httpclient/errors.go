package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/shopsphere/storefront/pkg/errors"
)

// upstreamErrorBody mirrors the `{"message": "..."}` error shape returned by
// the ShopSphere backend. The shape is not strictly contracted, so the
// message field is optional.
type upstreamErrorBody struct {
	Message string `json:"message"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an AppError carrying the upstream's message as an opaque string.
// The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, upstreamName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return apperrors.Upstream(
			fmt.Sprintf("%s returned status %d (failed to read body)", upstreamName, resp.StatusCode),
			resp.StatusCode,
		)
	}

	message := ""
	var body upstreamErrorBody
	if json.Unmarshal(bodyBytes, &body) == nil && body.Message != "" {
		message = body.Message
	}
	if message == "" {
		message = fmt.Sprintf("%s returned status %d", upstreamName, resp.StatusCode)
	}

	// Preserve the status semantics the upstream chose; the message stays
	// opaque either way.
	switch resp.StatusCode {
	case http.StatusNotFound:
		return &apperrors.AppError{
			Code:    "NOT_FOUND",
			Message: message,
			Status:  http.StatusNotFound,
			Err:     apperrors.ErrNotFound,
		}
	case http.StatusBadRequest:
		return apperrors.InvalidInput(message)
	case http.StatusUnauthorized:
		return apperrors.Unauthorized(message)
	case http.StatusForbidden:
		return apperrors.Forbidden(message)
	case http.StatusConflict:
		return apperrors.Conflict(message)
	default:
		return apperrors.Upstream(message, resp.StatusCode)
	}
}
