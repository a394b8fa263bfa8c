// Package gateway brokers every call to the remote ShopSphere backend. All
// raw backend shapes are normalized here; the rest of the service only sees
// canonical domain records. Requests are never retried: a failed call
// surfaces immediately to the caller.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopsphere/storefront/pkg/httpclient"

	apperrors "github.com/shopsphere/storefront/pkg/errors"
)

const upstreamName = "shopsphere backend"

// Client talks to the remote ShopSphere REST backend.
type Client struct {
	baseURL string
	http    *httpclient.CircuitBreakerClient
	logger  *slog.Logger
}

// Config holds gateway configuration.
type Config struct {
	// BaseURL is the backend root, e.g. "http://backend:5000/api".
	BaseURL string
	// Timeout bounds each request. There is exactly one attempt per call.
	Timeout time.Duration
}

// NewClient creates a gateway client with circuit breaker protection and no
// request retries.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	base := httpclient.New(httpclient.NoRetryConfig(cfg.Timeout))
	cb := httpclient.NewCircuitBreakerClient(base, httpclient.DefaultCircuitBreakerConfig("shopsphere-backend"), logger)

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    cb,
		logger:  logger,
	}
}

// State exposes the circuit breaker state for health reporting.
func (c *Client) State() string {
	return c.http.State().String()
}

// doJSON performs one backend request. A non-empty token is attached as a
// bearer credential; the token string itself is opaque and never inspected.
// A non-2xx response is translated into an AppError carrying the backend's
// message. When out is non-nil the response body is decoded into it.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		if errors.Is(err, httpclient.ErrCircuitOpen) {
			return apperrors.Unavailable("backend temporarily unavailable")
		}
		c.logger.ErrorContext(ctx, "backend request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return apperrors.Upstream("backend request failed", http.StatusBadGateway)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return httpclient.ParseResponseError(resp, upstreamName)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
		return nil
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(out); err != nil {
		return apperrors.Upstream("backend returned an unreadable response", http.StatusBadGateway)
	}

	return nil
}

// toMinorUnits converts a backend decimal price into minor currency units.
func toMinorUnits(price float64) int64 {
	return int64(price*100 + 0.5)
}

// toDecimal converts minor currency units into the decimal price shape the
// backend expects.
func toDecimal(price int64) float64 {
	return float64(price) / 100
}
