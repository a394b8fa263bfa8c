package gateway

import (
	"context"
	"net/http"

	"github.com/shopsphere/storefront/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the backend and returns the raw profile it
// responded with, token embedded. The raw shape is normalized by the caller.
func (c *Client) Login(ctx context.Context, email, password string) (domain.RawProfile, error) {
	var raw domain.RawProfile
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", loginRequest{
		Email:    email,
		Password: password,
	}, &raw)
	if err != nil {
		return domain.RawProfile{}, err
	}
	return raw, nil
}

// Register creates an account on the backend and returns the raw profile,
// token embedded.
func (c *Client) Register(ctx context.Context, name, email, password string) (domain.RawProfile, error) {
	var raw domain.RawProfile
	err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", registerRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, &raw)
	if err != nil {
		return domain.RawProfile{}, err
	}
	return raw, nil
}
