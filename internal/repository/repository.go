package repository

import (
	"context"
	"errors"

	"github.com/shopsphere/storefront/internal/domain"
)

// ErrMalformed marks persisted state that could not be decoded. Callers treat
// it like an absent record; it is never surfaced to the user.
var ErrMalformed = errors.New("persisted state is malformed")

// CartRepository persists the cart line-item sequence per browser profile.
// Every save overwrites the full sequence wholesale.
type CartRepository interface {
	// Get retrieves the cart for a profile. Returns apperrors.ErrNotFound
	// when no cart is stored and ErrMalformed when the payload cannot be
	// decoded.
	Get(ctx context.Context, profileID string) (*domain.Cart, error)

	// Save persists the cart, overwriting any existing record for the profile.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the cart for a profile.
	Delete(ctx context.Context, profileID string) error
}

// SessionRepository persists the session record per browser profile.
type SessionRepository interface {
	// Get retrieves the session for a profile. Partial or malformed persisted
	// state reads as absent (apperrors.ErrNotFound).
	Get(ctx context.Context, profileID string) (*domain.Session, error)

	// Save persists the session, replacing any existing record wholesale.
	Save(ctx context.Context, profileID string, sess *domain.Session) error

	// Delete removes the persisted session (all key forms).
	Delete(ctx context.Context, profileID string) error
}
