package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shopsphere/storefront/internal/domain"
	"github.com/shopsphere/storefront/internal/repository"
	apperrors "github.com/shopsphere/storefront/pkg/errors"
)

// SessionService manages the per-profile authenticated session record.
// Sessions are stored fully populated or not at all, and are replaced
// wholesale on every login.
type SessionService struct {
	repo   repository.SessionRepository
	logger *slog.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(repo repository.SessionRepository, logger *slog.Logger) *SessionService {
	return &SessionService{
		repo:   repo,
		logger: logger,
	}
}

// Restore loads the session for a profile. An absent, partial, or malformed
// persisted record yields (nil, nil): no session, but not a failure. A
// non-nil error means the store itself was unreachable and no decision about
// the session could be made.
func (s *SessionService) Restore(ctx context.Context, profileID string) (*domain.Session, error) {
	if profileID == "" {
		return nil, apperrors.InvalidInput("profile id is required")
	}

	sess, err := s.repo.Get(ctx, profileID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	return sess, nil
}

// Establish normalizes a raw backend profile plus token into the canonical
// session record and persists it, replacing any previous session. A response
// missing identity or token never produces a partial session.
func (s *SessionService) Establish(ctx context.Context, profileID string, raw domain.RawProfile, token string) (*domain.Session, error) {
	if profileID == "" {
		return nil, apperrors.InvalidInput("profile id is required")
	}

	sess := domain.Normalize(raw, token)
	if sess == nil {
		return nil, apperrors.Upstream("auth response missing identity or token", http.StatusBadGateway)
	}

	if err := s.repo.Save(ctx, profileID, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.InfoContext(ctx, "session established",
		slog.String("profile_id", profileID),
		slog.String("user_id", sess.UserID),
		slog.String("role", sess.Role),
	)

	return sess, nil
}

// Clear removes the persisted session. The cart is deliberately untouched:
// logging out does not empty the cart.
func (s *SessionService) Clear(ctx context.Context, profileID string) error {
	if profileID == "" {
		return apperrors.InvalidInput("profile id is required")
	}

	if err := s.repo.Delete(ctx, profileID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.logger.InfoContext(ctx, "session cleared",
		slog.String("profile_id", profileID),
	)

	return nil
}
