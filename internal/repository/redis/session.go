package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopsphere/storefront/internal/domain"
	apperrors "github.com/shopsphere/storefront/pkg/errors"
)

const (
	sessionKeyPrefix = "session:"
	// Historical variants stored the token under its own key instead of
	// embedding it in the profile record. Reads tolerate both forms.
	tokenKeySuffix = ":token"
)

// persistedSession covers every persisted session shape seen in the wild:
// the canonical record this service writes plus the raw backend shapes older
// deployments stored verbatim.
type persistedSession struct {
	UserID  string `json:"user_id"`
	MongoID string `json:"_id"`
	AltID   string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Admin   bool   `json:"admin"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}

// SessionRepository implements repository.SessionRepository using Redis.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository creates a new Redis-backed session repository.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get restores the session for a profile. The session is populated only when
// both an identity-bearing record and a token are present; partial or
// malformed state reads as absent. Persisted data is trusted as-is: no
// signature or expiry check happens here.
func (r *SessionRepository) Get(ctx context.Context, profileID string) (*domain.Session, error) {
	key := sessionKeyPrefix + profileID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("session", profileID)
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var stored persistedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		// Corrupt persisted state is indistinguishable from no session.
		return nil, apperrors.NotFound("session", profileID)
	}

	token := stored.Token
	if token == "" {
		// Legacy form: token under a separate key.
		legacy, err := r.client.Get(ctx, key+tokenKeySuffix).Result()
		if err != nil && err != redis.Nil {
			return nil, fmt.Errorf("redis get session token: %w", err)
		}
		token = legacy
	}

	sess := domain.Normalize(domain.RawProfile{
		ID:      stored.MongoID,
		AltID:   firstNonEmpty(stored.UserID, stored.AltID),
		Name:    stored.Name,
		Email:   stored.Email,
		Role:    stored.Role,
		Admin:   stored.Admin,
		IsAdmin: stored.IsAdmin,
	}, token)
	if sess == nil {
		return nil, apperrors.NotFound("session", profileID)
	}

	return sess, nil
}

// Save replaces the persisted session wholesale, token embedded in the record.
func (r *SessionRepository) Save(ctx context.Context, profileID string, sess *domain.Session) error {
	key := sessionKeyPrefix + profileID

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}

	return nil
}

// Delete removes the persisted session, including the legacy token key.
func (r *SessionRepository) Delete(ctx context.Context, profileID string) error {
	key := sessionKeyPrefix + profileID

	if err := r.client.Del(ctx, key, key+tokenKeySuffix).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
