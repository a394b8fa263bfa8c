package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsphere/storefront/internal/domain"
	apperrors "github.com/shopsphere/storefront/pkg/errors"
)

func TestSessionRepository_RoundTrip(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRepository(client, 24*time.Hour)
	ctx := context.Background()

	sess := &domain.Session{
		UserID: "u1",
		Name:   "Ada",
		Email:  "ada@example.com",
		Role:   domain.RoleAdmin,
		Token:  "tok-1",
	}
	require.NoError(t, repo.Save(ctx, "profile-1", sess))

	got, err := repo.Get(ctx, "profile-1")
	require.NoError(t, err)

	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, domain.RoleAdmin, got.Role)
	assert.Equal(t, "tok-1", got.Token)
}

func TestSessionRepository_Get_NotFound(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRepository(client, 24*time.Hour)

	_, err := repo.Get(context.Background(), "nobody")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSessionRepository_Get_RawBackendShape(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRepository(client, 24*time.Hour)

	// A record stored verbatim from the backend: `_id` identity, boolean
	// admin marker, embedded token.
	require.NoError(t, mr.Set("session:profile-1",
		`{"_id":"u9","name":"Eve","email":"eve@example.com","isAdmin":true,"token":"tok-raw"}`))

	got, err := repo.Get(context.Background(), "profile-1")
	require.NoError(t, err)

	assert.Equal(t, "u9", got.UserID)
	assert.Equal(t, domain.RoleAdmin, got.Role)
	assert.Equal(t, "tok-raw", got.Token)
}

func TestSessionRepository_Get_LegacyTokenKey(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRepository(client, 24*time.Hour)

	require.NoError(t, mr.Set("session:profile-1", `{"id":"u2","name":"Bob","role":"customer"}`))
	require.NoError(t, mr.Set("session:profile-1:token", "tok-legacy"))

	got, err := repo.Get(context.Background(), "profile-1")
	require.NoError(t, err)

	assert.Equal(t, "u2", got.UserID)
	assert.Equal(t, "tok-legacy", got.Token)
}

func TestSessionRepository_Get_MissingTokenReadsAsAbsent(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRepository(client, 24*time.Hour)

	require.NoError(t, mr.Set("session:profile-1", `{"_id":"u1","name":"Ada"}`))

	_, err := repo.Get(context.Background(), "profile-1")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSessionRepository_Get_MissingIdentityReadsAsAbsent(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRepository(client, 24*time.Hour)

	require.NoError(t, mr.Set("session:profile-1", `{"name":"Ada","token":"tok"}`))

	_, err := repo.Get(context.Background(), "profile-1")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSessionRepository_Get_MalformedReadsAsAbsent(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRepository(client, 24*time.Hour)

	require.NoError(t, mr.Set("session:profile-1", "{not json"))

	_, err := repo.Get(context.Background(), "profile-1")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSessionRepository_Delete_RemovesAllKeyForms(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRepository(client, 24*time.Hour)
	ctx := context.Background()

	require.NoError(t, mr.Set("session:profile-1", `{"_id":"u1","token":"tok"}`))
	require.NoError(t, mr.Set("session:profile-1:token", "tok"))

	require.NoError(t, repo.Delete(ctx, "profile-1"))

	assert.False(t, mr.Exists("session:profile-1"))
	assert.False(t, mr.Exists("session:profile-1:token"))
}

func TestSessionRepository_Save_SetsTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRepository(client, 12*time.Hour)

	sess := &domain.Session{UserID: "u1", Role: domain.RoleCustomer, Token: "tok"}
	require.NoError(t, repo.Save(context.Background(), "profile-1", sess))

	assert.Equal(t, 12*time.Hour, mr.TTL("session:profile-1"))
}
