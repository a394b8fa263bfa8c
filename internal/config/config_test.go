package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 720*time.Hour, cfg.CartTTL)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "http://localhost:5000/api", cfg.BackendBaseURL)
	assert.Equal(t, 10*time.Second, cfg.BackendTimeout)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("BACKEND_BASE_URL", "https://api.example.com/v1")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example.com")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "https://api.example.com/v1", cfg.BackendBaseURL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"https://shop.example.com"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "99999")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_EmptyBackendURL(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_NegativeBackendTimeout(t *testing.T) {
	t.Setenv("BACKEND_TIMEOUT", "-1s")

	_, err := Load()

	assert.Error(t, err)
}
