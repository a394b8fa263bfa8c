package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopsphere/storefront/internal/domain"
)

func TestCheckAuthenticated(t *testing.T) {
	assert.Equal(t, RedirectLogin, CheckAuthenticated(nil))
	assert.Equal(t, Allow, CheckAuthenticated(&domain.Session{UserID: "u1", Role: domain.RoleCustomer, Token: "t"}))
}

func TestCheckAdmin(t *testing.T) {
	admin := &domain.Session{UserID: "u1", Role: domain.RoleAdmin, Token: "t"}
	customer := &domain.Session{UserID: "u2", Role: domain.RoleCustomer, Token: "t"}

	tests := []struct {
		name      string
		sess      *domain.Session
		restoring bool
		want      Decision
	}{
		{"restoring defers even with admin session", admin, true, Pending},
		{"restoring defers with no session", nil, true, Pending},
		{"no session redirects to login", nil, false, RedirectLogin},
		{"customer redirects home", customer, false, RedirectHome},
		{"admin is allowed", admin, false, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckAdmin(tt.sess, tt.restoring))
		})
	}
}

func TestDecision_RedirectPath(t *testing.T) {
	assert.Equal(t, "/login", RedirectLogin.RedirectPath())
	assert.Equal(t, "/", RedirectHome.RedirectPath())
	assert.Equal(t, "", Allow.RedirectPath())
	assert.Equal(t, "", Pending.RedirectPath())
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "redirect_login", RedirectLogin.String())
	assert.Equal(t, "redirect_home", RedirectHome.String())
}
