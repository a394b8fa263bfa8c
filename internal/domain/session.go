package domain

import "strings"

// Role constants define the user roles the storefront distinguishes.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Session is the canonical authenticated-identity record. It is either fully
// populated (identity and token both present) or absent; there is no partial
// state. Sessions are never mutated in place, only replaced wholesale.
type Session struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Token  string `json:"token"`
}

// IsAdmin reports whether the session belongs to an admin. Nil (absent)
// sessions are never admins.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// RawProfile mirrors the loosely-contracted profile shape returned by the
// ShopSphere backend. The backend has historically used several shapes for
// identity (`_id` vs `id`) and for the admin marker (a role string, a boolean
// `admin` flag, or a boolean `isAdmin` flag), and may embed the token in the
// record. All of them are accepted here and nowhere else: Normalize runs once
// at the gateway boundary and downstream code only sees Session.
type RawProfile struct {
	ID      string `json:"_id"`
	AltID   string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Admin   bool   `json:"admin"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}

// Identity returns the profile's identifier, whichever field carries it.
func (p RawProfile) Identity() string {
	if p.ID != "" {
		return p.ID
	}
	return p.AltID
}

// IsAdminAccount probes every historically-seen admin marker: a role string
// equal to "admin" (case-insensitive), or either boolean flag. A nil receiver
// models an absent profile and is never an admin.
func (p *RawProfile) IsAdminAccount() bool {
	if p == nil {
		return false
	}
	if strings.EqualFold(p.Role, RoleAdmin) {
		return true
	}
	return p.Admin || p.IsAdmin
}

// Normalize converts a raw backend profile plus token into the canonical
// Session record. The token argument wins over an embedded token field.
// Returns nil when identity or token is missing: a partial session is
// indistinguishable from no session.
func Normalize(raw RawProfile, token string) *Session {
	if token == "" {
		token = raw.Token
	}
	id := raw.Identity()
	if id == "" || token == "" {
		return nil
	}

	role := RoleCustomer
	if raw.IsAdminAccount() {
		role = RoleAdmin
	}

	return &Session{
		UserID: id,
		Name:   raw.Name,
		Email:  raw.Email,
		Role:   role,
		Token:  token,
	}
}
