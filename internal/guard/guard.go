// Package guard decides whether the current session may view a protected
// route. Decisions are pure functions of session state and are recomputed
// from scratch on every request; nothing is cached between evaluations.
package guard

import "github.com/shopsphere/storefront/internal/domain"

// Decision is the outcome of evaluating a gate for one request.
type Decision int

const (
	// Allow lets the request through.
	Allow Decision = iota
	// Pending means session restoration is still outstanding; no redirect
	// decision can be made yet and the caller should retry shortly.
	Pending
	// RedirectLogin sends an unauthenticated caller to the login view.
	RedirectLogin
	// RedirectHome sends an authenticated but unauthorized caller home.
	RedirectHome
)

// String returns the decision name for logs.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Pending:
		return "pending"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

// RedirectPath returns the navigation target for redirect decisions, or ""
// for Allow and Pending.
func (d Decision) RedirectPath() string {
	switch d {
	case RedirectLogin:
		return "/login"
	case RedirectHome:
		return "/"
	default:
		return ""
	}
}

// CheckAuthenticated gates routes that require any authenticated session.
// An absent session redirects to login.
func CheckAuthenticated(sess *domain.Session) Decision {
	if sess == nil {
		return RedirectLogin
	}
	return Allow
}

// CheckAdmin gates admin-only routes. While session restoration is still in
// progress no redirect decision is made; an absent session redirects to
// login; a non-admin session redirects home.
func CheckAdmin(sess *domain.Session, restoring bool) Decision {
	if restoring {
		return Pending
	}
	if sess == nil {
		return RedirectLogin
	}
	if !sess.IsAdmin() {
		return RedirectHome
	}
	return Allow
}
