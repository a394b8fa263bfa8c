package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shopsphere/storefront/internal/domain"
	"github.com/shopsphere/storefront/internal/guard"
	"github.com/shopsphere/storefront/internal/service"
	"github.com/shopsphere/storefront/pkg/httputil"
	"github.com/shopsphere/storefront/pkg/logger"
)

const (
	profileHeader = "X-Profile-ID"
	profileCookie = "ss_profile"

	// Browser-profile cookies live for a year; state behind them has its own
	// retention TTLs.
	profileCookieMaxAge = 365 * 24 * int(time.Hour/time.Second)
)

type contextKey string

const sessionContextKey contextKey = "session"

// ProfileID resolves the caller's browser-profile identity. An explicit
// X-Profile-ID header wins; otherwise the ss_profile cookie is used, and a
// new identity is minted and set when neither is present. The resolved id is
// stored in the request context.
func ProfileID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(profileHeader))
		if id == "" {
			if c, err := r.Cookie(profileCookie); err == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     profileCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   profileCookieMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := logger.WithProfileID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// profileID returns the resolved browser-profile identity for this request.
func profileID(r *http.Request) string {
	return logger.ProfileIDFromContext(r.Context())
}

// ContentTypeJSON rejects mutating requests whose body is not declared as JSON.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{
						Code:    "UNSUPPORTED_MEDIA_TYPE",
						Message: "request body must be application/json",
					},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Auth carries the session-backed route guards. Guard decisions are computed
// fresh on every request; nothing is cached between evaluations.
type Auth struct {
	sessions *service.SessionService
	logger   *slog.Logger
}

// NewAuth creates the guard middleware set.
func NewAuth(sessions *service.SessionService, logger *slog.Logger) *Auth {
	return &Auth{sessions: sessions, logger: logger}
}

// RequireSession gates routes that need any authenticated session. The
// restored session is placed in the request context for handlers.
func (a *Auth) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, restoring := a.restore(r)

		var d guard.Decision
		if restoring {
			d = guard.Pending
		} else {
			d = guard.CheckAuthenticated(sess)
		}
		if d != guard.Allow {
			a.writeDecision(w, r, d)
			return
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess)))
	})
}

// RequireAdmin gates admin-only routes.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, restoring := a.restore(r)

		d := guard.CheckAdmin(sess, restoring)
		if d != guard.Allow {
			a.writeDecision(w, r, d)
			return
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess)))
	})
}

// restore loads the caller's session. The boolean is true when the session
// store could not be consulted, meaning no allow-or-redirect decision can be
// made for this request.
func (a *Auth) restore(r *http.Request) (*domain.Session, bool) {
	sess, err := a.sessions.Restore(r.Context(), profileID(r))
	if err != nil {
		a.logger.WarnContext(r.Context(), "session restore unavailable",
			slog.String("error", err.Error()),
		)
		return nil, true
	}
	return sess, false
}

func (a *Auth) writeDecision(w http.ResponseWriter, r *http.Request, d guard.Decision) {
	a.logger.InfoContext(r.Context(), "route guard decision",
		slog.String("decision", d.String()),
		slog.String("path", r.URL.Path),
	)

	switch d {
	case guard.Pending:
		w.Header().Set("Retry-After", "1")
		httputil.WriteJSON(w, http.StatusServiceUnavailable, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "SESSION_PENDING",
				Message: "session state is temporarily unavailable, retry shortly",
			},
		})
	case guard.RedirectLogin:
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Redirect: d.RedirectPath(),
			Error: &httputil.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "authentication required",
			},
		})
	case guard.RedirectHome:
		httputil.WriteJSON(w, http.StatusForbidden, httputil.Response{
			Redirect: d.RedirectPath(),
			Error: &httputil.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "admin access required",
			},
		})
	}
}

func withSession(ctx context.Context, sess *domain.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// sessionFromContext returns the session placed by the guard middleware, or
// nil when the route is not session-gated.
func sessionFromContext(ctx context.Context) *domain.Session {
	sess, _ := ctx.Value(sessionContextKey).(*domain.Session)
	return sess
}
