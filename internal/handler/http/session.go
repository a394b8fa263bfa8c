package http

import (
	"log/slog"
	"net/http"

	"github.com/shopsphere/storefront/internal/domain"
	"github.com/shopsphere/storefront/internal/gateway"
	"github.com/shopsphere/storefront/internal/service"
	"github.com/shopsphere/storefront/pkg/httputil"
	"github.com/shopsphere/storefront/pkg/validator"
)

// SessionHandler exposes login, registration, session restore and logout.
type SessionHandler struct {
	sessions *service.SessionService
	backend  *gateway.Client
	logger   *slog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions *service.SessionService, backend *gateway.Client, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		backend:  backend,
		logger:   logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// sessionView is the session as exposed to the caller. The token stays
// server-side and is never echoed.
type sessionView struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func newSessionView(sess *domain.Session) sessionView {
	return sessionView{
		UserID: sess.UserID,
		Name:   sess.Name,
		Email:  sess.Email,
		Role:   sess.Role,
	}
}

// Login authenticates against the backend and establishes the session.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	raw, err := h.backend.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sess, err := h.sessions.Establish(r.Context(), profileID(r), raw, "")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newSessionView(sess)})
}

// Register creates an account on the backend and establishes the session.
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	raw, err := h.backend.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sess, err := h.sessions.Establish(r.Context(), profileID(r), raw, "")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: newSessionView(sess)})
}

// Current returns the restored session, or an explicit null when none exists.
// Absence of a session is a normal answer here, not an error.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Restore(r.Context(), profileID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if sess == nil {
		httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: nil})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newSessionView(sess)})
}

// Logout clears the session. The cart is left intact. Logging out when no
// session exists succeeds quietly.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(r.Context(), profileID(r)); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
