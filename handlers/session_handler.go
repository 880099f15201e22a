package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"smartpark/services"
	"smartpark/status"
)

type SessionHandler struct {
	app      *pocketbase.PocketBase
	sessions *services.SessionService
}

func NewSessionHandler(app *pocketbase.PocketBase, sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{
		app:      app,
		sessions: sessions,
	}
}

// SignInClient - Register or recognize a client and issue a session token
func (h *SessionHandler) SignInClient(e *core.RequestEvent) error {
	var req struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
	}

	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	session, err := h.sessions.SignInClient(e.Request.Context(), req.FullName, req.Email)
	if err != nil {
		if errors.Is(err, status.ErrMissingFields) {
			return apis.NewBadRequestError("Full name and email are required", err)
		}
		return apis.NewBadRequestError("Failed to sign in", err)
	}

	return e.JSON(http.StatusOK, session)
}

// SignInAdmin - Issue an admin session token
func (h *SessionHandler) SignInAdmin(e *core.RequestEvent) error {
	var req struct {
		Password string `json:"password"`
	}

	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	session, err := h.sessions.SignInAdmin(e.Request.Context(), req.Password)
	if err != nil {
		if errors.Is(err, status.ErrInvalidCredentials) {
			return apis.NewUnauthorizedError("Invalid credentials", err)
		}
		return apis.NewBadRequestError("Failed to sign in", err)
	}

	return e.JSON(http.StatusOK, session)
}

// SignOut - Drop the caller's session
func (h *SessionHandler) SignOut(e *core.RequestEvent) error {
	token := bearerToken(e)
	if token == "" {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	if err := h.sessions.SignOut(e.Request.Context(), token); err != nil {
		return apis.NewBadRequestError("Failed to sign out", err)
	}

	return e.JSON(http.StatusOK, map[string]string{"message": "Signed out"})
}
