package handlers

import (
	"strings"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"smartpark/models"
	"smartpark/services"
)

func bearerToken(e *core.RequestEvent) string {
	header := e.Request.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
}

// requireSession resolves the bearer token into a session and, when role is
// non-empty, enforces it.
func requireSession(e *core.RequestEvent, sessions *services.SessionService, role string) (*models.Session, error) {
	session, err := sessions.Lookup(e.Request.Context(), bearerToken(e))
	if err != nil {
		return nil, apis.NewUnauthorizedError("Unauthorized", err)
	}

	if role != "" && session.Role != role {
		return nil, apis.NewForbiddenError("Access denied", nil)
	}

	return session, nil
}
