package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"smartpark/services"
)

type MailHandler struct {
	app  *pocketbase.PocketBase
	mail *services.MailService
}

func NewMailHandler(app *pocketbase.PocketBase, mail *services.MailService) *MailHandler {
	return &MailHandler{
		app:  app,
		mail: mail,
	}
}

// SendVerification - Email a verification code to a prospective client
func (h *MailHandler) SendVerification(e *core.RequestEvent) error {
	var req struct {
		Email            string `json:"email"`
		FullName         string `json:"full_name"`
		VerificationCode string `json:"verification_code"`
	}

	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if req.Email == "" || req.FullName == "" || req.VerificationCode == "" {
		return apis.NewBadRequestError("Email, full name and verification code are required", nil)
	}

	if err := h.mail.SendVerificationEmail(req.Email, req.FullName, req.VerificationCode); err != nil {
		return apis.NewApiError(http.StatusInternalServerError, "Failed to send verification email", err)
	}

	return e.JSON(http.StatusOK, map[string]string{"message": "Verification email sent"})
}
