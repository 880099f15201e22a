package services

import (
	"fmt"
	"net/mail"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/mailer"

	"smartpark/config"
	"smartpark/models"
)

// MailService sends the transactional emails through the PocketBase mailer
// (SMTP settings live in the app configuration).
type MailService struct {
	app           core.App
	senderName    string
	senderAddress string
	currency      string
}

func NewMailService(app core.App, cfg *config.Config) *MailService {
	return &MailService{
		app:           app,
		senderName:    cfg.SenderName,
		senderAddress: cfg.SenderAddress,
		currency:      cfg.Currency,
	}
}

// SendVerificationEmail sends the sign-up verification code.
func (s *MailService) SendVerificationEmail(email, fullName, verificationCode string) error {
	message := &mailer.Message{
		From:    mail.Address{Name: s.senderName, Address: s.senderAddress},
		To:      []mail.Address{{Address: email}},
		Subject: "Code de vérification SmartPark",
		Text: fmt.Sprintf("Bonjour %s, votre code de vérification est : %s",
			fullName, verificationCode),
	}

	return s.app.NewMailClient().Send(message)
}

// SendReservationEmail sends the confirmation for a paid reservation,
// including the gate access code.
func (s *MailService) SendReservationEmail(detail models.ReservationDetail, spotID int) error {
	message := &mailer.Message{
		From:    mail.Address{Name: s.senderName, Address: s.senderAddress},
		To:      []mail.Address{{Name: detail.ClientName, Address: detail.ClientEmail}},
		Subject: fmt.Sprintf("Votre réservation SmartPark est confirmée - Place %d", spotID),
		Text: fmt.Sprintf(
			"Bonjour %s,\n\nVotre réservation chez SmartPark est confirmée.\n\n"+
				"Détails de la réservation :\n"+
				"Place : %d\n"+
				"Début : %s\n"+
				"Fin : %s\n"+
				"Total : %.2f %s\n"+
				"Code d'accès : %s\n\n"+
				"Merci d'avoir choisi SmartPark.",
			detail.ClientName,
			spotID,
			detail.StartTime.Format("02 Jan 2006 15:04"),
			detail.EndTime.Format("02 Jan 2006 15:04"),
			detail.TotalPrice, s.currency,
			detail.AccessCode,
		),
	}

	return s.app.NewMailClient().Send(message)
}
