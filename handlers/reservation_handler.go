package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"smartpark/models"
	"smartpark/monitoring"
	"smartpark/services"
	"smartpark/status"
)

type ReservationHandler struct {
	app          *pocketbase.PocketBase
	reservations *services.ReservationService
	sessions     *services.SessionService
}

func NewReservationHandler(app *pocketbase.PocketBase, reservations *services.ReservationService, sessions *services.SessionService) *ReservationHandler {
	return &ReservationHandler{
		app:          app,
		reservations: reservations,
		sessions:     sessions,
	}
}

// CheckAvailability - Dry-run a reservation window against the guard and quote it
func (h *ReservationHandler) CheckAvailability(e *core.RequestEvent) error {
	session, err := requireSession(e, h.sessions, services.RoleClient)
	if err != nil {
		return err
	}

	var req models.ReservationRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	resp, err := h.reservations.CheckAvailability(e.Request.Context(), req, session.Email)
	if err != nil {
		if errors.Is(err, status.ErrSpotNotFound) {
			return apis.NewNotFoundError("Spot not found", err)
		}
		return apis.NewBadRequestError("Failed to check availability", err)
	}

	return e.JSON(http.StatusOK, resp)
}

// CreateReservation - Reserve a spot for the signed-in client
func (h *ReservationHandler) CreateReservation(e *core.RequestEvent) error {
	session, err := requireSession(e, h.sessions, services.RoleClient)
	if err != nil {
		return err
	}

	var req models.ReservationRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	resp, err := h.reservations.CreateReservation(e.Request.Context(), *session, req)
	if err != nil {
		switch {
		case errors.Is(err, status.ErrSpotAlreadyReserved),
			errors.Is(err, status.ErrClientHasActiveReservation),
			errors.Is(err, status.ErrInvalidTimeWindow),
			errors.Is(err, status.ErrMissingFields):
			monitoring.TrackReservationOperation("create", "rejected")
			return apis.NewBadRequestError(err.Error(), err)
		case errors.Is(err, status.ErrSpotNotFound):
			monitoring.TrackReservationOperation("create", "rejected")
			return apis.NewNotFoundError("Spot not found", err)
		default:
			monitoring.TrackReservationOperation("create", "error")
			return apis.NewBadRequestError("Failed to create reservation", err)
		}
	}

	monitoring.TrackReservationOperation("create", "success")

	return e.JSON(http.StatusOK, resp)
}

// ListReservations - Current reservations of the signed-in client
func (h *ReservationHandler) ListReservations(e *core.RequestEvent) error {
	session, err := requireSession(e, h.sessions, services.RoleClient)
	if err != nil {
		return err
	}

	reservations, err := h.reservations.ListReservations(e.Request.Context(), session.Email)
	if err != nil {
		return apis.NewBadRequestError("Failed to list reservations", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"reservations": reservations,
		"count":        len(reservations),
	})
}
