package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"smartpark/models"
	"smartpark/repository"
	"smartpark/services"
)

type SpotHandler struct {
	app      *pocketbase.PocketBase
	repo     repository.ParkingRepository
	resolver *services.SpotStatusResolver
	sessions *services.SessionService
}

func NewSpotHandler(app *pocketbase.PocketBase, repo repository.ParkingRepository, resolver *services.SpotStatusResolver, sessions *services.SessionService) *SpotHandler {
	return &SpotHandler{
		app:      app,
		repo:     repo,
		resolver: resolver,
		sessions: sessions,
	}
}

// GetSpots - Current display state of the whole lot
func (h *SpotHandler) GetSpots(e *core.RequestEvent) error {
	if _, err := requireSession(e, h.sessions, ""); err != nil {
		return err
	}

	ctx := e.Request.Context()

	occupancy, err := h.repo.Occupancy(ctx)
	if err != nil {
		return apis.NewBadRequestError("Failed to get occupancy", err)
	}

	details, err := h.repo.Details(ctx)
	if err != nil {
		return apis.NewBadRequestError("Failed to get reservation details", err)
	}

	spots := h.resolver.Resolve(occupancy, details)

	available := 0
	for _, spot := range spots {
		if spot.Status == models.SpotAvailable {
			available++
		}
	}

	return e.JSON(http.StatusOK, map[string]any{
		"spots":           spots,
		"total_spots":     len(spots),
		"available_spots": available,
	})
}
