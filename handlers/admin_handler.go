package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"smartpark/models"
	"smartpark/repository"
	"smartpark/services"
)

type AdminHandler struct {
	app        *pocketbase.PocketBase
	repo       repository.ParkingRepository
	resolver   *services.SpotStatusResolver
	aggregator *services.RevenueAggregator
	sessions   *services.SessionService
}

func NewAdminHandler(app *pocketbase.PocketBase, repo repository.ParkingRepository, resolver *services.SpotStatusResolver, aggregator *services.RevenueAggregator, sessions *services.SessionService) *AdminHandler {
	return &AdminHandler{
		app:        app,
		repo:       repo,
		resolver:   resolver,
		aggregator: aggregator,
		sessions:   sessions,
	}
}

// GetDashboard - Lot state, active clients and today's revenue in one response
func (h *AdminHandler) GetDashboard(e *core.RequestEvent) error {
	if _, err := requireSession(e, h.sessions, services.RoleAdmin); err != nil {
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

	day := h.aggregator.DayKey(time.Now())

	history, err := h.repo.History(ctx, day)
	if err != nil {
		return apis.NewBadRequestError("Failed to get reservation history", err)
	}

	spots := h.resolver.Resolve(occupancy, details)
	report := h.aggregator.Aggregate(day, history, details, spots)

	return e.JSON(http.StatusOK, map[string]any{
		"spots":   spots,
		"clients": activeClients(details),
		"revenue": report,
	})
}

// activeClients lists the distinct clients holding a reservation, sorted by
// email for a stable dashboard order.
func activeClients(details map[string]models.ReservationDetail) []models.Client {
	seen := map[string]models.Client{}
	for _, detail := range details {
		if detail.ClientEmail == "" {
			continue
		}
		seen[detail.ClientEmail] = models.Client{
			FullName: detail.ClientName,
			Email:    detail.ClientEmail,
		}
	}

	clients := make([]models.Client, 0, len(seen))
	for _, client := range seen {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].Email < clients[j].Email
	})

	return clients
}
