package monitoring

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"smartpark/models"
	"smartpark/repository"
	"smartpark/services"
)

var (
	spotStatusTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "parking_spot_status_total",
			Help: "Current number of spots per display status",
		},
		[]string{"status"},
	)

	reservationOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservation_operations_total",
			Help: "Total reservation operations",
		},
		[]string{"operation", "status"},
	)

	revenueToday = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "revenue_today_total",
			Help: "Revenue accumulated for the current calendar day",
		},
	)

	occupancyRatePercent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "occupancy_rate_percent",
			Help: "Percentage of spots not available",
		},
	)

	archivedReservations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "archived_reservations_total",
			Help: "Reservations moved into history by the archiver",
		},
	)
)

// TrackReservationOperation counts a reservation API operation outcome.
func TrackReservationOperation(operation, status string) {
	reservationOperations.WithLabelValues(operation, status).Inc()
}

// TrackArchiveRun counts reservations archived by one sweep.
func TrackArchiveRun(count int) {
	archivedReservations.Add(float64(count))
}

// Monitor keeps the lot-level gauges current: spot status counts from the
// occupancy feed, revenue and occupancy rate from periodic aggregation.
type Monitor struct {
	repo       repository.ParkingRepository
	resolver   *services.SpotStatusResolver
	aggregator *services.RevenueAggregator
}

func NewMonitor(repo repository.ParkingRepository, resolver *services.SpotStatusResolver, aggregator *services.RevenueAggregator) *Monitor {
	return &Monitor{
		repo:       repo,
		resolver:   resolver,
		aggregator: aggregator,
	}
}

// Run consumes resolved spot snapshots and refreshes the revenue gauges every
// 30 seconds until the context is cancelled.
func (m *Monitor) Run(ctx context.Context, snapshots <-chan []models.Spot) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case spots := <-snapshots:
			m.setSpotGauges(spots)
		case <-ticker.C:
			m.collectRevenue(ctx)
		}
	}
}

func (m *Monitor) setSpotGauges(spots []models.Spot) {
	counts := map[models.SpotStatus]int{
		models.SpotAvailable: 0,
		models.SpotReserved:  0,
		models.SpotOccupied:  0,
	}
	for _, spot := range spots {
		counts[spot.Status]++
	}
	for status, count := range counts {
		spotStatusTotal.WithLabelValues(string(status)).Set(float64(count))
	}
}

func (m *Monitor) collectRevenue(ctx context.Context) {
	day := m.aggregator.DayKey(time.Now())

	history, err := m.repo.History(ctx, day)
	if err != nil {
		slog.Error("Metrics revenue collection failed", "error", err)
		return
	}
	details, err := m.repo.Details(ctx)
	if err != nil {
		slog.Error("Metrics detail collection failed", "error", err)
		return
	}
	occupancy, err := m.repo.Occupancy(ctx)
	if err != nil {
		slog.Error("Metrics occupancy collection failed", "error", err)
		return
	}

	spots := m.resolver.Resolve(occupancy, details)
	report := m.aggregator.Aggregate(day, history, details, spots)

	revenueToday.Set(report.TotalRevenue)
	occupancyRatePercent.Set(float64(report.OccupancyRate))
}
