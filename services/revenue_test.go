package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"smartpark/models"
)

func day(t *testing.T, hour int) time.Time {
	t.Helper()
	return time.Date(2025, 8, 30, hour, 0, 0, 0, time.UTC)
}

func TestRevenueAggregator_DayKey(t *testing.T) {
	aggregator := NewRevenueAggregator(time.UTC)

	key := aggregator.DayKey(time.Date(2025, 8, 30, 23, 59, 0, 0, time.UTC))

	assert.Equal(t, "2025-08-30", key)
}

func TestRevenueAggregator_DayKey_UsesConfiguredLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	aggregator := NewRevenueAggregator(loc)

	// 23:30 UTC is already the next day at UTC+2.
	key := aggregator.DayKey(time.Date(2025, 8, 30, 23, 30, 0, 0, time.UTC))

	assert.Equal(t, "2025-08-31", key)
}

func TestRevenueAggregator_Aggregate_HistoryAndActive(t *testing.T) {
	aggregator := NewRevenueAggregator(time.UTC)

	history := map[string]map[string]models.HistoryEntry{
		"Place1": {
			"ref1": {SpotKey: "Place1", StartTime: day(t, 8), EndTime: day(t, 18), TotalPrice: 100},
		},
		"Place2": {
			"ref2": {SpotKey: "Place2", StartTime: day(t, 6), EndTime: day(t, 20), TotalPrice: 140},
		},
	}
	details := map[string]models.ReservationDetail{
		"Place3": {SpotKey: "Place3", StartTime: day(t, 10), EndTime: day(t, 17), TotalPrice: 70},
	}
	spots := []models.Spot{
		{ID: 1, Status: models.SpotAvailable},
		{ID: 2, Status: models.SpotAvailable},
		{ID: 3, Status: models.SpotReserved},
		{ID: 4, Status: models.SpotOccupied},
	}

	report := aggregator.Aggregate("2025-08-30", history, details, spots)

	assert.Equal(t, "2025-08-30", report.Day)
	assert.InDelta(t, 310, report.TotalRevenue, 1e-9)
	assert.Equal(t, 3, report.ReservationCount)
	assert.InDelta(t, 31, report.TotalDurationHours, 1e-9)
	assert.InDelta(t, 77.5, report.AvgRevenuePerSpot, 1e-9)
	assert.Equal(t, 50, report.OccupancyRate)
	assert.InDelta(t, 31.0/3, report.AvgDurationHours, 1e-9)
}

func TestRevenueAggregator_Aggregate_SkipsPartialEntries(t *testing.T) {
	aggregator := NewRevenueAggregator(time.UTC)

	history := map[string]map[string]models.HistoryEntry{
		"Place1": {
			"no-price": {SpotKey: "Place1", StartTime: day(t, 8), EndTime: day(t, 10)},
			"no-start": {SpotKey: "Place1", EndTime: day(t, 12), TotalPrice: 40},
			"no-end":   {SpotKey: "Place1", StartTime: day(t, 8), TotalPrice: 40},
			"complete": {SpotKey: "Place1", StartTime: day(t, 8), EndTime: day(t, 10), TotalPrice: 20},
		},
	}
	details := map[string]models.ReservationDetail{
		"Place2": {SpotKey: "Place2", StartTime: day(t, 9), EndTime: day(t, 10)},
	}
	spots := []models.Spot{{ID: 1, Status: models.SpotReserved}, {ID: 2, Status: models.SpotAvailable}}

	report := aggregator.Aggregate("2025-08-30", history, details, spots)

	assert.InDelta(t, 20, report.TotalRevenue, 1e-9)
	assert.Equal(t, 1, report.ReservationCount)
	assert.InDelta(t, 2, report.TotalDurationHours, 1e-9)
}

func TestRevenueAggregator_Aggregate_EmptyInputs(t *testing.T) {
	aggregator := NewRevenueAggregator(time.UTC)

	report := aggregator.Aggregate("2025-08-30", nil, nil, nil)

	assert.Zero(t, report.TotalRevenue)
	assert.Zero(t, report.ReservationCount)
	assert.Zero(t, report.AvgRevenuePerSpot)
	assert.Zero(t, report.OccupancyRate)
	assert.Zero(t, report.AvgDurationHours)
}

func TestRevenueAggregator_Aggregate_Idempotent(t *testing.T) {
	aggregator := NewRevenueAggregator(time.UTC)

	history := map[string]map[string]models.HistoryEntry{
		"Place1": {
			"ref1": {SpotKey: "Place1", StartTime: day(t, 8), EndTime: day(t, 18), TotalPrice: 100},
		},
	}
	spots := []models.Spot{{ID: 1, Status: models.SpotAvailable}}

	first := aggregator.Aggregate("2025-08-30", history, nil, spots)
	second := aggregator.Aggregate("2025-08-30", history, nil, spots)

	assert.Equal(t, first, second)
}
