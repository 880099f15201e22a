package services

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"smartpark/models"
)

// RevenueAggregator sums a day's archived reservations together with the
// currently active ones into the admin dashboard summary. It is a pure
// function of its inputs; running it twice on the same snapshots yields the
// same report.
type RevenueAggregator struct {
	loc *time.Location
}

func NewRevenueAggregator(loc *time.Location) *RevenueAggregator {
	if loc == nil {
		loc = time.Local
	}
	return &RevenueAggregator{loc: loc}
}

// DayKey renders the canonical bucket key for the calendar day containing the
// given instant, in the configured reporting location.
func (a *RevenueAggregator) DayKey(now time.Time) string {
	return now.In(a.loc).Format("2006-01-02")
}

// Aggregate computes the revenue report for one day. history is that day's
// bucket, grouped by spot then by reservation reference; details are the
// currently active reservations. Entries missing a price or either instant do
// not contribute and do not error.
func (a *RevenueAggregator) Aggregate(day string, history map[string]map[string]models.HistoryEntry, details map[string]models.ReservationDetail, spots []models.Spot) models.RevenueReport {
	totalRevenue := decimal.Zero
	totalDuration := 0.0
	count := 0

	for _, entries := range history {
		for _, entry := range entries {
			if entry.TotalPrice == 0 || entry.StartTime.IsZero() || entry.EndTime.IsZero() {
				continue
			}
			totalRevenue = totalRevenue.Add(decimal.NewFromFloat(entry.TotalPrice))
			totalDuration += entry.EndTime.Sub(entry.StartTime).Hours()
			count++
		}
	}

	for _, detail := range details {
		if detail.TotalPrice == 0 || detail.StartTime.IsZero() || detail.EndTime.IsZero() {
			continue
		}
		totalRevenue = totalRevenue.Add(decimal.NewFromFloat(detail.TotalPrice))
		totalDuration += detail.EndTime.Sub(detail.StartTime).Hours()
		count++
	}

	totalSpots := len(spots)
	occupiedSpots := 0
	for _, spot := range spots {
		if spot.Status != models.SpotAvailable {
			occupiedSpots++
		}
	}

	report := models.RevenueReport{
		Day:                day,
		TotalRevenue:       totalRevenue.InexactFloat64(),
		ReservationCount:   count,
		TotalDurationHours: totalDuration,
	}

	if totalSpots > 0 {
		report.AvgRevenuePerSpot = totalRevenue.Div(decimal.NewFromInt(int64(totalSpots))).InexactFloat64()
		report.OccupancyRate = int(math.Round(float64(occupiedSpots) / float64(totalSpots) * 100))
	}
	if count > 0 {
		report.AvgDurationHours = totalDuration / float64(count)
	}

	return report
}
