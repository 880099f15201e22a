package models

// RevenueReport is the admin dashboard summary for one calendar day.
type RevenueReport struct {
	Day                string  `json:"day"`
	TotalRevenue       float64 `json:"total_revenue"`
	ReservationCount   int     `json:"reservation_count"`
	TotalDurationHours float64 `json:"total_duration_hours"`
	AvgRevenuePerSpot  float64 `json:"avg_revenue_per_spot"`
	OccupancyRate      int     `json:"occupancy_rate"`
	AvgDurationHours   float64 `json:"avg_duration_hours"`
}
