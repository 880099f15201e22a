package models

import (
	"time"
)

// ReservationDetail is the record of an active reservation for a spot.
// A spot holds at most one detail at a time; the archiver moves elapsed
// details into history.
type ReservationDetail struct {
	SpotKey     string    `json:"spot_key"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	TotalPrice  float64   `json:"total_price"`
	AccessCode  string    `json:"access_code,omitempty"`
}

// HistoryEntry is an archived reservation, grouped by calendar day and spot.
// Fields may be missing on partial records; zero values mean absent.
type HistoryEntry struct {
	SpotKey     string    `json:"spot_key"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	TotalPrice  float64   `json:"total_price"`
}

type ReservationRequest struct {
	SpotID    int       `json:"spot_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type AvailabilityResponse struct {
	SpotID     int     `json:"spot_id"`
	Available  bool    `json:"available"`
	Reason     string  `json:"reason,omitempty"`
	Hours      float64 `json:"hours"`
	TotalPrice float64 `json:"total_price"`
	Currency   string  `json:"currency"`
}

type ReservationResponse struct {
	SpotID     int       `json:"spot_id"`
	ClientName string    `json:"client_name"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Hours      float64   `json:"hours"`
	TotalPrice float64   `json:"total_price"`
	Currency   string    `json:"currency"`
	AccessCode string    `json:"access_code,omitempty"`
}
