package models

import (
	"time"
)

type SpotStatus string

const (
	SpotAvailable SpotStatus = "available"
	SpotReserved  SpotStatus = "reserved"
	SpotOccupied  SpotStatus = "occupied"
)

// Raw occupancy labels as stored in the parking_lot collection. The sensor
// feed writes these exact strings.
const (
	LabelFree     = "Libre"
	LabelReserved = "reservé"
	LabelOccupied = "Occupée"
)

type Spot struct {
	ID          int        `json:"id"`
	Status      SpotStatus `json:"status"`
	ClientName  string     `json:"client_name,omitempty"`
	ClientEmail string     `json:"client_email,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
}
