package services

import (
	"sort"
	"strconv"
	"strings"

	"smartpark/models"
)

// Classify maps a raw occupancy label to a display status. The sensor feed
// writes "Libre" and "Occupée"; anything else non-empty means a client holds
// the spot.
func Classify(label string) models.SpotStatus {
	switch strings.TrimSpace(label) {
	case models.LabelFree:
		return models.SpotAvailable
	case models.LabelOccupied:
		return models.SpotOccupied
	default:
		return models.SpotReserved
	}
}

// SpotStatusResolver derives the display state of the whole lot from the
// occupancy feed and the active reservation details.
type SpotStatusResolver struct {
	prefix string
}

func NewSpotStatusResolver(spotKeyPrefix string) *SpotStatusResolver {
	return &SpotStatusResolver{prefix: spotKeyPrefix}
}

// ParseSpotID extracts the numeric spot identifier from a composite key such
// as "Place12". Keys that do not parse to a positive integer are rejected.
func (r *SpotStatusResolver) ParseSpotID(key string) (int, bool) {
	digits := strings.TrimPrefix(key, r.prefix)
	id, err := strconv.Atoi(digits)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// SpotKey is the inverse of ParseSpotID.
func (r *SpotStatusResolver) SpotKey(id int) string {
	return r.prefix + strconv.Itoa(id)
}

// Resolve combines an occupancy snapshot with the active reservation details
// into an ordered list of spots, ascending by identifier. The two inputs may
// be from slightly different moments; a missing detail simply means no
// attached client.
func (r *SpotStatusResolver) Resolve(occupancy map[string]string, details map[string]models.ReservationDetail) []models.Spot {
	spots := make([]models.Spot, 0, len(occupancy))

	for key, label := range occupancy {
		id, ok := r.ParseSpotID(key)
		if !ok {
			continue
		}

		spot := models.Spot{
			ID:     id,
			Status: Classify(label),
		}

		if detail, ok := details[key]; ok {
			spot.ClientName = detail.ClientName
			spot.ClientEmail = detail.ClientEmail
			if !detail.EndTime.IsZero() {
				end := detail.EndTime
				spot.EndTime = &end
			}
		}

		spots = append(spots, spot)
	}

	sort.Slice(spots, func(i, j int) bool { return spots[i].ID < spots[j].ID })

	return spots
}
