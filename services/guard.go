package services

import (
	"time"

	"smartpark/models"
	"smartpark/status"
)

// AvailabilityGuard decides whether a new reservation may be created. The
// check reads a snapshot and the commit writes later with no compare-and-swap
// in between, so two near-simultaneous requests for the same spot can both
// pass. That race is a known limitation of the design; the guard is advisory.
type AvailabilityGuard struct{}

// Check evaluates the admission rules in order, first failure wins:
// the target spot must not carry the reserved label, and the client must not
// already hold an unexpired reservation on any spot.
func (AvailabilityGuard) Check(spotLabel string, details map[string]models.ReservationDetail, clientEmail string, now time.Time) error {
	if spotLabel == models.LabelReserved {
		return status.ErrSpotAlreadyReserved
	}

	for _, detail := range details {
		if detail.ClientEmail == clientEmail && detail.EndTime.After(now) {
			return status.ErrClientHasActiveReservation
		}
	}

	return nil
}
