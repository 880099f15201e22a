package status

import "errors"

var (
	ErrSpotAlreadyReserved        = errors.New("availability: spot already reserved")
	ErrClientHasActiveReservation = errors.New("availability: client already has an active reservation")
	ErrInvalidTimeWindow          = errors.New("reservation: end time must be after start time")
	ErrMissingFields              = errors.New("reservation: missing required fields")
	ErrSpotNotFound               = errors.New("reservation: spot not found")
	ErrSessionNotFound            = errors.New("session: session not found or expired")
	ErrInvalidCredentials         = errors.New("session: invalid credentials")
)
