package services

import (
	"context"
	"database/sql"

	"smartpark/models"
)

// stubRepo is an in-memory ParkingRepository for service tests. Lookups that
// find nothing fail with sql.ErrNoRows like the real store; spotLabelErr
// simulates an outage on the label read.
type stubRepo struct {
	occupancy map[string]string
	details   map[string]models.ReservationDetail
	history   map[string]map[string]map[string]models.HistoryEntry // day -> spot -> ref
	clients   map[string]models.Client

	spotLabelErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		occupancy: map[string]string{},
		details:   map[string]models.ReservationDetail{},
		history:   map[string]map[string]map[string]models.HistoryEntry{},
		clients:   map[string]models.Client{},
	}
}

func (s *stubRepo) Occupancy(_ context.Context) (map[string]string, error) {
	out := make(map[string]string, len(s.occupancy))
	for k, v := range s.occupancy {
		out[k] = v
	}
	return out, nil
}

func (s *stubRepo) SpotLabel(_ context.Context, spotKey string) (string, error) {
	if s.spotLabelErr != nil {
		return "", s.spotLabelErr
	}
	label, ok := s.occupancy[spotKey]
	if !ok {
		return "", sql.ErrNoRows
	}
	return label, nil
}

func (s *stubRepo) Details(_ context.Context) (map[string]models.ReservationDetail, error) {
	out := make(map[string]models.ReservationDetail, len(s.details))
	for k, v := range s.details {
		out[k] = v
	}
	return out, nil
}

func (s *stubRepo) History(_ context.Context, day string) (map[string]map[string]models.HistoryEntry, error) {
	bucket, ok := s.history[day]
	if !ok {
		return map[string]map[string]models.HistoryEntry{}, nil
	}
	return bucket, nil
}

func (s *stubRepo) WriteDetail(_ context.Context, detail models.ReservationDetail) error {
	s.details[detail.SpotKey] = detail
	return nil
}

func (s *stubRepo) WriteOccupancy(_ context.Context, spotKey, label string) error {
	s.occupancy[spotKey] = label
	return nil
}

func (s *stubRepo) DeleteDetail(_ context.Context, spotKey string) error {
	if _, ok := s.details[spotKey]; !ok {
		return sql.ErrNoRows
	}
	delete(s.details, spotKey)
	return nil
}

func (s *stubRepo) AppendHistory(_ context.Context, day, reservationRef string, entry models.HistoryEntry) error {
	if s.history[day] == nil {
		s.history[day] = map[string]map[string]models.HistoryEntry{}
	}
	if s.history[day][entry.SpotKey] == nil {
		s.history[day][entry.SpotKey] = map[string]models.HistoryEntry{}
	}
	s.history[day][entry.SpotKey][reservationRef] = entry
	return nil
}

func (s *stubRepo) UpsertClient(_ context.Context, client models.Client) error {
	s.clients[client.Email] = client
	return nil
}
