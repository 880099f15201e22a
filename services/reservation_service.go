package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sort"
	"time"

	"smartpark/models"
	"smartpark/repository"
	"smartpark/status"
	"smartpark/utils"
)

const accessCodeLength = 6

// ReservationService runs the reservation flow: admission check, server-side
// pricing, access code issuance, and the two-step commit into the store.
type ReservationService struct {
	repo     repository.ParkingRepository
	resolver *SpotStatusResolver
	guard    AvailabilityGuard
	pricing  *PricingCalculator
	mail     *MailService
}

func NewReservationService(repo repository.ParkingRepository, resolver *SpotStatusResolver, pricing *PricingCalculator, mail *MailService) *ReservationService {
	return &ReservationService{
		repo:     repo,
		resolver: resolver,
		pricing:  pricing,
		mail:     mail,
	}
}

// CheckAvailability is the reservation-form preview: the guard verdict plus a
// price quote for the candidate window. Nothing is written.
func (s *ReservationService) CheckAvailability(ctx context.Context, req models.ReservationRequest, clientEmail string) (*models.AvailabilityResponse, error) {
	quote := s.pricing.Price(req.StartTime, req.EndTime)

	resp := &models.AvailabilityResponse{
		SpotID:     req.SpotID,
		Hours:      quote.Hours.InexactFloat64(),
		TotalPrice: quote.Total.InexactFloat64(),
		Currency:   s.pricing.Currency(),
		Available:  true,
	}

	if quote.Hours.IsZero() {
		resp.Available = false
		resp.Reason = status.ErrInvalidTimeWindow.Error()
		return resp, nil
	}

	label, err := s.repo.SpotLabel(ctx, s.resolver.SpotKey(req.SpotID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.ErrSpotNotFound
		}
		return nil, err
	}

	details, err := s.repo.Details(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.guard.Check(label, details, clientEmail, time.Now()); err != nil {
		resp.Available = false
		resp.Reason = err.Error()
	}

	return resp, nil
}

// CreateReservation commits a reservation for the session's client. The
// detail record and the occupancy label are two independent writes with no
// transaction between them; a concurrent request that passed the same guard
// snapshot can interleave here.
func (s *ReservationService) CreateReservation(ctx context.Context, session models.Session, req models.ReservationRequest) (*models.ReservationResponse, error) {
	if session.Email == "" || session.FullName == "" {
		return nil, status.ErrMissingFields
	}
	if req.SpotID <= 0 {
		return nil, status.ErrSpotNotFound
	}

	quote := s.pricing.Price(req.StartTime, req.EndTime)
	if quote.Hours.IsZero() {
		return nil, status.ErrInvalidTimeWindow
	}

	spotKey := s.resolver.SpotKey(req.SpotID)

	label, err := s.repo.SpotLabel(ctx, spotKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.ErrSpotNotFound
		}
		return nil, err
	}

	details, err := s.repo.Details(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.guard.Check(label, details, session.Email, time.Now()); err != nil {
		return nil, err
	}

	accessCode, err := utils.GenerateAccessCode(accessCodeLength)
	if err != nil {
		return nil, err
	}

	detail := models.ReservationDetail{
		SpotKey:     spotKey,
		ClientName:  session.FullName,
		ClientEmail: session.Email,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		TotalPrice:  quote.Total.InexactFloat64(),
		AccessCode:  accessCode,
	}

	if err := s.repo.WriteDetail(ctx, detail); err != nil {
		return nil, err
	}
	if err := s.repo.WriteOccupancy(ctx, spotKey, models.LabelReserved); err != nil {
		return nil, err
	}

	if err := s.repo.UpsertClient(ctx, models.Client{FullName: session.FullName, Email: session.Email}); err != nil {
		slog.Error("Failed to upsert client after reservation", "email", session.Email, "error", err)
	}

	if s.mail != nil {
		go func(detail models.ReservationDetail, spotID int) {
			if err := s.mail.SendReservationEmail(detail, spotID); err != nil {
				slog.Error("Failed to send reservation email", "spot_key", detail.SpotKey, "error", err)
			}
		}(detail, req.SpotID)
	}

	slog.Info("Reservation created", "spot_key", spotKey, "client_email", session.Email)

	return &models.ReservationResponse{
		SpotID:     req.SpotID,
		ClientName: session.FullName,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Hours:      quote.Hours.InexactFloat64(),
		TotalPrice: quote.Total.InexactFloat64(),
		Currency:   s.pricing.Currency(),
		AccessCode: accessCode,
	}, nil
}

// ListReservations returns the client's current reservations, newest first.
func (s *ReservationService) ListReservations(ctx context.Context, clientEmail string) ([]models.ReservationResponse, error) {
	details, err := s.repo.Details(ctx)
	if err != nil {
		return nil, err
	}

	reservations := []models.ReservationResponse{}
	for key, detail := range details {
		if detail.ClientEmail != clientEmail {
			continue
		}
		id, ok := s.resolver.ParseSpotID(key)
		if !ok {
			continue
		}
		reservations = append(reservations, models.ReservationResponse{
			SpotID:     id,
			ClientName: detail.ClientName,
			StartTime:  detail.StartTime,
			EndTime:    detail.EndTime,
			Hours:      detail.EndTime.Sub(detail.StartTime).Hours(),
			TotalPrice: detail.TotalPrice,
			Currency:   s.pricing.Currency(),
			AccessCode: detail.AccessCode,
		})
	}

	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].StartTime.After(reservations[j].StartTime)
	})

	return reservations, nil
}
