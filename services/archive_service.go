package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"smartpark/models"
	"smartpark/repository"
)

// ArchiveService moves elapsed reservations into the day-bucketed history and
// frees their spots. The original system left this to an external process;
// here it runs on a cron schedule.
type ArchiveService struct {
	repo repository.ParkingRepository
	loc  *time.Location
}

func NewArchiveService(repo repository.ParkingRepository, loc *time.Location) *ArchiveService {
	if loc == nil {
		loc = time.Local
	}
	return &ArchiveService{repo: repo, loc: loc}
}

// ArchiveElapsed archives every detail whose window has ended by now and
// resets the spot label to free. Failures on one spot are logged and do not
// stop the sweep. Returns the number of reservations archived.
func (s *ArchiveService) ArchiveElapsed(ctx context.Context, now time.Time) (int, error) {
	details, err := s.repo.Details(ctx)
	if err != nil {
		return 0, fmt.Errorf("archive: failed to list reservation details: %w", err)
	}

	archived := 0
	for spotKey, detail := range details {
		if detail.EndTime.After(now) {
			continue
		}

		day := detail.EndTime.In(s.loc).Format("2006-01-02")
		ref := fmt.Sprintf("%s_%d", spotKey, detail.StartTime.UnixMilli())

		entry := models.HistoryEntry{
			SpotKey:     spotKey,
			ClientName:  detail.ClientName,
			ClientEmail: detail.ClientEmail,
			StartTime:   detail.StartTime,
			EndTime:     detail.EndTime,
			TotalPrice:  detail.TotalPrice,
		}

		if err := s.repo.AppendHistory(ctx, day, ref, entry); err != nil {
			slog.Error("Failed to archive reservation", "spot_key", spotKey, "error", err)
			continue
		}
		if err := s.repo.DeleteDetail(ctx, spotKey); err != nil {
			slog.Error("Failed to delete archived detail", "spot_key", spotKey, "error", err)
			continue
		}
		if err := s.repo.WriteOccupancy(ctx, spotKey, models.LabelFree); err != nil {
			slog.Error("Failed to free spot after archive", "spot_key", spotKey, "error", err)
			continue
		}

		archived++
	}

	if archived > 0 {
		slog.Info("Archived elapsed reservations", "count", archived)
	}

	return archived, nil
}
