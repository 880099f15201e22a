package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartpark/models"
)

func TestArchiveService_ArchiveElapsed(t *testing.T) {
	repo := newStubRepo()
	now := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

	repo.occupancy["Place1"] = models.LabelReserved
	repo.occupancy["Place2"] = models.LabelReserved
	repo.details["Place1"] = models.ReservationDetail{
		SpotKey:     "Place1",
		ClientName:  "Jean Dupont",
		ClientEmail: "jean@example.com",
		StartTime:   now.Add(-3 * time.Hour),
		EndTime:     now.Add(-time.Hour),
		TotalPrice:  20,
	}
	repo.details["Place2"] = models.ReservationDetail{
		SpotKey:     "Place2",
		ClientEmail: "marie@example.com",
		StartTime:   now.Add(-time.Hour),
		EndTime:     now.Add(time.Hour),
		TotalPrice:  20,
	}

	service := NewArchiveService(repo, time.UTC)

	archived, err := service.ArchiveElapsed(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 1, archived)

	// The elapsed reservation is gone and its spot is free again.
	assert.NotContains(t, repo.details, "Place1")
	assert.Equal(t, models.LabelFree, repo.occupancy["Place1"])

	// The active one is untouched.
	assert.Contains(t, repo.details, "Place2")
	assert.Equal(t, models.LabelReserved, repo.occupancy["Place2"])

	// Archived under the day its window ended.
	bucket := repo.history["2025-08-30"]
	require.NotNil(t, bucket)
	require.Len(t, bucket["Place1"], 1)
	for _, entry := range bucket["Place1"] {
		assert.Equal(t, "jean@example.com", entry.ClientEmail)
		assert.InDelta(t, 20, entry.TotalPrice, 1e-9)
	}
}

func TestArchiveService_ArchiveElapsed_NothingElapsed(t *testing.T) {
	repo := newStubRepo()
	now := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

	repo.details["Place1"] = models.ReservationDetail{
		SpotKey:     "Place1",
		ClientEmail: "jean@example.com",
		StartTime:   now,
		EndTime:     now.Add(time.Hour),
	}

	service := NewArchiveService(repo, time.UTC)

	archived, err := service.ArchiveElapsed(context.Background(), now)

	require.NoError(t, err)
	assert.Zero(t, archived)
	assert.Contains(t, repo.details, "Place1")
}

func TestArchiveService_ArchiveElapsed_DayBucketFollowsEndTime(t *testing.T) {
	repo := newStubRepo()
	now := time.Date(2025, 8, 31, 6, 0, 0, 0, time.UTC)

	// Ended just before midnight: belongs to the previous day's bucket.
	repo.details["Place1"] = models.ReservationDetail{
		SpotKey:     "Place1",
		ClientEmail: "jean@example.com",
		StartTime:   time.Date(2025, 8, 30, 20, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 8, 30, 23, 30, 0, 0, time.UTC),
		TotalPrice:  35,
	}

	service := NewArchiveService(repo, time.UTC)

	archived, err := service.ArchiveElapsed(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 1, archived)
	assert.Contains(t, repo.history, "2025-08-30")
	assert.NotContains(t, repo.history, "2025-08-31")
}
