package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	pubnub "github.com/pubnub/go"
	"github.com/redis/go-redis/v9"

	"smartpark/models"
	"smartpark/repository"
)

const (
	occupancyChannel     = "parking-occupancy"
	occupancySnapshotKey = "occupancy:snapshot"
)

// OccupancyFeed is the subscription interface over the live occupancy data.
// Every change to the parking_lot collection triggers a full re-read; each
// snapshot is resolved deterministically and fanned out whole, so consumers
// never diff. The occupancy and detail reads may be from slightly different
// moments; that staleness is acceptable for display state.
type OccupancyFeed struct {
	repo     repository.ParkingRepository
	resolver *SpotStatusResolver
	pubnub   *pubnub.PubNub
	redis    *redis.Client

	mu          sync.Mutex
	subscribers []chan []models.Spot
}

func NewOccupancyFeed(repo repository.ParkingRepository, resolver *SpotStatusResolver, pn *pubnub.PubNub, redisClient *redis.Client) *OccupancyFeed {
	return &OccupancyFeed{
		repo:     repo,
		resolver: resolver,
		pubnub:   pn,
		redis:    redisClient,
	}
}

// Subscribe returns a channel that receives each resolved snapshot. Slow
// consumers miss intermediate snapshots instead of blocking the feed.
func (f *OccupancyFeed) Subscribe() <-chan []models.Spot {
	ch := make(chan []models.Spot, 1)

	f.mu.Lock()
	f.subscribers = append(f.subscribers, ch)
	f.mu.Unlock()

	return ch
}

// Notify re-reads the lot, resolves spot state, and pushes the snapshot to
// in-process subscribers, the realtime channel, and the Redis cache.
func (f *OccupancyFeed) Notify(ctx context.Context) {
	occupancy, err := f.repo.Occupancy(ctx)
	if err != nil {
		slog.Error("Occupancy feed read failed", "error", err)
		return
	}

	details, err := f.repo.Details(ctx)
	if err != nil {
		slog.Error("Occupancy feed detail read failed", "error", err)
		return
	}

	spots := f.resolver.Resolve(occupancy, details)

	f.cacheSnapshot(ctx, spots)
	f.publish(spots)

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subscribers {
		select {
		case ch <- spots:
		default:
			// drop for slow consumers, next snapshot supersedes this one
		}
	}
}

func (f *OccupancyFeed) cacheSnapshot(ctx context.Context, spots []models.Spot) {
	if f.redis == nil {
		return
	}

	data, err := json.Marshal(spots)
	if err != nil {
		slog.Error("Failed to marshal spot snapshot", "error", err)
		return
	}

	if err := f.redis.Set(ctx, occupancySnapshotKey, data, 0).Err(); err != nil {
		slog.Error("Failed to cache spot snapshot", "error", err)
	}
}

func (f *OccupancyFeed) publish(spots []models.Spot) {
	if f.pubnub == nil {
		return
	}

	f.pubnub.Publish().
		Channel(occupancyChannel).
		Message(map[string]any{
			"type":  "spot_snapshot",
			"spots": spots,
		}).
		Execute()
}
