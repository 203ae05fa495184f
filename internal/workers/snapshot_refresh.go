package workers

import (
	"context"
	"log/slog"
	"time"

	"cseshield/internal/domain"
)

type ActiveLister interface {
	ListActive(ctx context.Context) ([]*domain.Incident, error)
}

type IncidentCacheService interface {
	SetActive(ctx context.Context, incidents []*domain.Incident, ttl time.Duration) error
}

// SnapshotRefresher keeps the Redis copy of the active incident set
// warm so zone queries rarely hit Postgres for the full table. A
// failed refresh is logged and retried on the next tick; readers fall
// back to the store in the meantime.
type SnapshotRefresher struct {
	store    ActiveLister
	cache    IncidentCacheService
	logger   *slog.Logger
	interval time.Duration
	ttl      time.Duration
}

func NewSnapshotRefresher(
	store ActiveLister,
	cache IncidentCacheService,
	logger *slog.Logger,
	interval, ttl time.Duration,
) *SnapshotRefresher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if ttl <= 0 {
		ttl = interval
	}
	return &SnapshotRefresher{
		store:    store,
		cache:    cache,
		logger:   logger,
		interval: interval,
		ttl:      ttl,
	}
}

func (w *SnapshotRefresher) Run(ctx context.Context) {
	w.logger.Info("snapshot refresher STARTED", slog.Duration("interval", w.interval))

	// warm the cache immediately instead of waiting a full interval
	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("snapshot refresher STOPPED", slog.String("reason", ctx.Err().Error()))
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *SnapshotRefresher) refresh(ctx context.Context) {
	incidents, err := w.store.ListActive(ctx)
	if err != nil {
		w.logger.Error("snapshot refresh: store query failed", slog.Any("error", err))
		return
	}

	if err := w.cache.SetActive(ctx, incidents, w.ttl); err != nil {
		w.logger.Error("snapshot refresh: cache write failed", slog.Any("error", err))
		return
	}

	w.logger.Debug("snapshot refreshed", slog.Int("incidents", len(incidents)))
}
