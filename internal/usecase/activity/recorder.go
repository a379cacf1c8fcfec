// Package activity turns committed ledger events into the activity feed.
package activity

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"workshop/internal/bootstrap/logging"
	"workshop/internal/errs"
	"workshop/internal/ports"
)

const writeTimeout = 5 * time.Second

// Recorder is a best-effort ports.LedgerObserver: write failures are logged
// and counted, never returned to the operation that produced the event.
type Recorder struct {
	repo    ports.ActivityRepository
	metrics ports.Metrics
}

func NewRecorder(repo ports.ActivityRepository, metrics ports.Metrics) *Recorder {
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &Recorder{repo: repo, metrics: metrics}
}

func (r *Recorder) Observe(ctx context.Context, event ports.LedgerEvent) {
	if ctx == nil {
		ctx = context.Background()
	}
	logCtx := logging.WithAttrs(
		logging.WithBusiness(ctx, event.BusinessID),
		slog.String("component", "usecase.activity"),
		slog.String("activity_type", event.Type),
	)

	if err := r.record(ctx, event); err != nil {
		r.metrics.ActivityDropped()
		logging.Warn(logCtx, "activity write dropped", slog.Any("err", errs.Loggable(err)))
	}
}

func (r *Recorder) record(ctx context.Context, event ports.LedgerEvent) error {
	if r.repo == nil {
		return errors.New("activity repository is required")
	}
	if event.BusinessID == 0 {
		return errors.New("activity needs a business id")
	}

	// The primary operation already committed; a cancelled caller context
	// should not lose the feed entry, so detach it and bound the write.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	createdAt := event.OccurredAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.repo.AppendActivity(writeCtx, ports.Activity{
		BusinessID:   event.BusinessID,
		UserID:       event.UserID,
		ActivityType: event.Type,
		Description:  event.Description,
		EntityType:   event.EntityType,
		EntityID:     event.EntityID,
		Metadata:     event.Metadata,
		CreatedAt:    createdAt,
	})
	return err
}

// Prune keeps the keepPerTenant newest rows of every business.
func (r *Recorder) Prune(ctx context.Context, keepPerTenant int) (int64, error) {
	if ctx == nil {
		return 0, errors.New("context is required")
	}
	if r.repo == nil {
		return 0, errors.New("activity repository is required")
	}

	removed, err := r.repo.PruneActivities(ctx, keepPerTenant)
	if err != nil {
		return removed, errs.Wrap(err, "prune activities")
	}
	return removed, nil
}

func (r *Recorder) Recent(ctx context.Context, businessID uint64, limit int) ([]ports.Activity, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	return r.repo.ListActivities(ctx, businessID, limit)
}
