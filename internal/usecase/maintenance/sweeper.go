// Package maintenance runs the periodic callback purge and activity retention.
package maintenance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"workshop/internal/bootstrap/logging"
	"workshop/internal/errs"
)

type CallbackPurger interface {
	ListBusinessIDs(ctx context.Context) ([]uint64, error)
	PurgeExpiredCallbacks(ctx context.Context, businessID uint64) (int64, error)
}

type ActivityPruner interface {
	Prune(ctx context.Context, keepPerTenant int) (int64, error)
}

type Options struct {
	Interval        time.Duration
	RetainPerTenant int
}

type Result struct {
	Businesses       int
	CallbacksPurged  int64
	ActivitiesPruned int64
	Failures         int
}

type Sweeper struct {
	purger   CallbackPurger
	pruner   ActivityPruner
	interval time.Duration
	retain   int
}

func NewSweeper(purger CallbackPurger, pruner ActivityPruner, options Options) *Sweeper {
	interval := options.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{
		purger:   purger,
		pruner:   pruner,
		interval: interval,
		retain:   options.RetainPerTenant,
	}
}

// RunOnce purges every tenant and then prunes the activity feed. A failing
// tenant is logged and counted; the rest of the sweep continues.
func (s *Sweeper) RunOnce(ctx context.Context) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("context is required")
	}
	if s.purger == nil {
		return Result{}, errors.New("callback purger is required")
	}

	logCtx := logging.WithRun(
		logging.WithAttrs(ctx, slog.String("component", "usecase.maintenance")),
		"sweep_id",
		uuid.NewString(),
	)

	businessIDs, err := s.purger.ListBusinessIDs(ctx)
	if err != nil {
		return Result{}, errs.Wrap(err, "list businesses")
	}

	result := Result{Businesses: len(businessIDs)}
	for _, businessID := range businessIDs {
		if err := ctx.Err(); err != nil {
			return result, errs.Wrap(err, "check context")
		}
		removed, err := s.purger.PurgeExpiredCallbacks(ctx, businessID)
		if err != nil {
			if errs.IsContext(err) {
				return result, errs.Wrap(err, "purge callbacks")
			}
			result.Failures++
			logging.Error(logging.WithBusiness(logCtx, businessID), "purge callbacks failed", slog.Any("err", errs.Loggable(err)))
			continue
		}
		result.CallbacksPurged += removed
	}

	if s.pruner != nil && s.retain > 0 {
		pruned, err := s.pruner.Prune(ctx, s.retain)
		if err != nil {
			result.Failures++
			logging.Error(logCtx, "prune activities failed", slog.Any("err", errs.Loggable(err)))
		}
		result.ActivitiesPruned = pruned
	}

	logging.Info(
		logCtx,
		"maintenance sweep finished",
		slog.Int("businesses", result.Businesses),
		slog.Int64("callbacks_purged", result.CallbacksPurged),
		slog.Int64("activities_pruned", result.ActivitiesPruned),
		slog.Int("failures", result.Failures),
	)
	return result, nil
}

// Run sweeps immediately and then on every interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.RunOnce(ctx); err != nil && !errs.IsContext(err) {
			logging.Error(ctx, "maintenance sweep failed", slog.Any("err", errs.Loggable(err)))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
