package backoffice

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"workshop/internal/bootstrap/logging"
	"workshop/internal/domain/teardown"
	"workshop/internal/errs"
	"workshop/internal/ports"
)

// Teardown results reported to metrics.
const (
	TeardownDeleted    = "deleted"
	TeardownNotFound   = "not_found"
	TeardownRolledBack = "rolled_back"
)

// PermanentlyDeleteTenant removes every row of a tenant in one transaction,
// children first and the business row last. It returns true only when the
// business row was deleted; an unknown tenant is not an error. Any failing
// step rolls the whole teardown back.
func (s *Service) PermanentlyDeleteTenant(ctx context.Context, businessID uint64) (bool, error) {
	if err := s.checkTenantCall(ctx, businessID); err != nil {
		return false, err
	}
	if s.tenants == nil {
		return false, errors.New("tenant repository is required")
	}

	logCtx := logging.WithRun(logging.WithBusiness(ctx, businessID), "teardown_id", uuid.NewString())
	logCtx = logging.WithAttrs(logCtx, slog.String("component", "usecase.teardown"))

	version, err := s.tenants.SchemaVersion(ctx)
	if err != nil {
		return false, errs.Wrap(err, "read schema version")
	}
	plan := s.manifest.Plan(version)
	logging.Info(logCtx, "tenant teardown started", slog.Int("schema_version", version), slog.Int("steps", len(plan)))

	started := time.Now()
	deleted := false
	found := true
	err = s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.tenants.GetBusiness(txCtx, businessID); err != nil {
			if errors.Is(err, ports.ErrBusinessNotFound) {
				found = false
				return nil
			}
			return err
		}

		for _, step := range plan {
			removed, skipped, err := s.runTeardownStep(txCtx, step, businessID)
			if err != nil {
				return errs.Wrapf(err, "teardown step %s", step.Table)
			}
			if skipped {
				logging.Warn(logCtx, "teardown table missing, skipped", slog.String("table", step.Table))
				continue
			}
			if step.Root {
				deleted = removed > 0
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.TeardownFinished(TeardownRolledBack)
		logging.Error(logCtx, "tenant teardown rolled back", slog.Any("err", errs.Loggable(err)))
		return false, err
	}
	if !found || !deleted {
		s.metrics.TeardownFinished(TeardownNotFound)
		logging.Info(logCtx, "tenant teardown found no business")
		return false, nil
	}

	s.metrics.TeardownFinished(TeardownDeleted)
	logging.Info(logCtx, "tenant teardown completed", slog.Duration("elapsed", time.Since(started)))
	return true, nil
}

// runTeardownStep deletes the tenant rows of one table. Optional tables that
// are absent are reported as skipped.
func (s *Service) runTeardownStep(ctx context.Context, step teardown.Step, businessID uint64) (int64, bool, error) {
	if step.Optional {
		present, err := s.tenants.HasTable(ctx, step.Table)
		if err != nil {
			return 0, false, err
		}
		if !present {
			return 0, true, nil
		}
	}

	removed, err := s.tenants.DeleteTenantRows(ctx, ports.TeardownStep{
		Table:       step.Table,
		ScopeColumn: step.ScopeColumn(),
		Parent:      step.Parent,
		ForeignKey:  step.ForeignKey,
	}, businessID)
	return removed, false, err
}

// TeardownPlan lists the tables a teardown would touch at the stored schema
// version, in execution order.
func (s *Service) TeardownPlan(ctx context.Context) ([]teardown.Step, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	version, err := s.tenants.SchemaVersion(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "read schema version")
	}
	return s.manifest.Plan(version), nil
}
