package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"workshop/internal/domain/identifier"
	"workshop/internal/errs"
	"workshop/internal/infrastructure/persistence/sqlite/model"
	"workshop/internal/ports"
)

type CounterRepository struct {
	conn
}

func NewCounterRepository(db *gorm.DB) *CounterRepository {
	return &CounterRepository{conn{db: db}}
}

func (r *CounterRepository) Increment(ctx context.Context, businessID uint64, kind string, seed int64, now time.Time) (int64, error) {
	var next int64
	err := r.transaction(ctx, func(tx *gorm.DB) error {
		if err := ensureCounter(tx, businessID, kind, seed, now); err != nil {
			return err
		}

		// A single UPDATE is atomic on every dialect; the row lock it takes
		// orders concurrent increments. The ceiling keeps value + 1 in range.
		res := tx.Model(&model.TenantCounter{}).
			Where("business_id = ? AND kind = ? AND current_number < ?", businessID, kind, identifier.MaxSequence).
			Updates(map[string]any{
				"current_number": gorm.Expr("current_number + 1"),
				"updated_at":     now,
			})
		if res.Error != nil {
			return errs.Wrap(res.Error, "increment counter")
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s counter of business %d is at %d", ports.ErrCounterExhausted, kind, businessID, identifier.MaxSequence)
		}
		if res.RowsAffected != 1 {
			return fmt.Errorf("increment counter: %d rows affected", res.RowsAffected)
		}

		var row model.TenantCounter
		if err := tx.Where("business_id = ? AND kind = ?", businessID, kind).Take(&row).Error; err != nil {
			return errs.Wrap(err, "read counter")
		}
		next = row.CurrentNumber
		return nil
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *CounterRepository) AdvanceTo(ctx context.Context, businessID uint64, kind string, seed int64, value int64, now time.Time) error {
	if value > identifier.MaxSequence {
		return fmt.Errorf("%w: cannot advance %s counter to %d", ports.ErrCounterExhausted, kind, value)
	}

	return r.transaction(ctx, func(tx *gorm.DB) error {
		if err := ensureCounter(tx, businessID, kind, seed, now); err != nil {
			return err
		}

		if err := tx.Model(&model.TenantCounter{}).
			Where("business_id = ? AND kind = ? AND current_number < ?", businessID, kind, value).
			Updates(map[string]any{
				"current_number": value,
				"updated_at":     now,
			}).Error; err != nil {
			return errs.Wrap(err, "advance counter")
		}
		return nil
	})
}

func (r *CounterRepository) Current(ctx context.Context, businessID uint64, kind string) (int64, bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, false, err
	}

	var row model.TenantCounter
	if err := db.Where("business_id = ? AND kind = ?", businessID, kind).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, errs.Wrap(err, "query counter")
	}
	return row.CurrentNumber, true, nil
}

func ensureCounter(tx *gorm.DB, businessID uint64, kind string, seed int64, now time.Time) error {
	row := model.TenantCounter{
		BusinessID:    businessID,
		Kind:          kind,
		CurrentNumber: seed,
		UpdatedAt:     now,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "business_id"}, {Name: "kind"}},
		DoNothing: true,
	}).Create(&row).Error; err != nil {
		return errs.Wrap(err, "seed counter")
	}
	return nil
}
