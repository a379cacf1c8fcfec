package uow

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"workshop/internal/ports"
)

// UnitOfWork implements ports.UnitOfWork with gorm.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// WithTx joins the transaction already carried by ctx instead of opening a
// nested one, so a usecase can compose repository calls that open their own.
// Hooks registered with ports.AfterCommit run once the outermost call commits,
// with the caller's ctx (no transaction attached).
func (u *UnitOfWork) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if ports.InTx(ctx) {
		return fn(ctx)
	}

	hooked, hooks := ports.WithCommitHooks(ctx)
	if err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ports.WithTxContext(hooked, tx))
	}); err != nil {
		return err
	}
	hooks.Run(ctx)
	return nil
}
