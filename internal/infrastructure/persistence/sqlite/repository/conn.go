package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"workshop/internal/errs"
	"workshop/internal/ports"
)

// conn resolves the gorm handle for a call: the transaction carried by ctx
// when there is one, the pool otherwise.
type conn struct {
	db *gorm.DB
}

func (c conn) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return c.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

// forUpdate locks the rows read by a transition until the transaction ends.
// SQLite serialises writers on the database file and has no row locks, so
// the clause is only added for other dialects and only inside a transaction.
func forUpdate(ctx context.Context, db *gorm.DB) *gorm.DB {
	if !ports.InTx(ctx) || db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
}

// whenStatus narrows a state write to the row while it is still in expected.
func whenStatus(query *gorm.DB, expected string) *gorm.DB {
	if expected == "" {
		return query
	}
	return query.Where("status = ?", expected)
}

// missingOrStale explains a state write that matched no row: the row is gone,
// or another writer moved it out of expected first.
func missingOrStale(db *gorm.DB, table any, businessID uint64, id uint64, expected string, notFound error) error {
	if expected == "" {
		return notFound
	}

	var count int64
	if err := db.Model(table).Where("business_id = ? AND id = ?", businessID, id).Count(&count).Error; err != nil {
		return errs.Wrap(err, "recheck row")
	}
	if count == 0 {
		return notFound
	}
	return fmt.Errorf("%w: status is no longer %q", ports.ErrStaleState, expected)
}

// transaction runs fn on the transaction in ctx, or opens one.
func (c conn) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if ports.InTx(ctx) {
		db, err := c.dbFromContext(ctx)
		if err != nil {
			return err
		}
		return fn(db)
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	return c.db.WithContext(ctx).Transaction(fn)
}

// isDuplicateKey matches unique violations from both dialects. TranslateError
// covers the configured databases; the message check covers handles opened
// without it.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
