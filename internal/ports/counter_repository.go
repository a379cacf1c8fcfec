package ports

import (
	"context"
	"time"
)

// CounterRepository persists one monotonic counter per (business, kind).
type CounterRepository interface {
	// Increment creates the row at seed when missing, adds one and returns the
	// new value. Callers run it inside a transaction.
	Increment(ctx context.Context, businessID uint64, kind string, seed int64, now time.Time) (int64, error)
	// AdvanceTo raises the counter to value when it is currently lower.
	AdvanceTo(ctx context.Context, businessID uint64, kind string, seed int64, value int64, now time.Time) error
	Current(ctx context.Context, businessID uint64, kind string) (value int64, found bool, err error)
}
