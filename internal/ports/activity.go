package ports

import (
	"context"
	"time"
)

type Activity struct {
	ID           uint64
	BusinessID   uint64
	UserID       uint64
	ActivityType string
	Description  string
	EntityType   string
	EntityID     string
	Metadata     map[string]any
	CreatedAt    time.Time
}

type ActivityRepository interface {
	AppendActivity(ctx context.Context, activity Activity) (Activity, error)
	ListActivities(ctx context.Context, businessID uint64, limit int) ([]Activity, error)
	// PruneActivities keeps the keepPerTenant most recent rows of every business.
	PruneActivities(ctx context.Context, keepPerTenant int) (int64, error)
}

// LedgerEvent is published after a typed ledger row (order status history,
// part order update, job or callback lifecycle change) has been committed.
type LedgerEvent struct {
	BusinessID  uint64
	UserID      uint64
	Type        string
	Description string
	EntityType  string
	EntityID    string
	Metadata    map[string]any
	OccurredAt  time.Time
}

// LedgerObserver consumes committed ledger events. Implementations must not
// fail the caller; Observe has no error result for that reason.
type LedgerObserver interface {
	Observe(ctx context.Context, event LedgerEvent)
}
