package ports

import (
	"context"
	"time"
)

type CallbackRequest struct {
	ID           uint64
	BusinessID   uint64
	CustomerID   *uint64
	CustomerName string
	Phone        string
	Reason       string
	Status       string
	Notes        string
	CreatedBy    uint64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time
	DeletedAt    *time.Time
}

type CallbackRepository interface {
	CreateCallback(ctx context.Context, callback CallbackRequest) (CallbackRequest, error)
	// GetCallback locks the row for update when ctx carries a transaction.
	GetCallback(ctx context.Context, businessID uint64, id uint64) (CallbackRequest, error)
	ListCallbacks(ctx context.Context, businessID uint64, statuses []string) ([]CallbackRequest, error)
	// SaveCallbackState writes status, notes, completed_at and deleted_at,
	// conditional on expectedStatus when it is set.
	SaveCallbackState(ctx context.Context, callback CallbackRequest, expectedStatus string) error
	// PurgeDeletedBefore hard deletes rows in status whose deleted_at is strictly before cutoff.
	PurgeDeletedBefore(ctx context.Context, businessID uint64, status string, cutoff time.Time) (int64, error)
	DeleteCallback(ctx context.Context, businessID uint64, id uint64) (bool, error)
}
