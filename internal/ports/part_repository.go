package ports

import (
	"context"
	"time"
)

// PartOnOrder costs are minor units.
type PartOnOrder struct {
	ID                   uint64
	BusinessID           uint64
	JobID                *uint64
	CustomerID           *uint64
	PartName             string
	Supplier             string
	Quantity             int64
	EstimatedCost        *int64
	ActualCost           *int64
	Status               string
	IsArrived            bool
	IsCustomerNotified   bool
	ExpectedDeliveryDate *time.Time
	DeliveryDate         *time.Time
	CollectedAt          *time.Time
	Notes                string
	CreatedBy            uint64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type PartOrderUpdate struct {
	ID             uint64
	BusinessID     uint64
	PartID         uint64
	UpdateType     string
	PreviousStatus *string
	NewStatus      string
	Notes          string
	UpdatedBy      uint64
	CreatedAt      time.Time
}

type PartRepository interface {
	CreatePart(ctx context.Context, part PartOnOrder) (PartOnOrder, error)
	// GetPart locks the row for update when ctx carries a transaction.
	GetPart(ctx context.Context, businessID uint64, id uint64) (PartOnOrder, error)
	// SavePartState writes the mutable lifecycle columns of part. A non-empty
	// expectedStatus makes the write conditional; a mismatch is ErrStaleState.
	SavePartState(ctx context.Context, part PartOnOrder, expectedStatus string) error

	AppendPartUpdate(ctx context.Context, row PartOrderUpdate) (PartOrderUpdate, error)
	ListPartUpdates(ctx context.Context, businessID uint64, partID uint64) ([]PartOrderUpdate, error)
}
