package ports

import (
	"context"
	"time"
)

// Order amounts are minor units.
type Order struct {
	ID                   uint64
	BusinessID           uint64
	OrderNumber          string
	CustomerID           *uint64
	Supplier             string
	Status               string
	TotalAmount          int64
	DepositAmount        int64
	Notes                string
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time
	CompletedAt          *time.Time
	CancelledAt          *time.Time
	CreatedBy            uint64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type OrderItem struct {
	ID          uint64
	OrderID     uint64
	Description string
	Quantity    int64
	UnitPrice   int64
	LineTotal   int64
}

// OrderStatusHistory is append-only. PreviousStatus is nil for the row
// written when the order is created.
type OrderStatusHistory struct {
	ID             uint64
	BusinessID     uint64
	OrderID        uint64
	PreviousStatus *string
	NewStatus      string
	ChangeReason   string
	Notes          string
	Metadata       map[string]any
	ChangedBy      uint64
	ChangedAt      time.Time
}

// OrderStatusUpdate only applies while the order is still in ExpectedStatus,
// when that is set.
type OrderStatusUpdate struct {
	BusinessID         uint64
	OrderID            uint64
	ExpectedStatus     string
	Status             string
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	ActualDeliveryDate *time.Time
	UpdatedAt          time.Time
}

type OrderRepository interface {
	OrderNumberExists(ctx context.Context, businessID uint64, orderNumber string) (bool, error)
	CreateOrder(ctx context.Context, order Order, items []OrderItem) (Order, []OrderItem, error)
	// GetOrder locks the row for update when ctx carries a transaction.
	GetOrder(ctx context.Context, businessID uint64, id uint64) (Order, error)
	ListOrderItems(ctx context.Context, orderID uint64) ([]OrderItem, error)
	UpdateOrderStatus(ctx context.Context, update OrderStatusUpdate) error

	AppendStatusHistory(ctx context.Context, row OrderStatusHistory) (OrderStatusHistory, error)
	ListStatusHistory(ctx context.Context, businessID uint64, orderID uint64) ([]OrderStatusHistory, error)
}
