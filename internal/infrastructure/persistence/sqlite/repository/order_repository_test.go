package repository

import (
	"context"
	"errors"
	"testing"

	"workshop/internal/ports"
)

func TestCreateOrderWithItemsAndHistory(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	businessID := seedBusiness(t, db, "garage")
	now := testNow()

	order, items, err := repo.CreateOrder(ctx, ports.Order{
		BusinessID:  businessID,
		OrderNumber: "ORD-1",
		Status:      "pending",
		TotalAmount: 2598,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, []ports.OrderItem{
		{Description: "filter", Quantity: 2, UnitPrice: 799, LineTotal: 1598},
		{Description: "belt", Quantity: 1, UnitPrice: 1000, LineTotal: 1000},
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if len(items) != 2 || items[0].OrderID != order.ID {
		t.Fatalf("CreateOrder() items = %+v", items)
	}

	if _, _, err := repo.CreateOrder(ctx, ports.Order{
		BusinessID:  businessID,
		OrderNumber: "ORD-1",
		Status:      "pending",
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil); !errors.Is(err, ports.ErrDuplicateIdentifier) {
		t.Fatalf("CreateOrder(duplicate) error = %v, want ErrDuplicateIdentifier", err)
	}

	previous := "pending"
	if _, err := repo.AppendStatusHistory(ctx, ports.OrderStatusHistory{
		BusinessID:     businessID,
		OrderID:        order.ID,
		PreviousStatus: &previous,
		NewStatus:      "ordered",
		ChangeReason:   "phoned supplier",
		Metadata:       map[string]any{"supplier_ref": "AB-12"},
		ChangedBy:      4,
		ChangedAt:      now,
	}); err != nil {
		t.Fatalf("AppendStatusHistory() error = %v", err)
	}

	history, err := repo.ListStatusHistory(ctx, businessID, order.ID)
	if err != nil {
		t.Fatalf("ListStatusHistory() error = %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("ListStatusHistory() len = %d", len(history))
	}
	if history[0].PreviousStatus == nil || *history[0].PreviousStatus != "pending" {
		t.Fatalf("PreviousStatus = %v", history[0].PreviousStatus)
	}
	if history[0].Metadata["supplier_ref"] != "AB-12" {
		t.Fatalf("Metadata = %v", history[0].Metadata)
	}

	if err := repo.UpdateOrderStatus(ctx, ports.OrderStatusUpdate{
		BusinessID: businessID + 1,
		OrderID:    order.ID,
		Status:     "ordered",
		UpdatedAt:  now,
	}); !errors.Is(err, ports.ErrOrderNotFound) {
		t.Fatalf("UpdateOrderStatus(other tenant) error = %v, want ErrOrderNotFound", err)
	}

	if err := repo.UpdateOrderStatus(ctx, ports.OrderStatusUpdate{
		BusinessID:     businessID,
		OrderID:        order.ID,
		ExpectedStatus: "pending",
		Status:         "ordered",
		UpdatedAt:      now,
	}); err != nil {
		t.Fatalf("UpdateOrderStatus(pending->ordered) error = %v", err)
	}
	if err := repo.UpdateOrderStatus(ctx, ports.OrderStatusUpdate{
		BusinessID:     businessID,
		OrderID:        order.ID,
		ExpectedStatus: "pending",
		Status:         "cancelled",
		UpdatedAt:      now,
	}); !errors.Is(err, ports.ErrStaleState) {
		t.Fatalf("UpdateOrderStatus(stale) error = %v, want ErrStaleState", err)
	}
	if reloaded, err := repo.GetOrder(ctx, businessID, order.ID); err != nil || reloaded.Status != "ordered" {
		t.Fatalf("GetOrder() = %q, %v, want ordered", reloaded.Status, err)
	}
}
