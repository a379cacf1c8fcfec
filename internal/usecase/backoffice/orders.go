package backoffice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"workshop/internal/domain/identifier"
	"workshop/internal/domain/money"
	"workshop/internal/domain/order"
	"workshop/internal/ports"
)

// CreateOrder inserts the order, its items and the initial history row in
// one transaction. Totals are summed in minor units.
func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (OrderView, error) {
	if err := s.checkTenantCall(ctx, input.BusinessID); err != nil {
		return OrderView{}, err
	}
	if s.orders == nil {
		return OrderView{}, errors.New("order repository is required")
	}
	if len(input.Items) == 0 {
		return OrderView{}, order.ErrNoItems
	}

	status := order.StatusPending
	if strings.TrimSpace(input.Status) != "" {
		normalized, err := order.NormalizeStatus(input.Status)
		if err != nil {
			return OrderView{}, err
		}
		status = normalized
	}

	items := make([]ports.OrderItem, 0, len(input.Items))
	var total int64
	for i, item := range input.Items {
		description := strings.TrimSpace(item.Description)
		if description == "" || item.Quantity <= 0 || item.UnitPrice.IsNegative() {
			return OrderView{}, fmt.Errorf("%w: item %d", order.ErrInvalidItem, i+1)
		}
		unit, err := money.MinorUnits(item.UnitPrice)
		if err != nil {
			return OrderView{}, fmt.Errorf("%w: item %d: %w", order.ErrInvalidItem, i+1, err)
		}
		line, err := money.LineTotal(unit, item.Quantity)
		if err != nil {
			return OrderView{}, fmt.Errorf("%w: item %d: %w", order.ErrInvalidItem, i+1, err)
		}
		if total, err = money.AddMinor(total, line); err != nil {
			return OrderView{}, fmt.Errorf("%w: order total: %w", order.ErrInvalidItem, err)
		}
		items = append(items, ports.OrderItem{
			Description: description,
			Quantity:    item.Quantity,
			UnitPrice:   unit,
			LineTotal:   line,
		})
	}
	if input.Deposit.IsNegative() {
		return OrderView{}, fmt.Errorf("%w: deposit must not be negative", money.ErrInvalidAmount)
	}
	deposit, err := money.MinorUnits(input.Deposit)
	if err != nil {
		return OrderView{}, fmt.Errorf("deposit: %w", err)
	}

	now := s.now()
	// An order created directly in a terminal or arrived status carries the
	// same timestamps a transition into that status would set.
	stamps := order.ApplyTransition(order.Timestamps{}, status, now)
	var (
		created      ports.Order
		createdItems []ports.OrderItem
	)
	if _, err := s.insertWithIdentifier(ctx, input.BusinessID, identifier.KindOrder, strings.TrimSpace(input.OrderNumber), func(txCtx context.Context, id string) error {
		row, rowItems, err := s.orders.CreateOrder(txCtx, ports.Order{
			BusinessID:           input.BusinessID,
			OrderNumber:          id,
			CustomerID:           input.CustomerID,
			Supplier:             strings.TrimSpace(input.Supplier),
			Status:               string(status),
			TotalAmount:          total,
			DepositAmount:        deposit,
			Notes:                strings.TrimSpace(input.Notes),
			ExpectedDeliveryDate: input.ExpectedDeliveryDate,
			ActualDeliveryDate:   stamps.ActualDeliveryDate,
			CompletedAt:          stamps.CompletedAt,
			CancelledAt:          stamps.CancelledAt,
			CreatedBy:            input.CreatedBy,
			CreatedAt:            now,
			UpdatedAt:            now,
		}, items)
		if err != nil {
			return err
		}

		if _, err := s.orders.AppendStatusHistory(txCtx, ports.OrderStatusHistory{
			BusinessID:   row.BusinessID,
			OrderID:      row.ID,
			NewStatus:    row.Status,
			ChangeReason: order.CreatedReason,
			ChangedBy:    input.CreatedBy,
			ChangedAt:    now,
		}); err != nil {
			return err
		}

		created = row
		createdItems = rowItems
		return nil
	}); err != nil {
		return OrderView{}, err
	}

	s.publish(ctx, ports.LedgerEvent{
		BusinessID:  created.BusinessID,
		UserID:      input.CreatedBy,
		Type:        EventOrderCreated,
		Description: fmt.Sprintf("Order %s created", created.OrderNumber),
		EntityType:  "order",
		EntityID:    entityID(created.ID),
		Metadata: map[string]any{
			"order_number": created.OrderNumber,
			"status":       created.Status,
			"total":        money.ToMajorUnits(created.TotalAmount).StringFixed(2),
		},
		OccurredAt: now,
	})
	return orderView(created, createdItems), nil
}

// TransitionOrderStatus moves an order to a new status and appends the
// matching history row atomically. Orders outside the tenant are not found.
func (s *Service) TransitionOrderStatus(ctx context.Context, input TransitionOrderInput) (OrderView, error) {
	if err := s.checkTenantCall(ctx, input.BusinessID); err != nil {
		return OrderView{}, err
	}
	if s.orders == nil {
		return OrderView{}, errors.New("order repository is required")
	}

	next, err := order.NormalizeStatus(input.Status)
	if err != nil {
		return OrderView{}, err
	}

	now := s.now()
	var (
		updated  ports.Order
		items    []ports.OrderItem
		previous string
	)
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		current, err := s.orders.GetOrder(txCtx, input.BusinessID, input.OrderID)
		if err != nil {
			return err
		}
		previous = current.Status

		stamps := order.ApplyTransition(order.Timestamps{
			CompletedAt:        current.CompletedAt,
			CancelledAt:        current.CancelledAt,
			ActualDeliveryDate: current.ActualDeliveryDate,
		}, next, now)

		if err := s.orders.UpdateOrderStatus(txCtx, ports.OrderStatusUpdate{
			BusinessID:         input.BusinessID,
			OrderID:            current.ID,
			ExpectedStatus:     current.Status,
			Status:             string(next),
			CompletedAt:        stamps.CompletedAt,
			CancelledAt:        stamps.CancelledAt,
			ActualDeliveryDate: stamps.ActualDeliveryDate,
			UpdatedAt:          now,
		}); err != nil {
			return err
		}

		if _, err := s.orders.AppendStatusHistory(txCtx, ports.OrderStatusHistory{
			BusinessID:     input.BusinessID,
			OrderID:        current.ID,
			PreviousStatus: &previous,
			NewStatus:      string(next),
			ChangeReason:   strings.TrimSpace(input.Reason),
			Notes:          strings.TrimSpace(input.Notes),
			Metadata:       input.Metadata,
			ChangedBy:      input.ChangedBy,
			ChangedAt:      now,
		}); err != nil {
			return err
		}

		updated = current
		updated.Status = string(next)
		updated.CompletedAt = stamps.CompletedAt
		updated.CancelledAt = stamps.CancelledAt
		updated.ActualDeliveryDate = stamps.ActualDeliveryDate
		updated.UpdatedAt = now

		items, err = s.orders.ListOrderItems(txCtx, current.ID)
		return err
	}); err != nil {
		return OrderView{}, err
	}

	s.publish(ctx, ports.LedgerEvent{
		BusinessID:  input.BusinessID,
		UserID:      input.ChangedBy,
		Type:        EventOrderStatusChanged,
		Description: fmt.Sprintf("Order %s: %s -> %s", updated.OrderNumber, previous, next),
		EntityType:  "order",
		EntityID:    entityID(updated.ID),
		Metadata: map[string]any{
			"order_number":    updated.OrderNumber,
			"previous_status": previous,
			"new_status":      string(next),
		},
		OccurredAt: now,
	})
	return orderView(updated, items), nil
}

func (s *Service) GetOrder(ctx context.Context, businessID uint64, id uint64) (OrderView, error) {
	if err := s.checkTenantCall(ctx, businessID); err != nil {
		return OrderView{}, err
	}

	row, err := s.orders.GetOrder(ctx, businessID, id)
	if err != nil {
		return OrderView{}, err
	}
	items, err := s.orders.ListOrderItems(ctx, row.ID)
	if err != nil {
		return OrderView{}, err
	}
	return orderView(row, items), nil
}

// ListOrderHistory returns the ledger oldest first.
func (s *Service) ListOrderHistory(ctx context.Context, businessID uint64, orderID uint64) ([]ports.OrderStatusHistory, error) {
	if err := s.checkTenantCall(ctx, businessID); err != nil {
		return nil, err
	}
	if _, err := s.orders.GetOrder(ctx, businessID, orderID); err != nil {
		return nil, err
	}
	return s.orders.ListStatusHistory(ctx, businessID, orderID)
}
