package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"workshop/internal/errs"
	"workshop/internal/infrastructure/persistence/sqlite/model"
	"workshop/internal/ports"
)

type OrderRepository struct {
	conn
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{conn{db: db}}
}

func (r *OrderRepository) OrderNumberExists(ctx context.Context, businessID uint64, orderNumber string) (bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return false, err
	}

	var count int64
	if err := db.Model(&model.Order{}).
		Where("business_id = ? AND order_number = ?", businessID, orderNumber).
		Count(&count).Error; err != nil {
		return false, errs.Wrap(err, "count orders by number")
	}
	return count > 0, nil
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order ports.Order, items []ports.OrderItem) (ports.Order, []ports.OrderItem, error) {
	var (
		created      ports.Order
		createdItems []ports.OrderItem
	)
	err := r.transaction(ctx, func(tx *gorm.DB) error {
		row := model.Order{
			BusinessID:           order.BusinessID,
			OrderNumber:          order.OrderNumber,
			CustomerID:           order.CustomerID,
			Supplier:             order.Supplier,
			Status:               order.Status,
			TotalAmount:          order.TotalAmount,
			DepositAmount:        order.DepositAmount,
			Notes:                order.Notes,
			ExpectedDeliveryDate: order.ExpectedDeliveryDate,
			ActualDeliveryDate:   order.ActualDeliveryDate,
			CompletedAt:          order.CompletedAt,
			CancelledAt:          order.CancelledAt,
			CreatedBy:            order.CreatedBy,
			CreatedAt:            order.CreatedAt,
			UpdatedAt:            order.UpdatedAt,
		}
		if err := tx.Create(&row).Error; err != nil {
			if isDuplicateKey(err) {
				return ports.ErrDuplicateIdentifier
			}
			return errs.Wrap(err, "insert order")
		}

		createdItems = make([]ports.OrderItem, 0, len(items))
		if len(items) > 0 {
			itemRows := make([]model.OrderItem, 0, len(items))
			for _, item := range items {
				itemRows = append(itemRows, model.OrderItem{
					OrderID:     row.ID,
					Description: item.Description,
					Quantity:    item.Quantity,
					UnitPrice:   item.UnitPrice,
					LineTotal:   item.LineTotal,
				})
			}
			if err := tx.Create(&itemRows).Error; err != nil {
				return errs.Wrap(err, "insert order items")
			}
			for _, itemRow := range itemRows {
				createdItems = append(createdItems, mapOrderItem(itemRow))
			}
		}

		created = mapOrder(row)
		return nil
	})
	if err != nil {
		return ports.Order{}, nil, err
	}
	return created, createdItems, nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, businessID uint64, id uint64) (ports.Order, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Order{}, err
	}

	var row model.Order
	if err := forUpdate(ctx, db).Where("business_id = ? AND id = ?", businessID, id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Order{}, ports.ErrOrderNotFound
		}
		return ports.Order{}, errs.Wrap(err, "query order")
	}
	return mapOrder(row), nil
}

func (r *OrderRepository) ListOrderItems(ctx context.Context, orderID uint64) ([]ports.OrderItem, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.OrderItem
	if err := db.Where("order_id = ?", orderID).Order("id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query order items")
	}

	items := make([]ports.OrderItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapOrderItem(row))
	}
	return items, nil
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, update ports.OrderStatusUpdate) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	query := db.Model(&model.Order{}).Where("business_id = ? AND id = ?", update.BusinessID, update.OrderID)
	res := whenStatus(query, update.ExpectedStatus).
		Updates(map[string]any{
			"status":               update.Status,
			"completed_at":         update.CompletedAt,
			"cancelled_at":         update.CancelledAt,
			"actual_delivery_date": update.ActualDeliveryDate,
			"updated_at":           update.UpdatedAt,
		})
	if res.Error != nil {
		return errs.Wrap(res.Error, "update order status")
	}
	if res.RowsAffected == 0 {
		return missingOrStale(db, &model.Order{}, update.BusinessID, update.OrderID, update.ExpectedStatus, ports.ErrOrderNotFound)
	}
	return nil
}

func (r *OrderRepository) AppendStatusHistory(ctx context.Context, history ports.OrderStatusHistory) (ports.OrderStatusHistory, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.OrderStatusHistory{}, err
	}

	row := model.OrderStatusHistory{
		BusinessID:     history.BusinessID,
		OrderID:        history.OrderID,
		PreviousStatus: history.PreviousStatus,
		NewStatus:      history.NewStatus,
		ChangeReason:   history.ChangeReason,
		Notes:          history.Notes,
		ChangedBy:      history.ChangedBy,
		ChangedAt:      history.ChangedAt,
	}
	if len(history.Metadata) > 0 {
		row.Metadata = datatypes.JSONMap(history.Metadata)
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.OrderStatusHistory{}, errs.Wrap(err, "insert order status history")
	}
	return mapOrderStatusHistory(row), nil
}

func (r *OrderRepository) ListStatusHistory(ctx context.Context, businessID uint64, orderID uint64) ([]ports.OrderStatusHistory, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.OrderStatusHistory
	if err := db.Where("business_id = ? AND order_id = ?", businessID, orderID).
		Order("id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query order status history")
	}

	items := make([]ports.OrderStatusHistory, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapOrderStatusHistory(row))
	}
	return items, nil
}

func mapOrder(row model.Order) ports.Order {
	return ports.Order{
		ID:                   row.ID,
		BusinessID:           row.BusinessID,
		OrderNumber:          row.OrderNumber,
		CustomerID:           row.CustomerID,
		Supplier:             row.Supplier,
		Status:               row.Status,
		TotalAmount:          row.TotalAmount,
		DepositAmount:        row.DepositAmount,
		Notes:                row.Notes,
		ExpectedDeliveryDate: row.ExpectedDeliveryDate,
		ActualDeliveryDate:   row.ActualDeliveryDate,
		CompletedAt:          row.CompletedAt,
		CancelledAt:          row.CancelledAt,
		CreatedBy:            row.CreatedBy,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}
}

func mapOrderItem(row model.OrderItem) ports.OrderItem {
	return ports.OrderItem{
		ID:          row.ID,
		OrderID:     row.OrderID,
		Description: row.Description,
		Quantity:    row.Quantity,
		UnitPrice:   row.UnitPrice,
		LineTotal:   row.LineTotal,
	}
}

func mapOrderStatusHistory(row model.OrderStatusHistory) ports.OrderStatusHistory {
	var metadata map[string]any
	if len(row.Metadata) > 0 {
		metadata = map[string]any(row.Metadata)
	}
	return ports.OrderStatusHistory{
		ID:             row.ID,
		BusinessID:     row.BusinessID,
		OrderID:        row.OrderID,
		PreviousStatus: row.PreviousStatus,
		NewStatus:      row.NewStatus,
		ChangeReason:   row.ChangeReason,
		Notes:          row.Notes,
		Metadata:       metadata,
		ChangedBy:      row.ChangedBy,
		ChangedAt:      row.ChangedAt,
	}
}
