package model

import (
	"time"

	"gorm.io/datatypes"
)

type Order struct {
	ID                   uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID           uint64     `gorm:"column:business_id;not null;index;uniqueIndex:ux_orders_business_number,priority:1"`
	OrderNumber          string     `gorm:"column:order_number;type:text;not null;uniqueIndex:ux_orders_business_number,priority:2"`
	CustomerID           *uint64    `gorm:"column:customer_id;index"`
	Supplier             string     `gorm:"column:supplier;type:text;not null;default:''"`
	Status               string     `gorm:"column:status;type:text;not null"`
	TotalAmount          int64      `gorm:"column:total_amount;not null;default:0"`
	DepositAmount        int64      `gorm:"column:deposit_amount;not null;default:0"`
	Notes                string     `gorm:"column:notes;type:text;not null;default:''"`
	ExpectedDeliveryDate *time.Time `gorm:"column:expected_delivery_date"`
	ActualDeliveryDate   *time.Time `gorm:"column:actual_delivery_date"`
	CompletedAt          *time.Time `gorm:"column:completed_at"`
	CancelledAt          *time.Time `gorm:"column:cancelled_at"`
	CreatedBy            uint64     `gorm:"column:created_by;not null"`
	CreatedAt            time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt            time.Time  `gorm:"column:updated_at;not null"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID          uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID     uint64 `gorm:"column:order_id;not null;index"`
	Description string `gorm:"column:description;type:text;not null"`
	Quantity    int64  `gorm:"column:quantity;not null"`
	UnitPrice   int64  `gorm:"column:unit_price;not null"`
	LineTotal   int64  `gorm:"column:line_total;not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

type OrderStatusHistory struct {
	ID             uint64            `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID     uint64            `gorm:"column:business_id;not null;index"`
	OrderID        uint64            `gorm:"column:order_id;not null;index"`
	PreviousStatus *string           `gorm:"column:previous_status;type:text"`
	NewStatus      string            `gorm:"column:new_status;type:text;not null"`
	ChangeReason   string            `gorm:"column:change_reason;type:text;not null;default:''"`
	Notes          string            `gorm:"column:notes;type:text;not null;default:''"`
	Metadata       datatypes.JSONMap `gorm:"column:metadata"`
	ChangedBy      uint64            `gorm:"column:changed_by;not null"`
	ChangedAt      time.Time         `gorm:"column:changed_at;not null"`
}

func (OrderStatusHistory) TableName() string {
	return "order_status_history"
}
