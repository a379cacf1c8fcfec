package model

import "time"

type PartOnOrder struct {
	ID                   uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID           uint64     `gorm:"column:business_id;not null;index"`
	JobID                *uint64    `gorm:"column:job_id;index"`
	CustomerID           *uint64    `gorm:"column:customer_id"`
	PartName             string     `gorm:"column:part_name;type:text;not null"`
	Supplier             string     `gorm:"column:supplier;type:text;not null;default:''"`
	Quantity             int64      `gorm:"column:quantity;not null;default:1"`
	EstimatedCost        *int64     `gorm:"column:estimated_cost"`
	ActualCost           *int64     `gorm:"column:actual_cost"`
	Status               string     `gorm:"column:status;type:text;not null"`
	IsArrived            bool       `gorm:"column:is_arrived;not null;default:false"`
	IsCustomerNotified   bool       `gorm:"column:is_customer_notified;not null;default:false"`
	ExpectedDeliveryDate *time.Time `gorm:"column:expected_delivery_date"`
	DeliveryDate         *time.Time `gorm:"column:delivery_date"`
	CollectedAt          *time.Time `gorm:"column:collected_at"`
	Notes                string     `gorm:"column:notes;type:text;not null;default:''"`
	CreatedBy            uint64     `gorm:"column:created_by;not null"`
	CreatedAt            time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt            time.Time  `gorm:"column:updated_at;not null"`
}

func (PartOnOrder) TableName() string {
	return "parts_on_order"
}

type PartOrderUpdate struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID     uint64    `gorm:"column:business_id;not null;index"`
	PartID         uint64    `gorm:"column:part_id;not null;index"`
	UpdateType     string    `gorm:"column:update_type;type:text;not null"`
	PreviousStatus *string   `gorm:"column:previous_status;type:text"`
	NewStatus      string    `gorm:"column:new_status;type:text;not null"`
	Notes          string    `gorm:"column:notes;type:text;not null;default:''"`
	UpdatedBy      uint64    `gorm:"column:updated_by;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;not null"`
}

func (PartOrderUpdate) TableName() string {
	return "part_order_updates"
}
