package model

import "time"

type CallbackRequest struct {
	ID           uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID   uint64     `gorm:"column:business_id;not null;index:idx_callback_requests_purge,priority:1"`
	CustomerID   *uint64    `gorm:"column:customer_id"`
	CustomerName string     `gorm:"column:customer_name;type:text;not null"`
	Phone        string     `gorm:"column:phone;type:text;not null;default:''"`
	Reason       string     `gorm:"column:reason;type:text;not null;default:''"`
	Status       string     `gorm:"column:status;type:text;not null;index:idx_callback_requests_purge,priority:2"`
	Notes        string     `gorm:"column:notes;type:text;not null;default:''"`
	CreatedBy    uint64     `gorm:"column:created_by;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;not null"`
	CompletedAt  *time.Time `gorm:"column:completed_at"`
	DeletedAt    *time.Time `gorm:"column:deleted_at;index:idx_callback_requests_purge,priority:3"`
}

func (CallbackRequest) TableName() string {
	return "callback_requests"
}
