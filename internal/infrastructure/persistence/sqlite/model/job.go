package model

import "time"

type Job struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID    uint64    `gorm:"column:business_id;not null;index;uniqueIndex:ux_jobs_business_job_id,priority:1"`
	JobID         string    `gorm:"column:job_id;type:text;not null;uniqueIndex:ux_jobs_business_job_id,priority:2"`
	CustomerID    *uint64   `gorm:"column:customer_id;index"`
	EquipmentID   *uint64   `gorm:"column:equipment_id"`
	Description   string    `gorm:"column:description;type:text;not null;default:''"`
	Status        string    `gorm:"column:status;type:text;not null"`
	PaymentAmount int64     `gorm:"column:payment_amount;not null;default:0"`
	PaymentStatus string    `gorm:"column:payment_status;type:text;not null;default:'unpaid'"`
	CreatedBy     uint64    `gorm:"column:created_by;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null"`
}

func (Job) TableName() string {
	return "jobs"
}

type TimeEntry struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID uint64    `gorm:"column:business_id;not null;index"`
	JobID      uint64    `gorm:"column:job_id;not null;index"`
	UserID     uint64    `gorm:"column:user_id;not null"`
	Minutes    int64     `gorm:"column:minutes;not null"`
	Notes      string    `gorm:"column:notes;type:text;not null;default:''"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}
