package model

import "time"

// Rows that hang off a job. They are removed with the job or with the tenant.

type Service struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID uint64    `gorm:"column:business_id;not null;index"`
	JobID      uint64    `gorm:"column:job_id;not null;index"`
	Name       string    `gorm:"column:name;type:text;not null"`
	Price      int64     `gorm:"column:price;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (Service) TableName() string {
	return "services"
}

type Payment struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID uint64    `gorm:"column:business_id;not null;index"`
	JobID      uint64    `gorm:"column:job_id;not null;index"`
	Amount     int64     `gorm:"column:amount;not null"`
	Method     string    `gorm:"column:method;type:text;not null;default:''"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (Payment) TableName() string {
	return "payments"
}

type PaymentRequest struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID uint64    `gorm:"column:business_id;not null;index"`
	JobID      *uint64   `gorm:"column:job_id;index"`
	Amount     int64     `gorm:"column:amount;not null"`
	Status     string    `gorm:"column:status;type:text;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (PaymentRequest) TableName() string {
	return "payment_requests"
}

type WorkCompleted struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID  uint64    `gorm:"column:business_id;not null;index"`
	JobID       uint64    `gorm:"column:job_id;not null;index"`
	Description string    `gorm:"column:description;type:text;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
}

func (WorkCompleted) TableName() string {
	return "work_completed"
}

type JobUpdate struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID uint64    `gorm:"column:business_id;not null;index"`
	JobID      uint64    `gorm:"column:job_id;not null;index"`
	Note       string    `gorm:"column:note;type:text;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (JobUpdate) TableName() string {
	return "job_updates"
}

type Task struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID uint64    `gorm:"column:business_id;not null;index"`
	Title      string    `gorm:"column:title;type:text;not null"`
	Done       bool      `gorm:"column:done;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (Task) TableName() string {
	return "tasks"
}
