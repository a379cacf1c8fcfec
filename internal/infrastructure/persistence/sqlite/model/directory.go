package model

import "time"

type User struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID uint64    `gorm:"column:business_id;not null;index"`
	Email      string    `gorm:"column:email;type:text;not null"`
	Role       string    `gorm:"column:role;type:text;not null;default:'staff'"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (User) TableName() string {
	return "users"
}

type RegistrationRequest struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID uint64    `gorm:"column:business_id;not null;index"`
	Email      string    `gorm:"column:email;type:text;not null"`
	Status     string    `gorm:"column:status;type:text;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (RegistrationRequest) TableName() string {
	return "registration_requests"
}

type Customer struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID uint64    `gorm:"column:business_id;not null;index"`
	Name       string    `gorm:"column:name;type:text;not null"`
	Phone      string    `gorm:"column:phone;type:text;not null;default:''"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (Customer) TableName() string {
	return "customers"
}

type Equipment struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID uint64    `gorm:"column:business_id;not null;index"`
	CustomerID *uint64   `gorm:"column:customer_id;index"`
	Make       string    `gorm:"column:make;type:text;not null;default:''"`
	Model      string    `gorm:"column:model;type:text;not null;default:''"`
	SerialNo   string    `gorm:"column:serial_no;type:text;not null;default:''"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (Equipment) TableName() string {
	return "equipment"
}
