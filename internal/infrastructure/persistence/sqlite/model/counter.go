package model

import "time"

type TenantCounter struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID    uint64    `gorm:"column:business_id;not null;uniqueIndex:ux_tenant_counters_business_kind,priority:1"`
	Kind          string    `gorm:"column:kind;type:text;not null;uniqueIndex:ux_tenant_counters_business_kind,priority:2"`
	CurrentNumber int64     `gorm:"column:current_number;not null"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null"`
}

func (TenantCounter) TableName() string {
	return "tenant_counters"
}
