package model

import (
	"time"

	"gorm.io/datatypes"
)

type Activity struct {
	ID           uint64            `gorm:"column:id;primaryKey;autoIncrement"`
	BusinessID   uint64            `gorm:"column:business_id;not null;index:idx_activities_business_created,priority:1"`
	UserID       uint64            `gorm:"column:user_id;not null"`
	ActivityType string            `gorm:"column:activity_type;type:text;not null"`
	Description  string            `gorm:"column:description;type:text;not null"`
	EntityType   string            `gorm:"column:entity_type;type:text;not null;index:idx_activities_entity,priority:1"`
	EntityID     string            `gorm:"column:entity_id;type:text;not null;index:idx_activities_entity,priority:2"`
	Metadata     datatypes.JSONMap `gorm:"column:metadata"`
	CreatedAt    time.Time         `gorm:"column:created_at;not null;index:idx_activities_business_created,priority:2"`
}

func (Activity) TableName() string {
	return "activities"
}
