package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"workshop/internal/errs"
	"workshop/internal/infrastructure/persistence/sqlite/model"
	"workshop/internal/ports"
)

type ActivityRepository struct {
	conn
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{conn{db: db}}
}

func (r *ActivityRepository) AppendActivity(ctx context.Context, activity ports.Activity) (ports.Activity, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Activity{}, err
	}

	row := model.Activity{
		BusinessID:   activity.BusinessID,
		UserID:       activity.UserID,
		ActivityType: activity.ActivityType,
		Description:  activity.Description,
		EntityType:   activity.EntityType,
		EntityID:     activity.EntityID,
		CreatedAt:    activity.CreatedAt,
	}
	if len(activity.Metadata) > 0 {
		row.Metadata = datatypes.JSONMap(activity.Metadata)
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Activity{}, errs.Wrap(err, "insert activity")
	}
	return mapActivity(row), nil
}

// ListActivities returns the newest rows first.
func (r *ActivityRepository) ListActivities(ctx context.Context, businessID uint64, limit int) ([]ports.Activity, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Where("business_id = ?", businessID).Order("created_at desc, id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []model.Activity
	if err := query.Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query activities")
	}

	items := make([]ports.Activity, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapActivity(row))
	}
	return items, nil
}

func (r *ActivityRepository) PruneActivities(ctx context.Context, keepPerTenant int) (int64, error) {
	if keepPerTenant <= 0 {
		return 0, nil
	}

	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	var businessIDs []uint64
	if err := db.Model(&model.Activity{}).Distinct("business_id").Pluck("business_id", &businessIDs).Error; err != nil {
		return 0, errs.Wrap(err, "list activity tenants")
	}

	var removed int64
	for _, businessID := range businessIDs {
		keep := db.Model(&model.Activity{}).
			Select("id").
			Where("business_id = ?", businessID).
			Order("created_at desc, id desc").
			Limit(keepPerTenant)

		res := db.Where("business_id = ? AND id NOT IN (?)", businessID, keep).Delete(&model.Activity{})
		if res.Error != nil {
			return removed, errs.Wrapf(res.Error, "prune activities for business %d", businessID)
		}
		removed += res.RowsAffected
	}
	return removed, nil
}

func mapActivity(row model.Activity) ports.Activity {
	var metadata map[string]any
	if len(row.Metadata) > 0 {
		metadata = map[string]any(row.Metadata)
	}
	return ports.Activity{
		ID:           row.ID,
		BusinessID:   row.BusinessID,
		UserID:       row.UserID,
		ActivityType: row.ActivityType,
		Description:  row.Description,
		EntityType:   row.EntityType,
		EntityID:     row.EntityID,
		Metadata:     metadata,
		CreatedAt:    row.CreatedAt,
	}
}
