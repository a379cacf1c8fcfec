package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"workshop/internal/errs"
	"workshop/internal/infrastructure/persistence/sqlite/model"
	"workshop/internal/ports"
)

type CallbackRepository struct {
	conn
}

func NewCallbackRepository(db *gorm.DB) *CallbackRepository {
	return &CallbackRepository{conn{db: db}}
}

func (r *CallbackRepository) CreateCallback(ctx context.Context, callback ports.CallbackRequest) (ports.CallbackRequest, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.CallbackRequest{}, err
	}

	row := model.CallbackRequest{
		BusinessID:   callback.BusinessID,
		CustomerID:   callback.CustomerID,
		CustomerName: callback.CustomerName,
		Phone:        callback.Phone,
		Reason:       callback.Reason,
		Status:       callback.Status,
		Notes:        callback.Notes,
		CreatedBy:    callback.CreatedBy,
		CreatedAt:    callback.CreatedAt,
		UpdatedAt:    callback.UpdatedAt,
		CompletedAt:  callback.CompletedAt,
		DeletedAt:    callback.DeletedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.CallbackRequest{}, errs.Wrap(err, "insert callback request")
	}
	return mapCallback(row), nil
}

func (r *CallbackRepository) GetCallback(ctx context.Context, businessID uint64, id uint64) (ports.CallbackRequest, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.CallbackRequest{}, err
	}

	var row model.CallbackRequest
	if err := forUpdate(ctx, db).Where("business_id = ? AND id = ?", businessID, id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CallbackRequest{}, ports.ErrCallbackNotFound
		}
		return ports.CallbackRequest{}, errs.Wrap(err, "query callback request")
	}
	return mapCallback(row), nil
}

func (r *CallbackRepository) ListCallbacks(ctx context.Context, businessID uint64, statuses []string) ([]ports.CallbackRequest, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Where("business_id = ?", businessID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var rows []model.CallbackRequest
	if err := query.Order("created_at desc, id desc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query callback requests")
	}

	items := make([]ports.CallbackRequest, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapCallback(row))
	}
	return items, nil
}

func (r *CallbackRepository) SaveCallbackState(ctx context.Context, callback ports.CallbackRequest, expectedStatus string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	query := db.Model(&model.CallbackRequest{}).Where("business_id = ? AND id = ?", callback.BusinessID, callback.ID)
	res := whenStatus(query, expectedStatus).
		Updates(map[string]any{
			"status":       callback.Status,
			"notes":        callback.Notes,
			"completed_at": callback.CompletedAt,
			"deleted_at":   callback.DeletedAt,
			"updated_at":   callback.UpdatedAt,
		})
	if res.Error != nil {
		return errs.Wrap(res.Error, "update callback request")
	}
	if res.RowsAffected == 0 {
		return missingOrStale(db, &model.CallbackRequest{}, callback.BusinessID, callback.ID, expectedStatus, ports.ErrCallbackNotFound)
	}
	return nil
}

func (r *CallbackRepository) PurgeDeletedBefore(ctx context.Context, businessID uint64, status string, cutoff time.Time) (int64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	res := db.Where("business_id = ? AND status = ? AND deleted_at IS NOT NULL AND deleted_at < ?", businessID, status, cutoff).
		Delete(&model.CallbackRequest{})
	if res.Error != nil {
		return 0, errs.Wrap(res.Error, "purge callback requests")
	}
	return res.RowsAffected, nil
}

func (r *CallbackRepository) DeleteCallback(ctx context.Context, businessID uint64, id uint64) (bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return false, err
	}

	res := db.Where("business_id = ? AND id = ?", businessID, id).Delete(&model.CallbackRequest{})
	if res.Error != nil {
		return false, errs.Wrap(res.Error, "delete callback request")
	}
	return res.RowsAffected > 0, nil
}

func mapCallback(row model.CallbackRequest) ports.CallbackRequest {
	return ports.CallbackRequest{
		ID:           row.ID,
		BusinessID:   row.BusinessID,
		CustomerID:   row.CustomerID,
		CustomerName: row.CustomerName,
		Phone:        row.Phone,
		Reason:       row.Reason,
		Status:       row.Status,
		Notes:        row.Notes,
		CreatedBy:    row.CreatedBy,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		CompletedAt:  row.CompletedAt,
		DeletedAt:    row.DeletedAt,
	}
}
