package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"workshop/internal/errs"
	"workshop/internal/infrastructure/persistence/sqlite/model"
	"workshop/internal/ports"
)

type PartRepository struct {
	conn
}

func NewPartRepository(db *gorm.DB) *PartRepository {
	return &PartRepository{conn{db: db}}
}

func (r *PartRepository) CreatePart(ctx context.Context, part ports.PartOnOrder) (ports.PartOnOrder, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.PartOnOrder{}, err
	}

	row := model.PartOnOrder{
		BusinessID:           part.BusinessID,
		JobID:                part.JobID,
		CustomerID:           part.CustomerID,
		PartName:             part.PartName,
		Supplier:             part.Supplier,
		Quantity:             part.Quantity,
		EstimatedCost:        part.EstimatedCost,
		ActualCost:           part.ActualCost,
		Status:               part.Status,
		IsArrived:            part.IsArrived,
		IsCustomerNotified:   part.IsCustomerNotified,
		ExpectedDeliveryDate: part.ExpectedDeliveryDate,
		DeliveryDate:         part.DeliveryDate,
		CollectedAt:          part.CollectedAt,
		Notes:                part.Notes,
		CreatedBy:            part.CreatedBy,
		CreatedAt:            part.CreatedAt,
		UpdatedAt:            part.UpdatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.PartOnOrder{}, errs.Wrap(err, "insert part on order")
	}
	return mapPart(row), nil
}

func (r *PartRepository) GetPart(ctx context.Context, businessID uint64, id uint64) (ports.PartOnOrder, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.PartOnOrder{}, err
	}

	var row model.PartOnOrder
	if err := forUpdate(ctx, db).Where("business_id = ? AND id = ?", businessID, id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.PartOnOrder{}, ports.ErrPartNotFound
		}
		return ports.PartOnOrder{}, errs.Wrap(err, "query part on order")
	}
	return mapPart(row), nil
}

func (r *PartRepository) SavePartState(ctx context.Context, part ports.PartOnOrder, expectedStatus string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	query := db.Model(&model.PartOnOrder{}).Where("business_id = ? AND id = ?", part.BusinessID, part.ID)
	res := whenStatus(query, expectedStatus).
		Updates(map[string]any{
			"status":               part.Status,
			"is_arrived":           part.IsArrived,
			"is_customer_notified": part.IsCustomerNotified,
			"actual_cost":          part.ActualCost,
			"delivery_date":        part.DeliveryDate,
			"collected_at":         part.CollectedAt,
			"notes":                part.Notes,
			"updated_at":           part.UpdatedAt,
		})
	if res.Error != nil {
		return errs.Wrap(res.Error, "update part on order")
	}
	if res.RowsAffected == 0 {
		return missingOrStale(db, &model.PartOnOrder{}, part.BusinessID, part.ID, expectedStatus, ports.ErrPartNotFound)
	}
	return nil
}

func (r *PartRepository) AppendPartUpdate(ctx context.Context, update ports.PartOrderUpdate) (ports.PartOrderUpdate, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.PartOrderUpdate{}, err
	}

	row := model.PartOrderUpdate{
		BusinessID:     update.BusinessID,
		PartID:         update.PartID,
		UpdateType:     update.UpdateType,
		PreviousStatus: update.PreviousStatus,
		NewStatus:      update.NewStatus,
		Notes:          update.Notes,
		UpdatedBy:      update.UpdatedBy,
		CreatedAt:      update.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.PartOrderUpdate{}, errs.Wrap(err, "insert part order update")
	}
	return mapPartUpdate(row), nil
}

func (r *PartRepository) ListPartUpdates(ctx context.Context, businessID uint64, partID uint64) ([]ports.PartOrderUpdate, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.PartOrderUpdate
	if err := db.Where("business_id = ? AND part_id = ?", businessID, partID).
		Order("id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query part order updates")
	}

	items := make([]ports.PartOrderUpdate, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapPartUpdate(row))
	}
	return items, nil
}

func mapPart(row model.PartOnOrder) ports.PartOnOrder {
	return ports.PartOnOrder{
		ID:                   row.ID,
		BusinessID:           row.BusinessID,
		JobID:                row.JobID,
		CustomerID:           row.CustomerID,
		PartName:             row.PartName,
		Supplier:             row.Supplier,
		Quantity:             row.Quantity,
		EstimatedCost:        row.EstimatedCost,
		ActualCost:           row.ActualCost,
		Status:               row.Status,
		IsArrived:            row.IsArrived,
		IsCustomerNotified:   row.IsCustomerNotified,
		ExpectedDeliveryDate: row.ExpectedDeliveryDate,
		DeliveryDate:         row.DeliveryDate,
		CollectedAt:          row.CollectedAt,
		Notes:                row.Notes,
		CreatedBy:            row.CreatedBy,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}
}

func mapPartUpdate(row model.PartOrderUpdate) ports.PartOrderUpdate {
	return ports.PartOrderUpdate{
		ID:             row.ID,
		BusinessID:     row.BusinessID,
		PartID:         row.PartID,
		UpdateType:     row.UpdateType,
		PreviousStatus: row.PreviousStatus,
		NewStatus:      row.NewStatus,
		Notes:          row.Notes,
		UpdatedBy:      row.UpdatedBy,
		CreatedAt:      row.CreatedAt,
	}
}
