package repository

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"workshop/internal/errs"
	"workshop/internal/infrastructure/persistence/sqlite/model"
	"workshop/internal/ports"
)

type JobRepository struct {
	conn
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{conn{db: db}}
}

func (r *JobRepository) JobIDExists(ctx context.Context, businessID uint64, jobID string) (bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return false, err
	}

	var count int64
	if err := db.Model(&model.Job{}).
		Where("business_id = ? AND job_id = ?", businessID, jobID).
		Count(&count).Error; err != nil {
		return false, errs.Wrap(err, "count jobs by job_id")
	}
	return count > 0, nil
}

func (r *JobRepository) CreateJob(ctx context.Context, job ports.Job) (ports.Job, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Job{}, err
	}

	row := model.Job{
		BusinessID:    job.BusinessID,
		JobID:         job.JobID,
		CustomerID:    job.CustomerID,
		EquipmentID:   job.EquipmentID,
		Description:   job.Description,
		Status:        job.Status,
		PaymentAmount: job.PaymentAmount,
		PaymentStatus: job.PaymentStatus,
		CreatedBy:     job.CreatedBy,
		CreatedAt:     job.CreatedAt,
		UpdatedAt:     job.UpdatedAt,
	}
	if row.PaymentStatus == "" {
		row.PaymentStatus = "unpaid"
	}
	if err := db.Create(&row).Error; err != nil {
		if isDuplicateKey(err) {
			return ports.Job{}, ports.ErrDuplicateIdentifier
		}
		return ports.Job{}, errs.Wrap(err, "insert job")
	}
	return mapJob(row), nil
}

func (r *JobRepository) GetJob(ctx context.Context, businessID uint64, id uint64) (ports.Job, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Job{}, err
	}

	var row model.Job
	if err := db.Where("business_id = ? AND id = ?", businessID, id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Job{}, ports.ErrJobNotFound
		}
		return ports.Job{}, errs.Wrap(err, "query job")
	}
	return mapJob(row), nil
}

func (r *JobRepository) ListJobs(ctx context.Context, businessID uint64) ([]ports.Job, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Job
	if err := db.Where("business_id = ?", businessID).Order("id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query jobs")
	}

	items := make([]ports.Job, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapJob(row))
	}
	return items, nil
}

func (r *JobRepository) DeleteJob(ctx context.Context, businessID uint64, id uint64) (bool, error) {
	deleted := false
	err := r.transaction(ctx, func(tx *gorm.DB) error {
		var row model.Job
		if err := tx.Where("business_id = ? AND id = ?", businessID, id).Take(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return errs.Wrap(err, "query job")
		}

		for _, child := range []any{
			&model.Service{},
			&model.Payment{},
			&model.WorkCompleted{},
			&model.TimeEntry{},
			&model.JobUpdate{},
		} {
			if err := tx.Where("business_id = ? AND job_id = ?", businessID, row.ID).Delete(child).Error; err != nil {
				return errs.Wrapf(err, "delete job children %T", child)
			}
		}
		if err := tx.Where("business_id = ? AND entity_type = ? AND entity_id = ?", businessID, "job", strconv.FormatUint(row.ID, 10)).
			Delete(&model.Activity{}).Error; err != nil {
			return errs.Wrap(err, "delete job activities")
		}

		res := tx.Where("business_id = ? AND id = ?", businessID, row.ID).Delete(&model.Job{})
		if res.Error != nil {
			return errs.Wrap(res.Error, "delete job")
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (r *JobRepository) AddTimeEntry(ctx context.Context, entry ports.TimeEntry) (ports.TimeEntry, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.TimeEntry{}, err
	}

	row := model.TimeEntry{
		BusinessID: entry.BusinessID,
		JobID:      entry.JobID,
		UserID:     entry.UserID,
		Minutes:    entry.Minutes,
		Notes:      entry.Notes,
		CreatedAt:  entry.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.TimeEntry{}, errs.Wrap(err, "insert time entry")
	}
	return mapTimeEntry(row), nil
}

func (r *JobRepository) ListTimeEntries(ctx context.Context, businessID uint64, jobID uint64) ([]ports.TimeEntry, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.TimeEntry
	if err := db.Where("business_id = ? AND job_id = ?", businessID, jobID).Order("id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query time entries")
	}

	items := make([]ports.TimeEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapTimeEntry(row))
	}
	return items, nil
}

func mapJob(row model.Job) ports.Job {
	return ports.Job{
		ID:            row.ID,
		BusinessID:    row.BusinessID,
		JobID:         row.JobID,
		CustomerID:    row.CustomerID,
		EquipmentID:   row.EquipmentID,
		Description:   row.Description,
		Status:        row.Status,
		PaymentAmount: row.PaymentAmount,
		PaymentStatus: row.PaymentStatus,
		CreatedBy:     row.CreatedBy,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func mapTimeEntry(row model.TimeEntry) ports.TimeEntry {
	return ports.TimeEntry{
		ID:         row.ID,
		BusinessID: row.BusinessID,
		JobID:      row.JobID,
		UserID:     row.UserID,
		Minutes:    row.Minutes,
		Notes:      row.Notes,
		CreatedAt:  row.CreatedAt,
	}
}
