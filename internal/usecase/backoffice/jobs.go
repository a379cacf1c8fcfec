package backoffice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"workshop/internal/domain/identifier"
	"workshop/internal/domain/job"
	"workshop/internal/domain/money"
	"workshop/internal/ports"
)

// CreateJob allocates the job identifier and inserts the job. A supplied
// JobID is kept when it is free and belongs to the tenant.
func (s *Service) CreateJob(ctx context.Context, input CreateJobInput) (JobView, error) {
	if err := s.checkTenantCall(ctx, input.BusinessID); err != nil {
		return JobView{}, err
	}
	if s.jobs == nil {
		return JobView{}, errors.New("job repository is required")
	}

	status, err := job.NormalizeStatus(input.Status)
	if err != nil {
		return JobView{}, err
	}
	if input.PaymentAmount.IsNegative() {
		return JobView{}, fmt.Errorf("%w: payment amount must not be negative", money.ErrInvalidAmount)
	}
	paymentStatus := strings.TrimSpace(input.PaymentStatus)
	if paymentStatus == "" {
		paymentStatus = job.DefaultPaymentStatus
	}

	now := s.now()
	var created ports.Job
	if _, err := s.insertWithIdentifier(ctx, input.BusinessID, identifier.KindJob, strings.TrimSpace(input.JobID), func(txCtx context.Context, id string) error {
		row, err := s.jobs.CreateJob(txCtx, ports.Job{
			BusinessID:    input.BusinessID,
			JobID:         id,
			CustomerID:    input.CustomerID,
			EquipmentID:   input.EquipmentID,
			Description:   strings.TrimSpace(input.Description),
			Status:        string(status),
			PaymentAmount: money.ToMinorUnits(input.PaymentAmount),
			PaymentStatus: paymentStatus,
			CreatedBy:     input.CreatedBy,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return err
		}
		created = row
		return nil
	}); err != nil {
		return JobView{}, err
	}

	s.publish(ctx, ports.LedgerEvent{
		BusinessID:  created.BusinessID,
		UserID:      input.CreatedBy,
		Type:        EventJobCreated,
		Description: fmt.Sprintf("Job %s created", created.JobID),
		EntityType:  "job",
		EntityID:    entityID(created.ID),
		Metadata:    map[string]any{"job_id": created.JobID, "status": created.Status},
		OccurredAt:  now,
	})
	return jobView(created), nil
}

func (s *Service) GetJob(ctx context.Context, businessID uint64, id uint64) (JobView, error) {
	if err := s.checkTenantCall(ctx, businessID); err != nil {
		return JobView{}, err
	}
	row, err := s.jobs.GetJob(ctx, businessID, id)
	if err != nil {
		return JobView{}, err
	}
	return jobView(row), nil
}

func (s *Service) ListJobs(ctx context.Context, businessID uint64) ([]JobView, error) {
	if err := s.checkTenantCall(ctx, businessID); err != nil {
		return nil, err
	}
	rows, err := s.jobs.ListJobs(ctx, businessID)
	if err != nil {
		return nil, err
	}
	items := make([]JobView, 0, len(rows))
	for _, row := range rows {
		items = append(items, jobView(row))
	}
	return items, nil
}

// DeleteJob removes a job with its dependent rows. Unknown jobs return false.
func (s *Service) DeleteJob(ctx context.Context, businessID uint64, id uint64, deletedBy uint64) (bool, error) {
	if err := s.checkTenantCall(ctx, businessID); err != nil {
		return false, err
	}

	var (
		existing ports.Job
		deleted  bool
	)
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		row, err := s.jobs.GetJob(txCtx, businessID, id)
		if err != nil {
			if errors.Is(err, ports.ErrJobNotFound) {
				return nil
			}
			return err
		}
		existing = row
		deleted, err = s.jobs.DeleteJob(txCtx, businessID, id)
		return err
	}); err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	s.publish(ctx, ports.LedgerEvent{
		BusinessID:  businessID,
		UserID:      deletedBy,
		Type:        EventJobDeleted,
		Description: fmt.Sprintf("Job %s deleted", existing.JobID),
		EntityType:  "business",
		EntityID:    entityID(businessID),
		Metadata:    map[string]any{"job_id": existing.JobID},
	})
	return true, nil
}

// RecordTimeEntry stores labour against a job in whole minutes.
func (s *Service) RecordTimeEntry(ctx context.Context, input RecordTimeEntryInput) (TimeEntryView, error) {
	if err := s.checkTenantCall(ctx, input.BusinessID); err != nil {
		return TimeEntryView{}, err
	}
	if !input.Hours.IsPositive() {
		return TimeEntryView{}, fmt.Errorf("%w: hours must be positive", money.ErrInvalidAmount)
	}

	now := s.now()
	var entry ports.TimeEntry
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.jobs.GetJob(txCtx, input.BusinessID, input.JobID); err != nil {
			return err
		}
		row, err := s.jobs.AddTimeEntry(txCtx, ports.TimeEntry{
			BusinessID: input.BusinessID,
			JobID:      input.JobID,
			UserID:     input.UserID,
			Minutes:    money.HoursToMinutes(input.Hours),
			Notes:      strings.TrimSpace(input.Notes),
			CreatedAt:  now,
		})
		if err != nil {
			return err
		}
		entry = row
		return nil
	}); err != nil {
		return TimeEntryView{}, err
	}

	s.publish(ctx, ports.LedgerEvent{
		BusinessID:  input.BusinessID,
		UserID:      input.UserID,
		Type:        EventTimeRecorded,
		Description: fmt.Sprintf("%s hours recorded", money.MinutesToHours(entry.Minutes).String()),
		EntityType:  "job",
		EntityID:    entityID(input.JobID),
		Metadata:    map[string]any{"minutes": entry.Minutes},
		OccurredAt:  now,
	})
	return timeEntryView(entry), nil
}

func (s *Service) ListTimeEntries(ctx context.Context, businessID uint64, jobID uint64) ([]TimeEntryView, error) {
	if err := s.checkTenantCall(ctx, businessID); err != nil {
		return nil, err
	}
	rows, err := s.jobs.ListTimeEntries(ctx, businessID, jobID)
	if err != nil {
		return nil, err
	}
	items := make([]TimeEntryView, 0, len(rows))
	for _, row := range rows {
		items = append(items, timeEntryView(row))
	}
	return items, nil
}
