package ports

import (
	"context"
	"time"
)

// Job amounts are minor units.
type Job struct {
	ID            uint64
	BusinessID    uint64
	JobID         string
	CustomerID    *uint64
	EquipmentID   *uint64
	Description   string
	Status        string
	PaymentAmount int64
	PaymentStatus string
	CreatedBy     uint64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type TimeEntry struct {
	ID         uint64
	BusinessID uint64
	JobID      uint64
	UserID     uint64
	Minutes    int64
	Notes      string
	CreatedAt  time.Time
}

type JobRepository interface {
	JobIDExists(ctx context.Context, businessID uint64, jobID string) (bool, error)
	CreateJob(ctx context.Context, job Job) (Job, error)
	GetJob(ctx context.Context, businessID uint64, id uint64) (Job, error)
	ListJobs(ctx context.Context, businessID uint64) ([]Job, error)
	// DeleteJob removes the job with its services, payments, work completed,
	// time entries, job updates and activity rows.
	DeleteJob(ctx context.Context, businessID uint64, id uint64) (bool, error)

	AddTimeEntry(ctx context.Context, entry TimeEntry) (TimeEntry, error)
	ListTimeEntries(ctx context.Context, businessID uint64, jobID uint64) ([]TimeEntry, error)
}
