package ports

import (
	"context"
	"time"
)

type Business struct {
	BusinessID uint64
	Name       string
	CreatedAt  time.Time
}

// TeardownStep is one delete statement of a tenant teardown.
// Rows match when ScopeColumn equals the tenant id, or, for parent-scoped
// steps, when ForeignKey points at a Parent row whose ScopeColumn matches.
type TeardownStep struct {
	Table       string
	ScopeColumn string
	Parent      string
	ForeignKey  string
}

type TenantRepository interface {
	CreateBusiness(ctx context.Context, name string, now time.Time) (Business, error)
	GetBusiness(ctx context.Context, businessID uint64) (Business, error)
	ListBusinessIDs(ctx context.Context) ([]uint64, error)

	SchemaVersion(ctx context.Context) (int, error)
	SetSchemaVersion(ctx context.Context, version int, now time.Time) error
	HasTable(ctx context.Context, table string) (bool, error)
	DeleteTenantRows(ctx context.Context, step TeardownStep, businessID uint64) (int64, error)
}
