package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"workshop/internal/errs"
	"workshop/internal/infrastructure/persistence/schema"
	"workshop/internal/infrastructure/persistence/sqlite/model"
	"workshop/internal/ports"
)

type TenantRepository struct {
	conn
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{conn{db: db}}
}

func (r *TenantRepository) CreateBusiness(ctx context.Context, name string, now time.Time) (ports.Business, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Business{}, err
	}

	row := model.Business{
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Business{}, errs.Wrap(err, "insert business")
	}
	return mapBusiness(row), nil
}

func (r *TenantRepository) GetBusiness(ctx context.Context, businessID uint64) (ports.Business, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Business{}, err
	}

	var row model.Business
	if err := db.Where("id = ?", businessID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Business{}, ports.ErrBusinessNotFound
		}
		return ports.Business{}, errs.Wrap(err, "query business")
	}
	return mapBusiness(row), nil
}

func (r *TenantRepository) ListBusinessIDs(ctx context.Context) ([]uint64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var ids []uint64
	if err := db.Model(&model.Business{}).Order("id asc").Pluck("id", &ids).Error; err != nil {
		return nil, errs.Wrap(err, "list businesses")
	}
	return ids, nil
}

// SchemaVersion returns 0 when the database was never stamped.
func (r *TenantRepository) SchemaVersion(ctx context.Context) (int, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}
	if !db.Migrator().HasTable(&schema.SchemaMeta{}) {
		return 0, nil
	}

	var row schema.SchemaMeta
	if err := db.Where("key = ?", schema.VersionKey).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, errs.Wrap(err, "query schema version")
	}

	version, err := strconv.Atoi(strings.TrimSpace(row.Value))
	if err != nil {
		return 0, errs.Wrapf(err, "parse schema version %q", row.Value)
	}
	return version, nil
}

func (r *TenantRepository) SetSchemaVersion(ctx context.Context, version int, now time.Time) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := schema.SchemaMeta{
		Key:       schema.VersionKey,
		Value:     strconv.Itoa(version),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error; err != nil {
		return errs.Wrap(err, "upsert schema version")
	}
	return nil
}

func (r *TenantRepository) HasTable(ctx context.Context, table string) (bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return false, err
	}
	return db.Migrator().HasTable(table), nil
}

func (r *TenantRepository) DeleteTenantRows(ctx context.Context, step ports.TeardownStep, businessID uint64) (int64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}
	if step.Table == "" || step.ScopeColumn == "" {
		return 0, errors.New("teardown step needs a table and a scope column")
	}

	var res *gorm.DB
	if step.Parent != "" {
		if step.ForeignKey == "" {
			return 0, errs.Wrapf(errors.New("missing foreign key"), "teardown step %s", step.Table)
		}
		res = db.Exec(
			"DELETE FROM ? WHERE ? IN (SELECT id FROM ? WHERE ? = ?)",
			clause.Table{Name: step.Table},
			clause.Column{Name: step.ForeignKey},
			clause.Table{Name: step.Parent},
			clause.Column{Name: step.ScopeColumn},
			businessID,
		)
	} else {
		res = db.Exec(
			"DELETE FROM ? WHERE ? = ?",
			clause.Table{Name: step.Table},
			clause.Column{Name: step.ScopeColumn},
			businessID,
		)
	}
	if res.Error != nil {
		return 0, errs.Wrapf(res.Error, "delete from %s", step.Table)
	}
	return res.RowsAffected, nil
}

func mapBusiness(row model.Business) ports.Business {
	return ports.Business{
		BusinessID: row.ID,
		Name:       row.Name,
		CreatedAt:  row.CreatedAt,
	}
}
