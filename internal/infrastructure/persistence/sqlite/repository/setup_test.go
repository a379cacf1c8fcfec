package repository

import (
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"workshop/internal/infrastructure/persistence/schema"
	"workshop/internal/infrastructure/persistence/sqlite/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "workshop.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := db.AutoMigrate(schema.Models(schema.CurrentVersion)...); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func testNow() time.Time {
	return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

func seedBusiness(t *testing.T, db *gorm.DB, name string) uint64 {
	t.Helper()

	row := model.Business{Name: name, CreatedAt: testNow(), UpdatedAt: testNow()}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed business: %v", err)
	}
	return row.ID
}
