package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/fx"

	"workshop/internal/infrastructure/persistence/schema"
	"workshop/internal/infrastructure/persistence/sqlite/repository"
	"workshop/internal/usecase/backoffice"
	"workshop/internal/usecase/maintenance"
)

func writeConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := []byte("database:\n  driver: sqlite\n  dsn: " + filepath.Join(dir, "workshop.sqlite") + "\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestInitSchemaRecordsVersion(t *testing.T) {
	ctx := context.Background()

	app, err := New(ctx, writeConfig(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = app.Close(context.Background())
	})

	for i := 0; i < 2; i++ {
		if err := app.InitSchema(ctx); err != nil {
			t.Fatalf("InitSchema() run %d error = %v", i+1, err)
		}
	}

	version, err := repository.NewTenantRepository(app.DB).SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if version != schema.CurrentVersion {
		t.Fatalf("SchemaVersion() = %d, want %d", version, schema.CurrentVersion)
	}
}

func TestModuleResolvesServiceGraph(t *testing.T) {
	configFile := writeConfig(t)

	var (
		service *backoffice.Service
		sweeper *maintenance.Sweeper
	)
	app := fx.New(
		Module,
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		fx.Provide(
			fx.Annotate(
				func() string { return configFile },
				fx.ResultTags(`name:"configFile"`),
			),
		),
		fx.Populate(&service, &sweeper),
	)
	if err := app.Err(); err != nil {
		t.Fatalf("fx.New() error = %v", err)
	}
	if service == nil || sweeper == nil {
		t.Fatalf("populated service=%v sweeper=%v", service, sweeper)
	}
}
