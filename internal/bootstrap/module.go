package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"workshop/internal/bootstrap/config"
	"workshop/internal/bootstrap/database"
	"workshop/internal/bootstrap/logging"
	"workshop/internal/infrastructure/metrics"
	sqliterepo "workshop/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "workshop/internal/infrastructure/persistence/sqlite/uow"
	"workshop/internal/ports"
	"workshop/internal/usecase/activity"
	"workshop/internal/usecase/backoffice"
	"workshop/internal/usecase/maintenance"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(sqliterepo.NewTenantRepository, fx.As(new(ports.TenantRepository))),
		fx.Annotate(sqliterepo.NewCounterRepository, fx.As(new(ports.CounterRepository))),
		fx.Annotate(sqliterepo.NewJobRepository, fx.As(new(ports.JobRepository))),
		fx.Annotate(sqliterepo.NewOrderRepository, fx.As(new(ports.OrderRepository))),
		fx.Annotate(sqliterepo.NewPartRepository, fx.As(new(ports.PartRepository))),
		fx.Annotate(sqliterepo.NewCallbackRepository, fx.As(new(ports.CallbackRepository))),
		fx.Annotate(sqliterepo.NewActivityRepository, fx.As(new(ports.ActivityRepository))),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(
		fx.Annotate(
			metrics.NewPrometheus,
			fx.As(fx.Self()),
			fx.As(new(ports.Metrics)),
		),
	),
	fx.Provide(activity.NewRecorder),
	fx.Provide(provideService),
	fx.Provide(provideSweeper),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}

type serviceParams struct {
	fx.In

	Config    config.Config
	Tenants   ports.TenantRepository
	Counters  ports.CounterRepository
	Jobs      ports.JobRepository
	Orders    ports.OrderRepository
	Parts     ports.PartRepository
	Callbacks ports.CallbackRepository
	UOW       ports.UnitOfWork
	Recorder  *activity.Recorder
	Metrics   ports.Metrics
}

func provideService(p serviceParams) (*backoffice.Service, error) {
	return backoffice.NewService(backoffice.Deps{
		Tenants:   p.Tenants,
		Counters:  p.Counters,
		Jobs:      p.Jobs,
		Orders:    p.Orders,
		Parts:     p.Parts,
		Callbacks: p.Callbacks,
		UOW:       p.UOW,
		Observer:  p.Recorder,
		Metrics:   p.Metrics,
	}, backoffice.Options{
		AllowDegraded: p.Config.Identifiers.AllowDegraded,
		PurgeAfter:    p.Config.Callbacks.PurgeAfter,
	})
}

func provideSweeper(cfg config.Config, service *backoffice.Service, recorder *activity.Recorder) *maintenance.Sweeper {
	return maintenance.NewSweeper(service, recorder, maintenance.Options{
		Interval:        cfg.Maintenance.Interval,
		RetainPerTenant: cfg.Activity.RetainPerTenant,
	})
}
