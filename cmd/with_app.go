package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"workshop/internal/bootstrap"
	"workshop/internal/bootstrap/logging"
	"workshop/internal/errs"
	"workshop/internal/infrastructure/metrics"
	"workshop/internal/usecase/activity"
	"workshop/internal/usecase/backoffice"
	"workshop/internal/usecase/maintenance"
)

type appRuntime struct {
	App      *bootstrap.App
	Service  *backoffice.Service
	Recorder *activity.Recorder
	Sweeper  *maintenance.Sweeper
	Metrics  *metrics.Prometheus
}

func withApp(run func(cmd *cobra.Command, app *bootstrap.App, svc *backoffice.Service) error) func(cmd *cobra.Command, args []string) error {
	return withRuntime(func(cmd *cobra.Command, rt appRuntime) error {
		return run(cmd, rt.App, rt.Service)
	})
}

func withRuntime(run func(cmd *cobra.Command, rt appRuntime) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := logging.WithAttrs(
			cmd.Context(),
			slog.String("command", cmd.CommandPath()),
			slog.String("config_file", cfgFile),
		)

		var rt appRuntime
		fxApp := fx.New(
			bootstrap.Module,
			fx.NopLogger,
			fx.Provide(func() context.Context { return ctx }),
			fx.Provide(
				fx.Annotate(
					func() string { return cfgFile },
					fx.ResultTags(`name:"configFile"`),
				),
			),
			fx.Populate(&rt.App, &rt.Service, &rt.Recorder, &rt.Sweeper, &rt.Metrics),
		)

		startCtx, cancelStart := context.WithTimeout(ctx, 10*time.Second)
		defer cancelStart()
		if err := fxApp.Start(startCtx); err != nil {
			logging.Error(ctx, "bootstrap application failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "start fx application")
		}

		defer func() {
			stopCtx, cancelStop := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancelStop()
			if err := fxApp.Stop(stopCtx); err != nil {
				logging.Error(ctx, "fx application stop failed", slog.Any("err", errs.Loggable(err)))
			}
		}()

		if err := run(cmd, rt); err != nil {
			return errs.Wrap(err, "run command")
		}
		return nil
	}
}
