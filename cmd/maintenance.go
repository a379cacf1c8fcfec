package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"workshop/internal/bootstrap/logging"
	"workshop/internal/errs"
)

var maintenanceCmd = &cobra.Command{
	Use:   "maintenance",
	Short: "Purge expired callbacks and trim the activity feed",
}

var maintenanceRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the maintenance sweeper",
	Long:  "Sweeps every tenant on maintenance.interval until interrupted. With --once a single sweep runs and the command exits.",
	RunE: withRuntime(func(cmd *cobra.Command, rt appRuntime) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		once, _ := cmd.Flags().GetBool("once")
		if once {
			result, err := rt.Sweeper.RunOnce(ctx)
			if err != nil {
				logging.Error(ctx, "maintenance sweep failed", slog.Any("err", errs.Loggable(err)))
				return errs.Wrap(err, "maintenance sweep")
			}
			if _, err := fmt.Fprintf(
				cmd.OutOrStdout(),
				"swept %d businesses: purged %d callbacks, pruned %d activities, %d failures\n",
				result.Businesses,
				result.CallbacksPurged,
				result.ActivitiesPruned,
				result.Failures,
			); err != nil {
				return errs.Wrap(err, "write maintenance output")
			}
			return nil
		}

		runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		addr := strings.TrimSpace(rt.App.Config.Metrics.Addr)
		if addr != "" {
			server := &http.Server{
				Addr:              addr,
				Handler:           opsRouter(rt),
				ReadHeaderTimeout: 5 * time.Second,
			}
			go func() {
				logging.Info(ctx, "ops endpoint listening", slog.String("addr", addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logging.Error(ctx, "ops endpoint failed", slog.Any("err", errs.Loggable(err)))
				}
			}()
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = server.Shutdown(shutdownCtx)
			}()
		}

		logging.Info(ctx, "maintenance sweeper started", slog.Duration("interval", rt.App.Config.Maintenance.Interval))
		if err := rt.Sweeper.Run(runCtx); err != nil {
			return errs.Wrap(err, "run maintenance sweeper")
		}
		logging.Info(ctx, "maintenance sweeper stopped")
		return nil
	}),
}

func opsRouter(rt appRuntime) http.Handler {
	return newOpsRouter(opsDeps{
		Metrics: rt.Metrics.Handler(),
		Ping: func(ctx context.Context) error {
			sqlDB, err := rt.App.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		Counters: rt.Service,
	})
}

func init() {
	rootCmd.AddCommand(maintenanceCmd)
	maintenanceCmd.AddCommand(maintenanceRunCmd)

	maintenanceRunCmd.Flags().Bool("once", false, "Run a single sweep and exit")
}
