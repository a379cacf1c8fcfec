package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"workshop/internal/bootstrap"
	"workshop/internal/bootstrap/logging"
	"workshop/internal/errs"
	"workshop/internal/usecase/backoffice"
	"workshop/internal/usecase/teardownconsole"
)

var tenantCmd = &cobra.Command{
	Use:   "tenant",
	Short: "Create, inspect and permanently delete businesses",
}

var tenantCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a business",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *backoffice.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		name, _ := cmd.Flags().GetString("name")
		business, err := svc.CreateBusiness(ctx, name)
		if err != nil {
			logging.Error(ctx, "create business failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "create business")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "created business: %d %s\n", business.BusinessID, business.Name); err != nil {
			return errs.Wrap(err, "write tenant create output")
		}
		return nil
	}),
}

var tenantPlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the teardown plan for the current schema version",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *backoffice.Service) error {
		plan, err := svc.TeardownPlan(cmd.Context())
		if err != nil {
			return errs.Wrap(err, "load teardown plan")
		}
		for i, step := range plan {
			line := fmt.Sprintf("%2d. %s", i+1, step.Table)
			if step.ViaParent() {
				line += fmt.Sprintf(" via %s.%s", step.Parent, step.ForeignKey)
			}
			if step.Optional {
				line += " (optional)"
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
				return errs.Wrap(err, "write tenant plan output")
			}
		}
		return nil
	}),
}

var tenantDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Permanently delete a business and all of its data",
	Long:  "Without --yes an interactive console asks the operator to type the business id before anything is deleted.",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *backoffice.Service) error {
		businessID := uintFlag(cmd, "business")
		ctx := logging.WithBusiness(
			logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath())),
			businessID,
		)

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			program := tea.NewProgram(teardownconsole.NewTeardownModel(ctx, svc, businessID))
			final, err := program.Run()
			if err != nil {
				return errs.Wrap(err, "run teardown console")
			}
			outcome := teardownconsole.OutcomeOf(final)
			if outcome.Err != nil {
				return errs.Wrap(outcome.Err, "permanently delete tenant")
			}
			if !outcome.Confirmed {
				return errors.New("teardown aborted")
			}
			return reportTeardown(cmd, businessID, outcome.Deleted)
		}

		deleted, err := svc.PermanentlyDeleteTenant(ctx, businessID)
		if err != nil {
			logging.Error(ctx, "permanently delete tenant failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "permanently delete tenant")
		}
		return reportTeardown(cmd, businessID, deleted)
	}),
}

func reportTeardown(cmd *cobra.Command, businessID uint64, deleted bool) error {
	message := fmt.Sprintf("business %d deleted\n", businessID)
	if !deleted {
		message = fmt.Sprintf("business %d not found, nothing deleted\n", businessID)
	}
	if _, err := fmt.Fprint(cmd.OutOrStdout(), message); err != nil {
		return errs.Wrap(err, "write tenant delete output")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(tenantCmd)
	tenantCmd.AddCommand(tenantCreateCmd, tenantPlanCmd, tenantDeleteCmd)

	tenantCreateCmd.Flags().String("name", "", "Business name")
	_ = tenantCreateCmd.MarkFlagRequired("name")

	addBusinessFlag(tenantDeleteCmd)
	tenantDeleteCmd.Flags().Bool("yes", false, "Skip the interactive confirmation")
}
