package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"workshop/internal/bootstrap"
	"workshop/internal/bootstrap/logging"
	"workshop/internal/errs"
	"workshop/internal/ports"
	"workshop/internal/usecase/backoffice"
)

var callbackCmd = &cobra.Command{
	Use:   "callback",
	Short: "Manage customer callback requests",
}

var callbackCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Request a callback",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *backoffice.Service) error {
		businessID := uintFlag(cmd, "business")
		ctx := logging.WithBusiness(logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath())), businessID)

		name, _ := cmd.Flags().GetString("name")
		phone, _ := cmd.Flags().GetString("phone")
		reason, _ := cmd.Flags().GetString("reason")
		notes, _ := cmd.Flags().GetString("notes")

		created, err := svc.CreateCallback(ctx, backoffice.CreateCallbackInput{
			BusinessID:   businessID,
			CustomerID:   optionalUintFlag(cmd, "customer"),
			CustomerName: name,
			Phone:        phone,
			Reason:       reason,
			Notes:        notes,
			CreatedBy:    uintFlag(cmd, "user"),
		})
		if err != nil {
			logging.Error(ctx, "create callback failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "create callback")
		}
		return printCallback(cmd, "created callback", created)
	}),
}

var callbackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List callbacks, optionally filtered by status",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *backoffice.Service) error {
		statuses, _ := cmd.Flags().GetStringSlice("status")
		rows, err := svc.ListCallbacks(cmd.Context(), uintFlag(cmd, "business"), statuses...)
		if err != nil {
			return errs.Wrap(err, "list callbacks")
		}
		for _, row := range rows {
			if err := printCallback(cmd, "callback", row); err != nil {
				return err
			}
		}
		return nil
	}),
}

var callbackCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Mark a pending callback as done",
	RunE:  callbackAction("completed", (*backoffice.Service).CompleteCallback),
}

var callbackDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Soft delete a pending callback; it can be restored until purged",
	RunE:  callbackAction("deleted", (*backoffice.Service).SoftDeleteCallback),
}

var callbackRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore a soft-deleted callback",
	RunE:  callbackAction("restored", (*backoffice.Service).RestoreCallback),
}

var callbackPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Hard delete callbacks soft-deleted longer ago than the purge window",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *backoffice.Service) error {
		businessID := uintFlag(cmd, "business")
		ctx := logging.WithBusiness(logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath())), businessID)

		removed, err := svc.PurgeExpiredCallbacks(ctx, businessID)
		if err != nil {
			logging.Error(ctx, "purge callbacks failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "purge callbacks")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "purged %d callbacks older than %s\n", removed, app.Config.Callbacks.PurgeAfter); err != nil {
			return errs.Wrap(err, "write callback purge output")
		}
		return nil
	}),
}

var callbackHardDeleteCmd = &cobra.Command{
	Use:   "hard-delete",
	Short: "Permanently delete one callback regardless of status",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *backoffice.Service) error {
		businessID := uintFlag(cmd, "business")
		ctx := logging.WithBusiness(logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath())), businessID)
		id := uintFlag(cmd, "id")

		deleted, err := svc.HardDeleteCallback(ctx, businessID, id, uintFlag(cmd, "user"))
		if err != nil {
			logging.Error(ctx, "hard delete callback failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "hard delete callback")
		}

		message := fmt.Sprintf("callback %d permanently deleted\n", id)
		if !deleted {
			message = fmt.Sprintf("callback %d not found\n", id)
		}
		if _, err := fmt.Fprint(cmd.OutOrStdout(), message); err != nil {
			return errs.Wrap(err, "write callback hard-delete output")
		}
		return nil
	}),
}

func callbackAction(
	label string,
	action func(*backoffice.Service, context.Context, backoffice.CallbackActionInput) (ports.CallbackRequest, error),
) func(cmd *cobra.Command, args []string) error {
	return withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *backoffice.Service) error {
		businessID := uintFlag(cmd, "business")
		ctx := logging.WithBusiness(logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath())), businessID)
		notes, _ := cmd.Flags().GetString("notes")

		updated, err := action(svc, ctx, backoffice.CallbackActionInput{
			BusinessID: businessID,
			CallbackID: uintFlag(cmd, "id"),
			UserID:     uintFlag(cmd, "user"),
			Notes:      notes,
		})
		if err != nil {
			logging.Error(ctx, "callback action failed", slog.String("action", label), slog.Any("err", errs.Loggable(err)))
			return errs.Wrapf(err, "callback %s", label)
		}
		return printCallback(cmd, "callback "+label, updated)
	})
}

func printCallback(cmd *cobra.Command, prefix string, row ports.CallbackRequest) error {
	if _, err := fmt.Fprintf(
		cmd.OutOrStdout(),
		"%s: id=%d %s phone=%s status=%s deleted_at=%s\n",
		prefix,
		row.ID,
		row.CustomerName,
		row.Phone,
		row.Status,
		formatTime(row.DeletedAt),
	); err != nil {
		return errs.Wrap(err, "write callback output")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(callbackCmd)
	callbackCmd.AddCommand(
		callbackCreateCmd,
		callbackListCmd,
		callbackCompleteCmd,
		callbackDeleteCmd,
		callbackRestoreCmd,
		callbackPurgeCmd,
		callbackHardDeleteCmd,
	)

	for _, command := range []*cobra.Command{
		callbackCreateCmd, callbackListCmd, callbackCompleteCmd, callbackDeleteCmd,
		callbackRestoreCmd, callbackPurgeCmd, callbackHardDeleteCmd,
	} {
		addBusinessFlag(command)
	}
	for _, command := range []*cobra.Command{callbackCreateCmd, callbackCompleteCmd, callbackDeleteCmd, callbackRestoreCmd, callbackHardDeleteCmd} {
		command.Flags().Uint64("user", 0, "Acting user id")
	}
	for _, command := range []*cobra.Command{callbackCreateCmd, callbackCompleteCmd, callbackDeleteCmd, callbackRestoreCmd} {
		command.Flags().String("notes", "", "Notes")
	}
	for _, command := range []*cobra.Command{callbackCompleteCmd, callbackDeleteCmd, callbackRestoreCmd, callbackHardDeleteCmd} {
		addIDFlag(command, "id", "Callback row id")
	}

	callbackCreateCmd.Flags().String("name", "", "Customer name")
	callbackCreateCmd.Flags().String("phone", "", "Phone number")
	callbackCreateCmd.Flags().String("reason", "", "Reason for the callback")
	callbackCreateCmd.Flags().Uint64("customer", 0, "Customer id")
	_ = callbackCreateCmd.MarkFlagRequired("name")

	callbackListCmd.Flags().StringSlice("status", nil, "Filter by status: pending, completed, deleted")
}
