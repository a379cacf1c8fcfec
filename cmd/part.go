package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"workshop/internal/bootstrap"
	"workshop/internal/bootstrap/logging"
	"workshop/internal/errs"
	"workshop/internal/usecase/backoffice"
)

var partCmd = &cobra.Command{
	Use:   "part",
	Short: "Track parts ordered for customers",
}

var partCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Record a part on order",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *backoffice.Service) error {
		businessID := uintFlag(cmd, "business")
		ctx := logging.WithBusiness(logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath())), businessID)

		estimate, err := optionalAmountFlag(cmd, "estimate")
		if err != nil {
			return err
		}
		expected, err := optionalDateFlag(cmd, "expected")
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")
		supplier, _ := cmd.Flags().GetString("supplier")
		quantity, _ := cmd.Flags().GetInt64("quantity")
		notes, _ := cmd.Flags().GetString("notes")

		created, err := svc.CreatePart(ctx, backoffice.CreatePartInput{
			BusinessID:           businessID,
			JobID:                optionalUintFlag(cmd, "job"),
			CustomerID:           optionalUintFlag(cmd, "customer"),
			PartName:             name,
			Supplier:             supplier,
			Quantity:             quantity,
			EstimatedCost:        estimate,
			ExpectedDeliveryDate: expected,
			Notes:                notes,
			CreatedBy:            uintFlag(cmd, "user"),
		})
		if err != nil {
			logging.Error(ctx, "create part failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "create part")
		}
		return printPart(cmd, "created part", created)
	}),
}

var partArrivedCmd = &cobra.Command{
	Use:   "arrived",
	Short: "Mark a part as delivered",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *backoffice.Service) error {
		businessID := uintFlag(cmd, "business")
		ctx := logging.WithBusiness(logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath())), businessID)

		cost, err := optionalAmountFlag(cmd, "cost")
		if err != nil {
			return err
		}
		delivered, err := optionalDateFlag(cmd, "delivered")
		if err != nil {
			return err
		}
		notes, _ := cmd.Flags().GetString("notes")

		updated, err := svc.MarkPartArrived(ctx, backoffice.MarkPartArrivedInput{
			BusinessID:   businessID,
			PartID:       uintFlag(cmd, "id"),
			UpdatedBy:    uintFlag(cmd, "user"),
			DeliveryDate: delivered,
			Cost:         cost,
			Notes:        notes,
		})
		if err != nil {
			logging.Error(ctx, "mark part arrived failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "mark part arrived")
		}
		return printPart(cmd, "part arrived", updated)
	}),
}

var partCollectedCmd = &cobra.Command{
	Use:   "collected",
	Short: "Mark a part as collected by the customer",
	RunE:  partAction("collected", (*backoffice.Service).MarkPartCollected),
}

var partNotifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Record that the customer was told the part is ready",
	RunE:  partAction("customer notified", (*backoffice.Service).NotifyPartCustomer),
}

var partCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel a part on order",
	RunE:  partAction("cancelled", (*backoffice.Service).CancelPart),
}

func partAction(
	label string,
	action func(*backoffice.Service, context.Context, backoffice.PartActionInput) (backoffice.PartView, error),
) func(cmd *cobra.Command, args []string) error {
	return withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *backoffice.Service) error {
		businessID := uintFlag(cmd, "business")
		ctx := logging.WithBusiness(logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath())), businessID)
		notes, _ := cmd.Flags().GetString("notes")

		updated, err := action(svc, ctx, backoffice.PartActionInput{
			BusinessID: businessID,
			PartID:     uintFlag(cmd, "id"),
			UpdatedBy:  uintFlag(cmd, "user"),
			Notes:      notes,
		})
		if err != nil {
			logging.Error(ctx, "part action failed", slog.String("action", label), slog.Any("err", errs.Loggable(err)))
			return errs.Wrapf(err, "part %s", label)
		}
		return printPart(cmd, "part "+label, updated)
	})
}

func printPart(cmd *cobra.Command, prefix string, view backoffice.PartView) error {
	if _, err := fmt.Fprintf(
		cmd.OutOrStdout(),
		"%s: id=%d %s status=%s arrived=%t notified=%t estimate=%s actual=%s delivered=%s\n",
		prefix,
		view.ID,
		view.PartName,
		view.Status,
		view.IsArrived,
		view.IsCustomerNotified,
		formatAmount(view.EstimatedCost),
		formatAmount(view.ActualCost),
		formatTime(view.DeliveryDate),
	); err != nil {
		return errs.Wrap(err, "write part output")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(partCmd)
	partCmd.AddCommand(partCreateCmd, partArrivedCmd, partCollectedCmd, partNotifyCmd, partCancelCmd)

	for _, command := range []*cobra.Command{partCreateCmd, partArrivedCmd, partCollectedCmd, partNotifyCmd, partCancelCmd} {
		addBusinessFlag(command)
		command.Flags().Uint64("user", 0, "Acting user id")
		command.Flags().String("notes", "", "Notes")
	}
	for _, command := range []*cobra.Command{partArrivedCmd, partCollectedCmd, partNotifyCmd, partCancelCmd} {
		addIDFlag(command, "id", "Part row id")
	}

	partCreateCmd.Flags().String("name", "", "Part name")
	partCreateCmd.Flags().String("supplier", "", "Supplier")
	partCreateCmd.Flags().Int64("quantity", 1, "Quantity")
	partCreateCmd.Flags().String("estimate", "", "Estimated cost in major units")
	partCreateCmd.Flags().String("expected", "", "Expected delivery date (YYYY-MM-DD)")
	partCreateCmd.Flags().Uint64("job", 0, "Job row id")
	partCreateCmd.Flags().Uint64("customer", 0, "Customer id")
	_ = partCreateCmd.MarkFlagRequired("name")

	partArrivedCmd.Flags().String("cost", "", "Actual cost in major units")
	partArrivedCmd.Flags().String("delivered", "", "Delivery date (YYYY-MM-DD), default now")
}
