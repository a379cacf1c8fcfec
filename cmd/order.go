package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"workshop/internal/bootstrap"
	"workshop/internal/bootstrap/logging"
	"workshop/internal/errs"
	"workshop/internal/usecase/backoffice"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Manage supplier orders and their status history",
}

var orderCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an order with its line items",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *backoffice.Service) error {
		businessID := uintFlag(cmd, "business")
		ctx := logging.WithBusiness(logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath())), businessID)

		rawItems, _ := cmd.Flags().GetStringArray("item")
		items := make([]backoffice.OrderItemInput, 0, len(rawItems))
		for _, raw := range rawItems {
			item, err := parseOrderItem(raw)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		deposit, err := amountFlag(cmd, "deposit")
		if err != nil {
			return err
		}
		expected, err := optionalDateFlag(cmd, "expected")
		if err != nil {
			return err
		}
		number, _ := cmd.Flags().GetString("number")
		supplier, _ := cmd.Flags().GetString("supplier")
		notes, _ := cmd.Flags().GetString("notes")

		created, err := svc.CreateOrder(ctx, backoffice.CreateOrderInput{
			BusinessID:           businessID,
			OrderNumber:          number,
			CustomerID:           optionalUintFlag(cmd, "customer"),
			Supplier:             supplier,
			Items:                items,
			Deposit:              deposit,
			Notes:                notes,
			ExpectedDeliveryDate: expected,
			CreatedBy:            uintFlag(cmd, "user"),
		})
		if err != nil {
			logging.Error(ctx, "create order failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "create order")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "created order: %s id=%d total=%s\n", created.OrderNumber, created.ID, created.TotalAmount.StringFixed(2)); err != nil {
			return errs.Wrap(err, "write order create output")
		}
		return nil
	}),
}

var orderStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Move an order to a new status",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *backoffice.Service) error {
		businessID := uintFlag(cmd, "business")
		ctx := logging.WithBusiness(logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath())), businessID)

		status, _ := cmd.Flags().GetString("status")
		reason, _ := cmd.Flags().GetString("reason")
		notes, _ := cmd.Flags().GetString("notes")

		updated, err := svc.TransitionOrderStatus(ctx, backoffice.TransitionOrderInput{
			BusinessID: businessID,
			OrderID:    uintFlag(cmd, "id"),
			Status:     status,
			ChangedBy:  uintFlag(cmd, "user"),
			Reason:     reason,
			Notes:      notes,
		})
		if err != nil {
			logging.Error(ctx, "transition order status failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "transition order status")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "order %s is now %s\n", updated.OrderNumber, updated.Status); err != nil {
			return errs.Wrap(err, "write order status output")
		}
		return nil
	}),
}

var orderHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the status history of an order, oldest first",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *backoffice.Service) error {
		rows, err := svc.ListOrderHistory(cmd.Context(), uintFlag(cmd, "business"), uintFlag(cmd, "id"))
		if err != nil {
			return errs.Wrap(err, "list order history")
		}
		for _, row := range rows {
			previous := "-"
			if row.PreviousStatus != nil {
				previous = *row.PreviousStatus
			}
			changedAt := row.ChangedAt
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s -> %s\tby=%d\t%s\n", formatTime(&changedAt), previous, row.NewStatus, row.ChangedBy, row.ChangeReason); err != nil {
				return errs.Wrap(err, "write order history output")
			}
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(orderCmd)
	orderCmd.AddCommand(orderCreateCmd, orderStatusCmd, orderHistoryCmd)

	for _, command := range []*cobra.Command{orderCreateCmd, orderStatusCmd, orderHistoryCmd} {
		addBusinessFlag(command)
	}
	for _, command := range []*cobra.Command{orderCreateCmd, orderStatusCmd} {
		command.Flags().Uint64("user", 0, "Acting user id")
		command.Flags().String("notes", "", "Notes")
	}

	orderCreateCmd.Flags().String("number", "", "Caller supplied order number (kept when free)")
	orderCreateCmd.Flags().String("supplier", "", "Supplier name")
	orderCreateCmd.Flags().StringArray("item", nil, "Line item as description:quantity:unit_price (repeatable)")
	orderCreateCmd.Flags().String("deposit", "", "Deposit in major units")
	orderCreateCmd.Flags().String("expected", "", "Expected delivery date (YYYY-MM-DD)")
	orderCreateCmd.Flags().Uint64("customer", 0, "Customer id")
	_ = orderCreateCmd.MarkFlagRequired("item")

	addIDFlag(orderStatusCmd, "id", "Order row id")
	orderStatusCmd.Flags().String("status", "", "pending, ordered, in_transit, arrived, completed or cancelled")
	orderStatusCmd.Flags().String("reason", "", "Reason for the change")
	_ = orderStatusCmd.MarkFlagRequired("status")

	addIDFlag(orderHistoryCmd, "id", "Order row id")
}
