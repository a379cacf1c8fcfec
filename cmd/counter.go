package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"workshop/internal/bootstrap"
	"workshop/internal/bootstrap/logging"
	"workshop/internal/domain/identifier"
	"workshop/internal/errs"
	"workshop/internal/usecase/backoffice"
)

var counterCmd = &cobra.Command{
	Use:   "counter",
	Short: "Issue and inspect per-tenant identifiers",
}

var counterNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Issue the next identifier of a kind",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *backoffice.Service) error {
		businessID := uintFlag(cmd, "business")
		ctx := logging.WithBusiness(logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath())), businessID)

		kind, err := kindFlag(cmd)
		if err != nil {
			return err
		}
		id, err := svc.NextIdentifier(ctx, businessID, kind)
		if err != nil {
			logging.Error(ctx, "issue identifier failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "issue identifier")
		}

		if _, err := fmt.Fprintln(cmd.OutOrStdout(), id); err != nil {
			return errs.Wrap(err, "write counter next output")
		}
		return nil
	}),
}

var counterCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the last issued sequence number of a kind",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *backoffice.Service) error {
		businessID := uintFlag(cmd, "business")

		kind, err := kindFlag(cmd)
		if err != nil {
			return err
		}
		value, found, err := svc.CurrentCounter(cmd.Context(), businessID, kind)
		if err != nil {
			return errs.Wrap(err, "read counter")
		}

		out := fmt.Sprintf("%s counter for business %d: %d\n", kind, businessID, value)
		if !found {
			out = fmt.Sprintf("%s counter for business %d: not started (seed %d)\n", kind, businessID, identifier.Seed(kind))
		}
		if _, err := fmt.Fprint(cmd.OutOrStdout(), out); err != nil {
			return errs.Wrap(err, "write counter current output")
		}
		return nil
	}),
}

func kindFlag(cmd *cobra.Command) (identifier.Kind, error) {
	raw, _ := cmd.Flags().GetString("kind")
	return identifier.ParseKind(raw)
}

func init() {
	rootCmd.AddCommand(counterCmd)
	counterCmd.AddCommand(counterNextCmd, counterCurrentCmd)

	for _, command := range []*cobra.Command{counterNextCmd, counterCurrentCmd} {
		addBusinessFlag(command)
		command.Flags().String("kind", string(identifier.KindJob), "Identifier kind: job or order")
	}
}
