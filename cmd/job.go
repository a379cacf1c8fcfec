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

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Manage workshop jobs",
}

var jobCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a job, allocating a job identifier",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *backoffice.Service) error {
		businessID := uintFlag(cmd, "business")
		ctx := logging.WithBusiness(logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath())), businessID)

		amount, err := amountFlag(cmd, "amount")
		if err != nil {
			return err
		}
		jobID, _ := cmd.Flags().GetString("job-id")
		description, _ := cmd.Flags().GetString("description")
		status, _ := cmd.Flags().GetString("status")

		created, err := svc.CreateJob(ctx, backoffice.CreateJobInput{
			BusinessID:    businessID,
			JobID:         jobID,
			CustomerID:    optionalUintFlag(cmd, "customer"),
			EquipmentID:   optionalUintFlag(cmd, "equipment"),
			Description:   description,
			Status:        status,
			PaymentAmount: amount,
			CreatedBy:     uintFlag(cmd, "user"),
		})
		if err != nil {
			logging.Error(ctx, "create job failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "create job")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "created job: %s id=%d status=%s\n", created.JobID, created.ID, created.Status); err != nil {
			return errs.Wrap(err, "write job create output")
		}
		return nil
	}),
}

var jobListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the jobs of a business",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *backoffice.Service) error {
		jobs, err := svc.ListJobs(cmd.Context(), uintFlag(cmd, "business"))
		if err != nil {
			return errs.Wrap(err, "list jobs")
		}
		for _, item := range jobs {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\n", item.ID, item.JobID, item.Status, item.PaymentAmount.StringFixed(2), item.Description); err != nil {
				return errs.Wrap(err, "write job list output")
			}
		}
		return nil
	}),
}

var jobDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a job with its time entries, payments and activity",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *backoffice.Service) error {
		businessID := uintFlag(cmd, "business")
		ctx := logging.WithBusiness(logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath())), businessID)
		id := uintFlag(cmd, "id")

		deleted, err := svc.DeleteJob(ctx, businessID, id, uintFlag(cmd, "user"))
		if err != nil {
			logging.Error(ctx, "delete job failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "delete job")
		}

		message := fmt.Sprintf("deleted job: %d\n", id)
		if !deleted {
			message = fmt.Sprintf("job %d not found\n", id)
		}
		if _, err := fmt.Fprint(cmd.OutOrStdout(), message); err != nil {
			return errs.Wrap(err, "write job delete output")
		}
		return nil
	}),
}

var jobTimeCmd = &cobra.Command{
	Use:   "time",
	Short: "Record labour hours against a job",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *backoffice.Service) error {
		businessID := uintFlag(cmd, "business")
		ctx := logging.WithBusiness(logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath())), businessID)

		hours, err := amountFlag(cmd, "hours")
		if err != nil {
			return err
		}
		notes, _ := cmd.Flags().GetString("notes")

		entry, err := svc.RecordTimeEntry(ctx, backoffice.RecordTimeEntryInput{
			BusinessID: businessID,
			JobID:      uintFlag(cmd, "id"),
			UserID:     uintFlag(cmd, "user"),
			Hours:      hours,
			Notes:      notes,
		})
		if err != nil {
			logging.Error(ctx, "record time entry failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "record time entry")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "recorded %s hours on job %d\n", entry.Hours.String(), entry.JobID); err != nil {
			return errs.Wrap(err, "write job time output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.AddCommand(jobCreateCmd, jobListCmd, jobDeleteCmd, jobTimeCmd)

	for _, command := range []*cobra.Command{jobCreateCmd, jobListCmd, jobDeleteCmd, jobTimeCmd} {
		addBusinessFlag(command)
	}
	for _, command := range []*cobra.Command{jobCreateCmd, jobDeleteCmd, jobTimeCmd} {
		command.Flags().Uint64("user", 0, "Acting user id")
	}

	jobCreateCmd.Flags().String("job-id", "", "Caller supplied job identifier (kept when free)")
	jobCreateCmd.Flags().String("description", "", "Job description")
	jobCreateCmd.Flags().String("status", "", "Initial status (default waiting_assessment)")
	jobCreateCmd.Flags().String("amount", "", "Payment amount in major units")
	jobCreateCmd.Flags().Uint64("customer", 0, "Customer id")
	jobCreateCmd.Flags().Uint64("equipment", 0, "Equipment id")

	addIDFlag(jobDeleteCmd, "id", "Job row id")

	addIDFlag(jobTimeCmd, "id", "Job row id")
	jobTimeCmd.Flags().String("hours", "", "Hours worked, e.g. 1.25")
	jobTimeCmd.Flags().String("notes", "", "Notes")
	_ = jobTimeCmd.MarkFlagRequired("hours")
}
