package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"workshop/internal/errs"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Read the per-business activity feed",
}

var activityRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the newest activity rows of a business",
	RunE: withRuntime(func(cmd *cobra.Command, rt appRuntime) error {
		limit, _ := cmd.Flags().GetInt("limit")
		rows, err := rt.Recorder.Recent(cmd.Context(), uintFlag(cmd, "business"), limit)
		if err != nil {
			return errs.Wrap(err, "list activity")
		}
		for _, row := range rows {
			createdAt := row.CreatedAt
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s:%s\t%s\n", formatTime(&createdAt), row.ActivityType, row.EntityType, row.EntityID, row.Description); err != nil {
				return errs.Wrap(err, "write activity output")
			}
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(activityCmd)
	activityCmd.AddCommand(activityRecentCmd)

	addBusinessFlag(activityRecentCmd)
	activityRecentCmd.Flags().Int("limit", 20, "Maximum rows")
}
