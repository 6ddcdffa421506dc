package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/varepato/pantrypal/internal/db"
	"github.com/varepato/pantrypal/internal/output"
)

var remindCmd = &cobra.Command{
	Use:     "remind",
	Short:   "Deliver due reminders",
	Long:    `Prints every reminder whose fire time has passed and clears it. With --list, shows all pending reminders instead.`,
	GroupID: "expiry",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		database, err := db.Open(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		listAll, _ := cmd.Flags().GetBool("list")
		if listAll {
			pending, err := database.ListReminders(ctx)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if len(pending) == 0 {
				output.Subtle("no pending reminders")
				return nil
			}
			output.Title("Pending reminders")
			for _, r := range pending {
				output.Info("  %s  %s", r.FireAt.Format("2006-01-02 15:04"), r.Title)
			}
			return nil
		}

		due, err := database.DueReminders(ctx, time.Now())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if len(due) == 0 {
			output.Subtle("nothing due")
			return nil
		}

		ids := make([]string, len(due))
		for i, r := range due {
			ids[i] = r.ID
			output.Title("%s", r.Title)
			output.Info("  %s", r.Body)
		}

		// Delivered reminders don't repeat.
		if err := database.DeleteReminders(ctx, ids); err != nil {
			output.Error("%v", err)
			return err
		}
		return nil
	},
}

func init() {
	remindCmd.Flags().Bool("list", false, "list pending reminders without delivering")
	rootCmd.AddCommand(remindCmd)
}
