package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/varepato/pantrypal/internal/expiry"
	"github.com/varepato/pantrypal/internal/output"
)

var expiringCmd = &cobra.Command{
	Use:     "expiring",
	Short:   "Show items expiring soon",
	GroupID: "expiry",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, database, cfg, err := openStore(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()
		defer store.Wait()

		days, _ := cmd.Flags().GetInt("days")
		if days <= 0 {
			days = cfg.SoonWindowDays
		}

		rows := expiry.BuildRows(expiry.KindExpiringSoon, days, store.State().Snapshot(), time.Now())
		if len(rows) == 0 {
			output.Success("Nothing expiring within %dd", days)
			return nil
		}

		output.Title("Expiring within %dd", days)
		printRows(rows)
		return nil
	},
}

// printRows renders classifier rows with place context and a day label.
func printRows(rows []expiry.Row) {
	for _, r := range rows {
		output.Info("  %-24s x%-3d %-14s %s", r.Name, r.Quantity, r.PlaceName, output.ExpiryLabel(r.DaysUntil, r.HasDays))
	}
}

func init() {
	expiringCmd.Flags().Int("days", 0, "soon window in days (default from config)")
	rootCmd.AddCommand(expiringCmd)
}
