package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/varepato/pantrypal/internal/expiry"
	"github.com/varepato/pantrypal/internal/output"
)

var expiredCmd = &cobra.Command{
	Use:     "expired",
	Short:   "Show expired items",
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

		rows := expiry.BuildRows(expiry.KindExpired, cfg.SoonWindowDays, store.State().Snapshot(), time.Now())
		if len(rows) == 0 {
			output.Success("Nothing expired")
			return nil
		}

		output.Title("Expired")
		printRows(rows)
		output.Subtle("run 'pantry cleanup' to remove these")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(expiredCmd)
}
