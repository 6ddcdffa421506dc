package cmd

import (
	"github.com/spf13/cobra"

	"github.com/varepato/pantrypal/internal/output"
	"github.com/varepato/pantrypal/pkg/monitor"
)

var monitorCmd = &cobra.Command{
	Use:     "monitor",
	Short:   "Interactive terminal UI",
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, database, cfg, err := openStore(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		shop, shopDB, err := openShopping(ctx)
		if err != nil {
			store.Wait()
			output.Error("%v", err)
			return err
		}
		defer shopDB.Close()

		err = monitor.Run(store, shop, cfg.SoonWindowDays)

		store.Wait()
		shop.Wait()
		if err != nil {
			output.Error("monitor: %v", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}
