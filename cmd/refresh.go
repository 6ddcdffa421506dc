package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/varepato/pantrypal/internal/config"
	"github.com/varepato/pantrypal/internal/db"
	"github.com/varepato/pantrypal/internal/output"
	"github.com/varepato/pantrypal/internal/widget"
)

var refreshCmd = &cobra.Command{
	Use:     "refresh",
	Short:   "Recompute and publish the summary snapshot",
	Long:    `Rebuilds the snapshot straight from the store, bypassing the engine. The periodic-refresh path: safe to run from cron.`,
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		database, err := db.Open(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		cfg, _ := config.Load(getBaseDir())

		places, err := database.LoadPlaces(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		snap := widget.Build(places, cfg.SoonWindowDays, time.Now())
		if err := (widget.FileStore{Path: cfg.WidgetPath}).Publish(snap); err != nil {
			output.Error("publish snapshot: %v", err)
			return err
		}

		output.Success("Published: %d items, %d expiring, %d expired",
			snap.TotalItems, snap.ExpiringSoon, snap.Expired)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
