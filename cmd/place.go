package cmd

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/varepato/pantrypal/internal/engine"
	"github.com/varepato/pantrypal/internal/output"
)

var placeCmd = &cobra.Command{
	Use:     "place",
	Short:   "Manage storage places",
	GroupID: "core",
}

var placeAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, database, _, err := openStore(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		icon, _ := cmd.Flags().GetString("icon")
		color, _ := cmd.Flags().GetString("color")

		before := len(store.State().Places)
		store.Dispatch(ctx, engine.PlaceFormChanged{Name: args[0], Icon: icon, Color: color})
		store.Dispatch(ctx, engine.ConfirmAddPlace{})
		store.Wait()

		if len(store.State().Places) == before {
			output.Warning("nothing added (empty name?)")
			return nil
		}
		output.Success("Added place %s", args[0])
		return nil
	},
}

var placeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List places with item and expiration counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, database, cfg, err := openStore(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()
		defer store.Wait()

		st := store.State()
		if len(st.Places) == 0 {
			output.Subtle("no places yet (pantry place add <name>)")
			return nil
		}

		now := time.Now()
		for _, p := range st.Places {
			output.Title("%s", p.Name)
			output.Info("  %d items", len(p.Items))
			if n := p.ExpiredCount(now); n > 0 {
				output.Warning("  %d expired", n)
			}
			if n := p.ExpiringSoonCount(now, cfg.SoonWindowDays); n > 0 {
				output.Info("  %d expiring within %dd", n, cfg.SoonWindowDays)
			}
		}
		return nil
	},
}

var placeDeleteCmd = &cobra.Command{
	Use:   "delete <name>...",
	Short: "Delete places (and their items)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, database, _, err := openStore(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		st := store.State()
		var ids []uuid.UUID
		for _, arg := range args {
			p, err := resolvePlace(st, arg)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			ids = append(ids, p.ID)
		}

		store.Dispatch(ctx, engine.DeletePlaces{PlaceIDs: ids})
		store.Wait()
		output.Success("Deleted %d place(s)", len(ids))
		return nil
	},
}

func init() {
	placeAddCmd.Flags().String("icon", "", "icon name")
	placeAddCmd.Flags().String("color", "", "hex color")

	placeCmd.AddCommand(placeAddCmd, placeListCmd, placeDeleteCmd)
	rootCmd.AddCommand(placeCmd)
}
