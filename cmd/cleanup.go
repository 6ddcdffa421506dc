package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/varepato/pantrypal/internal/engine"
	"github.com/varepato/pantrypal/internal/models"
	"github.com/varepato/pantrypal/internal/output"
)

var cleanupCmd = &cobra.Command{
	Use:     "cleanup",
	Short:   "Remove every expired item",
	Long:    `Removes all expired items across places and cancels their reminders. With --shop, the removed items are merged into the shopping list first.`,
	GroupID: "expiry",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, database, _, err := openStore(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		// Walk the same workflow the UI does: open the expired screen,
		// then run its cleanup-all action against that frame.
		store.Dispatch(ctx, engine.BannerTapped{Kind: engine.BannerExpired})

		st := store.State()
		frame, ok := topExpirationFrame(st)
		if !ok {
			store.Wait()
			return fmt.Errorf("expired view did not open")
		}

		if len(frame.Rows) == 0 {
			store.Dispatch(ctx, engine.ExpirationMsg{FrameID: frame.ID, Action: engine.CloseTapped{}})
			store.Wait()
			output.Success("Nothing expired")
			return nil
		}

		toShop, _ := cmd.Flags().GetBool("shop")
		if toShop {
			shop, shopDB, err := openShopping(ctx)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			for _, row := range frame.Rows {
				itemID := row.ItemID
				placeID := row.PlaceID
				shop.Dispatch(ctx, engine.ShopMergeOrCreate{
					Name:     row.Name,
					Qty:      1,
					Source:   models.SourceExpiredCleanup,
					LinkedID: &itemID,
					PlaceID:  &placeID,
				})
			}
			shop.Wait()
			shopDB.Close()
		}

		store.Dispatch(ctx, engine.ExpirationMsg{FrameID: frame.ID, Action: engine.CleanupAllTapped{}})
		store.Wait()

		output.Success("Removed %d expired item(s)", len(frame.Rows))
		if toShop {
			output.Info("Merged them into the shopping list")
		}
		return nil
	},
}

func topExpirationFrame(st engine.PlacesState) (engine.ExpirationFrame, bool) {
	for i := len(st.Path) - 1; i >= 0; i-- {
		if f, ok := st.Path[i].(engine.ExpirationFrame); ok {
			return f, true
		}
	}
	return engine.ExpirationFrame{}, false
}

func init() {
	cleanupCmd.Flags().Bool("shop", false, "add removed items to the shopping list")
	rootCmd.AddCommand(cleanupCmd)
}
