package cmd

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/varepato/pantrypal/internal/dateparse"
	"github.com/varepato/pantrypal/internal/engine"
	"github.com/varepato/pantrypal/internal/expiry"
	"github.com/varepato/pantrypal/internal/models"
	"github.com/varepato/pantrypal/internal/output"
)

var itemCmd = &cobra.Command{
	Use:     "item",
	Short:   "Manage food items inside a place",
	GroupID: "core",
}

var itemAddCmd = &cobra.Command{
	Use:   "add <place> <name>",
	Short: "Add a food item to a place",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, database, _, err := openStore(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		place, err := resolvePlace(store.State(), args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		qty, _ := cmd.Flags().GetInt("qty")
		notes, _ := cmd.Flags().GetString("notes")
		expires, _ := cmd.Flags().GetString("expires")

		var expiresAt *time.Time
		if expires != "" {
			t, err := dateparse.Parse(expires)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			expiresAt = &t
		}

		// Form edits only stick while the place screen is on the stack.
		store.Dispatch(ctx, engine.PushPlace{PlaceID: place.ID})
		store.Dispatch(ctx, engine.PlaceMsg{PlaceID: place.ID, Action: engine.AddItemRequested{}})
		store.Dispatch(ctx, engine.PlaceMsg{PlaceID: place.ID, Action: engine.ItemFormChanged{
			Name: args[1], Qty: qty, Notes: notes, Expiry: expiresAt,
		}})
		store.Dispatch(ctx, engine.PlaceMsg{PlaceID: place.ID, Action: engine.ConfirmAddItem{}})
		store.Dispatch(ctx, engine.PopFrame{})
		store.Wait()

		if expiresAt != nil {
			output.Success("Added %s to %s (expires %s)", args[1], place.Name, expiresAt.Format("2006-01-02"))
		} else {
			output.Success("Added %s to %s", args[1], place.Name)
		}
		return nil
	},
}

var itemListCmd = &cobra.Command{
	Use:   "list <place>",
	Short: "List a place's items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, database, _, err := openStore(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()
		defer store.Wait()

		place, err := resolvePlace(store.State(), args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		search, _ := cmd.Flags().GetString("search")
		place.SearchQuery = search

		items := place.VisibleItems()
		if len(items) == 0 {
			output.Subtle("no items")
			return nil
		}

		now := time.Now()
		output.Title("%s", place.Name)
		for _, it := range items {
			d, ok := expiry.DaysUntil(it.ExpirationDate, now)
			output.Info("  %-24s x%-3d %s", it.Name, it.Quantity, output.ExpiryLabel(d, ok))
			if it.Notes != "" {
				output.Subtle("    %s", it.Notes)
			}
		}
		return nil
	},
}

var itemQtyCmd = &cobra.Command{
	Use:   "qty <place> <item> <quantity>",
	Short: "Set an item's quantity",
	Long:  `Sets an item's quantity (clamped at zero). With --shop, hitting zero adds the item to the shopping list.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, database, _, err := openStore(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		place, err := resolvePlace(store.State(), args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		item, err := resolveItem(place, args[1])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			output.Error("invalid quantity: %s", args[2])
			return err
		}

		store.Dispatch(ctx, engine.PlaceMsg{PlaceID: place.ID, Action: engine.QuantityChanged{ItemID: item.ID, Qty: qty}})
		store.Wait()

		toShop, _ := cmd.Flags().GetBool("shop")
		if toShop && qty <= 0 {
			if err := addDepleted(cmd, item, place.ID); err != nil {
				return err
			}
		}

		output.Success("%s is now x%d", item.Name, max(qty, 0))
		return nil
	},
}

var itemExpiryCmd = &cobra.Command{
	Use:   "expiry <place> <item> <date|none>",
	Short: "Set or clear an item's expiration date",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, database, _, err := openStore(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		place, err := resolvePlace(store.State(), args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		item, err := resolveItem(place, args[1])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		var date *time.Time
		if args[2] != "none" {
			t, err := dateparse.Parse(args[2])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			date = &t
		}

		store.Dispatch(ctx, engine.PlaceMsg{PlaceID: place.ID, Action: engine.SetItemExpiry{ItemID: item.ID, Date: date}})
		store.Wait()

		if date == nil {
			output.Success("Cleared expiration for %s", item.Name)
		} else {
			output.Success("%s expires %s", item.Name, date.Format("2006-01-02"))
		}
		return nil
	},
}

var itemDeleteCmd = &cobra.Command{
	Use:   "delete <place> <item>...",
	Short: "Delete items from a place",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, database, _, err := openStore(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		place, err := resolvePlace(store.State(), args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		var ids []uuid.UUID
		for _, name := range args[1:] {
			item, err := resolveItem(place, name)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			ids = append(ids, item.ID)
		}

		store.Dispatch(ctx, engine.PlaceMsg{PlaceID: place.ID, Action: engine.DeleteItems{ItemIDs: ids}})
		store.Wait()
		output.Success("Deleted %d item(s) from %s", len(ids), place.Name)
		return nil
	},
}

// addDepleted merges a used-up item into the shopping list.
func addDepleted(cmd *cobra.Command, item models.FoodItem, placeID uuid.UUID) error {
	ctx := cmd.Context()
	shop, shopDB, err := openShopping(ctx)
	if err != nil {
		output.Error("%v", err)
		return err
	}
	defer shopDB.Close()

	itemID := item.ID
	pid := placeID
	shop.Dispatch(ctx, engine.ShopMergeOrCreate{
		Name:     item.Name,
		Qty:      1,
		Source:   models.SourceDepleted,
		LinkedID: &itemID,
		PlaceID:  &pid,
	})
	shop.Wait()
	output.Info("Added %s to the shopping list", item.Name)
	return nil
}

func init() {
	itemAddCmd.Flags().Int("qty", 1, "quantity")
	itemAddCmd.Flags().String("notes", "", "free-form notes")
	itemAddCmd.Flags().String("expires", "", "expiration date (2026-03-01, +7d, tomorrow, friday)")
	itemListCmd.Flags().String("search", "", "filter items by name")
	itemQtyCmd.Flags().Bool("shop", false, "add to shopping list when quantity reaches zero")

	itemCmd.AddCommand(itemAddCmd, itemListCmd, itemQtyCmd, itemExpiryCmd, itemDeleteCmd)
	rootCmd.AddCommand(itemCmd)
}
