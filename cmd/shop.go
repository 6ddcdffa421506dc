package cmd

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/varepato/pantrypal/internal/engine"
	"github.com/varepato/pantrypal/internal/models"
	"github.com/varepato/pantrypal/internal/output"
)

var shopCmd = &cobra.Command{
	Use:     "shop",
	Short:   "Manage the shopping list",
	GroupID: "shop",
}

var shopAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an entry (merges with an existing one of the same name)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		shop, database, err := openShopping(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		qty, _ := cmd.Flags().GetInt("qty")
		shop.Dispatch(ctx, engine.ShopMergeOrCreate{Name: args[0], Qty: qty, Source: models.SourceManual})
		shop.Wait()

		output.Success("Added %s", args[0])
		return nil
	},
}

var shopListCmd = &cobra.Command{
	Use:   "list",
	Short: "List shopping entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		shop, database, err := openShopping(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()
		defer shop.Wait()

		st := shop.State()
		if len(st.Items) == 0 {
			output.Subtle("shopping list is empty")
			return nil
		}

		output.Title("Shopping list")
		for _, it := range st.Items {
			mark := " "
			if it.Status == models.StatusPurchased {
				mark = "x"
			}
			output.Info("  [%s] %-24s x%d", mark, it.Name, it.DesiredQuantity)
		}
		return nil
	},
}

var shopQtyCmd = &cobra.Command{
	Use:   "qty <name> <quantity>",
	Short: "Set an entry's desired quantity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		shop, database, err := openShopping(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		items, err := resolveShoppingItems(shop.State(), args[:1])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			output.Error("invalid quantity: %s", args[1])
			return err
		}

		shop.Dispatch(ctx, engine.ShopSetQuantity{ID: items[0].ID, Qty: qty})
		shop.Wait()
		output.Success("%s is now x%d", items[0].Name, max(qty, 1))
		return nil
	},
}

var shopDoneCmd = &cobra.Command{
	Use:   "done <name>...",
	Short: "Mark entries purchased",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return flipPurchased(cmd, args, true)
	},
}

var shopUndoCmd = &cobra.Command{
	Use:   "undo <name>...",
	Short: "Mark entries back to to-buy",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return flipPurchased(cmd, args, false)
	},
}

var shopDeleteCmd = &cobra.Command{
	Use:   "delete <name>...",
	Short: "Delete entries",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		shop, database, err := openShopping(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		items, err := resolveShoppingItems(shop.State(), args)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		ids := make([]uuid.UUID, len(items))
		for i, it := range items {
			ids[i] = it.ID
		}

		shop.Dispatch(ctx, engine.ShopDelete{IDs: ids})
		shop.Wait()
		output.Success("Deleted %d entries", len(ids))
		return nil
	},
}

func flipPurchased(cmd *cobra.Command, args []string, purchased bool) error {
	ctx := cmd.Context()
	shop, database, err := openShopping(ctx)
	if err != nil {
		output.Error("%v", err)
		return err
	}
	defer database.Close()

	items, err := resolveShoppingItems(shop.State(), args)
	if err != nil {
		output.Error("%v", err)
		return err
	}
	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	shop.Dispatch(ctx, engine.ShopMarkPurchased{IDs: ids, Purchased: purchased})
	shop.Wait()
	if purchased {
		output.Success("Marked %d entries purchased", len(ids))
	} else {
		output.Success("Marked %d entries to-buy", len(ids))
	}
	return nil
}

func init() {
	shopAddCmd.Flags().Int("qty", 1, "desired quantity")

	shopCmd.AddCommand(shopAddCmd, shopListCmd, shopQtyCmd, shopDoneCmd, shopUndoCmd, shopDeleteCmd)
	rootCmd.AddCommand(shopCmd)
}
