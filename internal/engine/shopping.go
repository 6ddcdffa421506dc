package engine

import (
	"strings"

	"github.com/varepato/pantrypal/internal/models"
)

// reduceShopping is the shopping-list state machine. Edits are
// optimistic: memory updates immediately, persistence follows
// asynchronously and failures are logged only.
func reduceShopping(st ShoppingState, action Action, d Deps) (ShoppingState, []Effect) {
	switch a := action.(type) {
	case ShopLoad:
		if st.Loading {
			return st, nil
		}
		st.Loading = true
		st.Err = ""
		return st, []Effect{LoadShoppingEffect{}}

	case ShopLoaded:
		st.Loading = false
		st.Items = a.Items
		return st, nil

	case ShopLoadFailed:
		st.Loading = false
		st.Err = a.Message
		return st, nil

	case ShopAddRequested:
		st.Adding = true
		st.NewName = ""
		st.NewQty = 1
		return st, nil

	case ShopFormChanged:
		st.NewName = a.Name
		st.NewQty = a.Qty
		return st, nil

	case ShopCancelAdd:
		st.Adding = false
		return st, nil

	case ShopConfirmAdd:
		st.Adding = false
		trimmed := strings.TrimSpace(st.NewName)
		if trimmed == "" {
			return st, nil
		}
		qty := st.NewQty
		if qty < 1 {
			qty = 1
		}
		return st, []Effect{MergeOrCreateEffect{Name: trimmed, Qty: qty, Source: models.SourceManual}}

	case ShopMergeOrCreate:
		trimmed := strings.TrimSpace(a.Name)
		if trimmed == "" {
			return st, nil
		}
		qty := a.Qty
		if qty < 1 {
			qty = 1
		}
		return st, []Effect{MergeOrCreateEffect{
			Name:     trimmed,
			Qty:      qty,
			Source:   a.Source,
			LinkedID: a.LinkedID,
			PlaceID:  a.PlaceID,
		}}

	case ShopSetQuantity:
		qty := a.Qty
		if qty < 1 {
			qty = 1
		}
		items := cloneShoppingItems(st.Items)
		st.Items = items
		for i := range items {
			if items[i].ID == a.ID {
				items[i].DesiredQuantity = qty
				items[i].UpdatedAt = d.Now()
				return st, []Effect{UpdateShoppingItemEffect{Item: items[i]}}
			}
		}
		return st, nil

	case ShopDelete:
		if len(a.IDs) == 0 {
			return st, nil
		}
		doomed := make(map[string]bool, len(a.IDs))
		for _, id := range a.IDs {
			doomed[id.String()] = true
		}
		var kept []models.ShoppingListItem
		for _, it := range st.Items {
			if !doomed[it.ID.String()] {
				kept = append(kept, it)
			}
		}
		st.Items = kept
		return st, []Effect{DeleteShoppingItemsEffect{IDs: a.IDs}}

	case ShopMarkPurchased:
		if len(a.IDs) == 0 {
			return st, nil
		}
		flip := make(map[string]bool, len(a.IDs))
		for _, id := range a.IDs {
			flip[id.String()] = true
		}
		items := cloneShoppingItems(st.Items)
		st.Items = items
		now := d.Now()
		for i := range items {
			if !flip[items[i].ID.String()] {
				continue
			}
			if a.Purchased {
				items[i].Status = models.StatusPurchased
			} else {
				items[i].Status = models.StatusToBuy
			}
			items[i].UpdatedAt = now
		}
		return st, []Effect{MarkPurchasedEffect{IDs: a.IDs, Purchased: a.Purchased}}
	}

	return st, nil
}
