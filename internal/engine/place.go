package engine

import (
	"strings"

	"github.com/varepato/pantrypal/internal/models"
	"github.com/varepato/pantrypal/internal/reminder"
)

// PlaceDelegate is the outbound notification a place transition hands its
// parent. The root re-integrates the returned child state on Updated;
// this is the only way it learns of place-level changes.
type PlaceDelegate int

const (
	PlaceDelegateNone PlaceDelegate = iota
	PlaceDelegateUpdated
)

// reducePlace is the state machine for a single place.
func reducePlace(st PlaceState, action PlaceAction, d Deps) (PlaceState, []Effect, PlaceDelegate) {
	switch a := action.(type) {
	case AddItemRequested:
		st.AddingItem = true
		return st, nil, PlaceDelegateNone

	case ItemFormChanged:
		st.NewItemName = a.Name
		st.NewItemQty = a.Qty
		st.NewItemNotes = a.Notes
		st.NewItemExpiry = a.Expiry
		return st, nil, PlaceDelegateNone

	case SearchQueryChanged:
		st.SearchQuery = a.Query
		return st, nil, PlaceDelegateNone

	case ConfirmAddItem:
		trimmed := strings.TrimSpace(st.NewItemName)
		if trimmed == "" {
			// Silent no-op; the confirm affordance is disabled upstream.
			return st, nil, PlaceDelegateNone
		}

		qty := st.NewItemQty
		if qty < 0 {
			qty = 0
		}
		item := models.FoodItem{
			ID:             d.NewID(),
			Name:           trimmed,
			Quantity:       qty,
			Notes:          st.NewItemNotes,
			ExpirationDate: st.NewItemExpiry,
		}
		st.Items = append(st.cloneItems(), item)

		st.AddingItem = false
		st.NewItemName = ""
		st.NewItemQty = 1
		st.NewItemNotes = ""
		st.NewItemExpiry = nil

		// The pre-expiry reminder is scheduled here; the integrating
		// parent covers the day-of reminder in its resweep.
		var effects []Effect
		if req := d.Policy.PreExpiryRequest(item); req != nil {
			effects = append(effects, ScheduleReminderEffect{Request: *req})
		}
		return st, effects, PlaceDelegateUpdated

	case SetItemExpiry:
		items := st.cloneItems()
		st.Items = items
		var target *models.FoodItem
		for i := range items {
			if items[i].ID == a.ItemID {
				target = &items[i]
				break
			}
		}
		if target == nil {
			return st, nil, PlaceDelegateNone
		}
		target.ExpirationDate = a.Date

		if a.Date == nil {
			// No longer expires: clear both pending reminders.
			return st, []Effect{CancelRemindersEffect{IDs: reminder.IDsForItem(a.ItemID)}}, PlaceDelegateUpdated
		}
		var effects []Effect
		for _, req := range d.Policy.RequestsForItem(*target) {
			effects = append(effects, ScheduleReminderEffect{Request: req})
		}
		return st, effects, PlaceDelegateUpdated

	case DeleteItems:
		doomed := make(map[string]bool, len(a.ItemIDs))
		for _, id := range a.ItemIDs {
			doomed[id.String()] = true
		}

		var kept []models.FoodItem
		var cancelIDs []string
		for _, it := range st.Items {
			if !doomed[it.ID.String()] {
				kept = append(kept, it)
				continue
			}
			// Only items with a date ever had reminders scheduled.
			if it.ExpirationDate != nil {
				cancelIDs = append(cancelIDs, reminder.IDsForItem(it.ID)...)
			}
		}
		st.Items = kept

		var effects []Effect
		if len(cancelIDs) > 0 {
			effects = append(effects, CancelRemindersEffect{IDs: cancelIDs})
		}
		return st, effects, PlaceDelegateUpdated

	case QuantityChanged:
		items := st.cloneItems()
		st.Items = items
		for i := range items {
			if items[i].ID == a.ItemID {
				if a.Qty < 0 {
					a.Qty = 0
				}
				items[i].Quantity = a.Qty
				return st, nil, PlaceDelegateUpdated
			}
		}
		return st, nil, PlaceDelegateNone
	}

	return st, nil, PlaceDelegateNone
}
