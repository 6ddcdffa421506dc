package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/varepato/pantrypal/internal/models"
	"github.com/varepato/pantrypal/internal/reminder"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

// testDeps returns deterministic reducer dependencies: fixed clock and
// sequential ids.
func testDeps() Deps {
	seq := 0
	d := Deps{
		Now: func() time.Time { return testNow },
		NewID: func() uuid.UUID {
			seq++
			return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", seq))
		},
	}
	return d.normalized()
}

func datePtr(y int, m time.Month, day int) *time.Time {
	t := time.Date(y, m, day, 0, 0, 0, 0, time.Local)
	return &t
}

func TestConfirmAddItem(t *testing.T) {
	d := testDeps()
	st := NewPlaceState(models.Place{ID: uuid.New(), Name: "Fridge"})
	st.NewItemName = "  Milk  "
	st.NewItemQty = 2
	st.NewItemNotes = "oat"
	st.NewItemExpiry = datePtr(2026, 3, 15)

	next, effects, delegate := reducePlace(st, ConfirmAddItem{}, d)

	require.Equal(t, PlaceDelegateUpdated, delegate)
	require.Len(t, next.Items, 1)

	item := next.Items[0]
	require.Equal(t, "Milk", item.Name)
	require.Equal(t, 2, item.Quantity)
	require.Equal(t, "oat", item.Notes)
	require.NotNil(t, item.ExpirationDate)

	// Form resets for the next entry.
	require.False(t, next.AddingItem)
	require.Empty(t, next.NewItemName)
	require.Equal(t, 1, next.NewItemQty)
	require.Nil(t, next.NewItemExpiry)

	// The pre-expiry reminder schedules immediately.
	require.Len(t, effects, 1)
	sched, ok := effects[0].(ScheduleReminderEffect)
	require.True(t, ok)
	require.Equal(t, reminder.ID(item.ID, reminder.KindPreExpiry), sched.Request.ID)
}

func TestConfirmAddItemWithoutDateSchedulesNothing(t *testing.T) {
	d := testDeps()
	st := NewPlaceState(models.Place{ID: uuid.New(), Name: "Pantry"})
	st.NewItemName = "Salt"
	st.NewItemQty = 1

	next, effects, delegate := reducePlace(st, ConfirmAddItem{}, d)

	require.Equal(t, PlaceDelegateUpdated, delegate)
	require.Len(t, next.Items, 1)
	require.Empty(t, effects)
}

func TestConfirmAddItemBlankNameIsNoOp(t *testing.T) {
	d := testDeps()
	st := NewPlaceState(models.Place{ID: uuid.New(), Name: "Fridge"})
	st.AddingItem = true
	st.NewItemName = "   "

	next, effects, delegate := reducePlace(st, ConfirmAddItem{}, d)

	require.Equal(t, PlaceDelegateNone, delegate)
	require.Empty(t, effects)
	require.Empty(t, cmp.Diff(st, next))
}

func TestConfirmAddItemClampsQuantity(t *testing.T) {
	d := testDeps()
	st := NewPlaceState(models.Place{ID: uuid.New(), Name: "Fridge"})
	st.NewItemName = "Milk"
	st.NewItemQty = -4

	next, _, _ := reducePlace(st, ConfirmAddItem{}, d)
	require.Equal(t, 0, next.Items[0].Quantity)
}

func TestQuantityChanged(t *testing.T) {
	d := testDeps()
	itemID := uuid.New()
	st := NewPlaceState(models.Place{
		ID:    uuid.New(),
		Name:  "Fridge",
		Items: []models.FoodItem{{ID: itemID, Name: "Milk", Quantity: 3}},
	})

	next, effects, delegate := reducePlace(st, QuantityChanged{ItemID: itemID, Qty: 5}, d)
	require.Equal(t, PlaceDelegateUpdated, delegate)
	require.Empty(t, effects)
	require.Equal(t, 5, next.Items[0].Quantity)

	// Negative clamps to zero rather than erroring.
	next, _, _ = reducePlace(next, QuantityChanged{ItemID: itemID, Qty: -2}, d)
	require.Equal(t, 0, next.Items[0].Quantity)

	// Unknown id is a no-op.
	_, _, delegate = reducePlace(st, QuantityChanged{ItemID: uuid.New(), Qty: 1}, d)
	require.Equal(t, PlaceDelegateNone, delegate)
}

func TestSetItemExpirySchedulesBoth(t *testing.T) {
	d := testDeps()
	itemID := uuid.New()
	st := NewPlaceState(models.Place{
		ID:    uuid.New(),
		Name:  "Fridge",
		Items: []models.FoodItem{{ID: itemID, Name: "Milk", Quantity: 1}},
	})

	next, effects, delegate := reducePlace(st, SetItemExpiry{ItemID: itemID, Date: datePtr(2026, 3, 20)}, d)

	require.Equal(t, PlaceDelegateUpdated, delegate)
	require.NotNil(t, next.Items[0].ExpirationDate)
	require.Len(t, effects, 2)

	var ids []string
	for _, e := range effects {
		sched, ok := e.(ScheduleReminderEffect)
		require.True(t, ok)
		ids = append(ids, sched.Request.ID)
	}
	require.ElementsMatch(t, reminder.IDsForItem(itemID), ids)
}

func TestSetItemExpiryClearCancelsBoth(t *testing.T) {
	d := testDeps()
	itemID := uuid.New()
	st := NewPlaceState(models.Place{
		ID:    uuid.New(),
		Name:  "Fridge",
		Items: []models.FoodItem{{ID: itemID, Name: "Milk", Quantity: 1, ExpirationDate: datePtr(2026, 3, 20)}},
	})

	next, effects, delegate := reducePlace(st, SetItemExpiry{ItemID: itemID, Date: nil}, d)

	require.Equal(t, PlaceDelegateUpdated, delegate)
	require.Nil(t, next.Items[0].ExpirationDate)
	require.Len(t, effects, 1)

	cancel, ok := effects[0].(CancelRemindersEffect)
	require.True(t, ok)
	require.ElementsMatch(t, reminder.IDsForItem(itemID), cancel.IDs)
}

func TestSetItemExpiryUnknownItem(t *testing.T) {
	d := testDeps()
	st := NewPlaceState(models.Place{ID: uuid.New(), Name: "Fridge"})

	next, effects, delegate := reducePlace(st, SetItemExpiry{ItemID: uuid.New(), Date: datePtr(2026, 3, 20)}, d)
	require.Equal(t, PlaceDelegateNone, delegate)
	require.Empty(t, effects)
	require.Empty(t, next.Items)
}

func TestDeleteItemsCancelsOnlyDatedReminders(t *testing.T) {
	d := testDeps()
	dated := models.FoodItem{ID: uuid.New(), Name: "Milk", ExpirationDate: datePtr(2026, 3, 20)}
	dateless := models.FoodItem{ID: uuid.New(), Name: "Salt"}
	keep := models.FoodItem{ID: uuid.New(), Name: "Eggs"}
	st := NewPlaceState(models.Place{
		ID:    uuid.New(),
		Name:  "Fridge",
		Items: []models.FoodItem{dated, dateless, keep},
	})

	next, effects, delegate := reducePlace(st, DeleteItems{ItemIDs: []uuid.UUID{dated.ID, dateless.ID}}, d)

	require.Equal(t, PlaceDelegateUpdated, delegate)
	require.Len(t, next.Items, 1)
	require.Equal(t, "Eggs", next.Items[0].Name)

	// Only the dated item ever had reminders to cancel.
	require.Len(t, effects, 1)
	cancel := effects[0].(CancelRemindersEffect)
	require.ElementsMatch(t, reminder.IDsForItem(dated.ID), cancel.IDs)
}

func TestSearchQueryFiltersVisibleItems(t *testing.T) {
	d := testDeps()
	st := NewPlaceState(models.Place{
		ID:   uuid.New(),
		Name: "Fridge",
		Items: []models.FoodItem{
			{ID: uuid.New(), Name: "Whole Milk"},
			{ID: uuid.New(), Name: "Oat Milk"},
			{ID: uuid.New(), Name: "Eggs"},
		},
	})

	next, effects, delegate := reducePlace(st, SearchQueryChanged{Query: "milk"}, d)
	require.Equal(t, PlaceDelegateNone, delegate)
	require.Empty(t, effects)

	visible := next.VisibleItems()
	require.Len(t, visible, 2)

	next, _, _ = reducePlace(next, SearchQueryChanged{Query: ""}, d)
	require.Len(t, next.VisibleItems(), 3)
}
