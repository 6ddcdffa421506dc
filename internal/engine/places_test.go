package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/varepato/pantrypal/internal/models"
	"github.com/varepato/pantrypal/internal/reminder"
)

func loadedState(d Deps, places ...models.Place) PlacesState {
	st, _ := reducePlaces(NewPlacesState(), LoadSucceeded{Places: places}, d)
	return st
}

func effectsOfType[T Effect](effects []Effect) []T {
	var out []T
	for _, e := range effects {
		if t, ok := e.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

func TestLoadLifecycle(t *testing.T) {
	d := testDeps()

	st, effects := reducePlaces(NewPlacesState(), LoadRequested{}, d)
	require.False(t, st.HasLoaded)
	require.Len(t, effects, 1)
	require.IsType(t, LoadPlacesEffect{}, effects[0])

	places := []models.Place{
		{ID: uuid.New(), Name: "zebra shelf"},
		{ID: uuid.New(), Name: "Apple bin", Items: []models.FoodItem{
			{ID: uuid.New(), Name: "Apples", ExpirationDate: datePtr(2026, 3, 12)},
		}},
	}
	st, effects = reducePlaces(st, LoadSucceeded{Places: places}, d)

	require.True(t, st.HasLoaded)
	require.Len(t, st.Places, 2)
	// Case-insensitive sort.
	require.Equal(t, "Apple bin", st.Places[0].Name)
	require.Equal(t, "zebra shelf", st.Places[1].Name)

	// The resweep schedules both reminders for the dated item and the
	// snapshot republishes.
	require.Len(t, effectsOfType[ScheduleReminderEffect](effects), 2)
	require.Len(t, effectsOfType[PublishSnapshotEffect](effects), 1)
	// Loading never persists.
	require.Empty(t, effectsOfType[PersistPlacesEffect](effects))
}

func TestLoadFailedKeepsState(t *testing.T) {
	d := testDeps()
	st := loadedState(d, models.Place{ID: uuid.New(), Name: "Fridge"})

	next, effects := reducePlaces(st, LoadFailed{}, d)
	require.Empty(t, effects)
	require.Equal(t, st.Places, next.Places)
}

func TestConfirmAddPlace(t *testing.T) {
	d := testDeps()
	st := loadedState(d)
	st.NewPlaceName = "  Fridge  "

	next, effects := reducePlaces(st, ConfirmAddPlace{}, d)

	require.Len(t, next.Places, 1)
	p := next.Places[0]
	require.Equal(t, "Fridge", p.Name)
	require.Equal(t, models.DefaultPlaceIcon, p.IconName)
	require.Equal(t, models.DefaultPlaceColor, p.ColorHex)
	require.False(t, next.AddingPlace)
	require.Empty(t, next.NewPlaceName)

	require.Len(t, effectsOfType[PersistPlacesEffect](effects), 1)
	require.Len(t, effectsOfType[PublishSnapshotEffect](effects), 1)
}

func TestConfirmAddPlaceBlankNameNoPersist(t *testing.T) {
	d := testDeps()
	st := loadedState(d)
	st.NewPlaceName = "   "

	next, effects := reducePlaces(st, ConfirmAddPlace{}, d)
	require.Empty(t, next.Places)
	require.Empty(t, effects)
}

func TestConfirmAddPlaceKeepsSortedOrder(t *testing.T) {
	d := testDeps()
	st := loadedState(d,
		models.Place{ID: uuid.New(), Name: "Basement"},
		models.Place{ID: uuid.New(), Name: "Pantry"},
	)
	st.NewPlaceName = "fridge"

	next, _ := reducePlaces(st, ConfirmAddPlace{}, d)
	names := []string{next.Places[0].Name, next.Places[1].Name, next.Places[2].Name}
	require.Equal(t, []string{"Basement", "fridge", "Pantry"}, names)
}

func TestPersistGateBeforeLoad(t *testing.T) {
	d := testDeps()
	st := NewPlacesState()

	// A delete racing in before the load completes must not write the
	// empty in-memory collection over durable data.
	next, effects := reducePlaces(st, DeletePlaces{PlaceIDs: []uuid.UUID{uuid.New()}}, d)
	require.False(t, next.HasLoaded)
	require.Empty(t, effectsOfType[PersistPlacesEffect](effects))
}

func TestPersistAllowedOnceLoaded(t *testing.T) {
	d := testDeps()
	p := models.Place{ID: uuid.New(), Name: "Fridge"}
	st := loadedState(d, p)

	// Deleting down to empty after load is a legitimate write.
	next, effects := reducePlaces(st, DeletePlaces{PlaceIDs: []uuid.UUID{p.ID}}, d)
	require.Empty(t, next.Places)

	persists := effectsOfType[PersistPlacesEffect](effects)
	require.Len(t, persists, 1)
	require.Empty(t, persists[0].Snapshot)
}

func TestDeletePlacesCancelsDatedReminders(t *testing.T) {
	d := testDeps()
	dated := models.FoodItem{ID: uuid.New(), Name: "Milk", ExpirationDate: datePtr(2026, 3, 20)}
	dateless := models.FoodItem{ID: uuid.New(), Name: "Salt"}
	doomed := models.Place{ID: uuid.New(), Name: "Fridge", Items: []models.FoodItem{dated, dateless}}
	kept := models.Place{ID: uuid.New(), Name: "Pantry"}
	st := loadedState(d, doomed, kept)

	next, effects := reducePlaces(st, DeletePlaces{PlaceIDs: []uuid.UUID{doomed.ID}}, d)

	require.Len(t, next.Places, 1)
	require.Equal(t, "Pantry", next.Places[0].Name)

	cancels := effectsOfType[CancelRemindersEffect](effects)
	require.Len(t, cancels, 1)
	require.ElementsMatch(t, reminder.IDsForItem(dated.ID), cancels[0].IDs)
}

func TestBannerSnooze(t *testing.T) {
	d := testDeps()
	st := loadedState(d)

	require.True(t, st.BannerEligible(BannerExpired, testNow))

	next, effects := reducePlaces(st, DismissBanner{Kind: BannerExpired}, d)
	require.Empty(t, effects)

	// Snoozed for the rest of the day.
	require.False(t, next.BannerEligible(BannerExpired, testNow))
	require.False(t, next.BannerEligible(BannerExpired, testNow.Add(11*time.Hour)))
	// Eligible again from the next local midnight.
	nextMidnight := time.Date(2026, 3, 11, 0, 0, 0, 0, time.Local)
	require.True(t, next.BannerEligible(BannerExpired, nextMidnight))

	// The other banner is unaffected.
	require.True(t, next.BannerEligible(BannerExpiringSoon, testNow))
}

func TestBannerTappedPushesExpirationScreen(t *testing.T) {
	d := testDeps()
	st := loadedState(d, models.Place{
		ID:   uuid.New(),
		Name: "Fridge",
		Items: []models.FoodItem{
			{ID: uuid.New(), Name: "Old Milk", ExpirationDate: datePtr(2026, 3, 5)},
			{ID: uuid.New(), Name: "Eggs", ExpirationDate: datePtr(2026, 3, 11)},
		},
	})

	next, effects := reducePlaces(st, BannerTapped{Kind: BannerExpired}, d)
	require.Empty(t, effects)
	require.Len(t, next.Path, 1)

	frame, ok := next.Path[0].(ExpirationFrame)
	require.True(t, ok)
	require.Len(t, frame.Rows, 1)
	require.Equal(t, "Old Milk", frame.Rows[0].Name)
}

func TestNavigationPushPop(t *testing.T) {
	d := testDeps()
	p := models.Place{ID: uuid.New(), Name: "Fridge"}
	st := loadedState(d, p)

	next, _ := reducePlaces(st, PushPlace{PlaceID: p.ID}, d)
	require.Len(t, next.Path, 1)

	// Unknown place id pushes nothing.
	same, _ := reducePlaces(next, PushPlace{PlaceID: uuid.New()}, d)
	require.Len(t, same.Path, 1)

	next, _ = reducePlaces(next, PopFrame{}, d)
	require.Empty(t, next.Path)

	// Popping an empty stack is harmless.
	next, _ = reducePlaces(next, PopFrame{}, d)
	require.Empty(t, next.Path)
}

func TestOpenAllItemsPopsToRoot(t *testing.T) {
	d := testDeps()
	p := models.Place{ID: uuid.New(), Name: "Fridge"}
	st := loadedState(d, p)
	st, _ = reducePlaces(st, PushPlace{PlaceID: p.ID}, d)
	st, _ = reducePlaces(st, BannerTapped{Kind: BannerExpiringSoon}, d)
	require.Len(t, st.Path, 2)

	next, _ := reducePlaces(st, OpenAllItems{}, d)
	require.Empty(t, next.Path)
}

func TestNotificationPermissionFlow(t *testing.T) {
	d := testDeps()
	st := loadedState(d)

	next, effects := reducePlaces(st, RequestNotificationPermission{}, d)
	require.Len(t, effects, 1)
	require.IsType(t, RequestAuthorizationEffect{}, effects[0])

	next, _ = reducePlaces(next, NotificationPermissionResponse{Granted: true}, d)
	require.True(t, next.NotificationsGranted)
}

func TestChildIntegration(t *testing.T) {
	d := testDeps()
	itemID := uuid.New()
	p := models.Place{
		ID:    uuid.New(),
		Name:  "Fridge",
		Items: []models.FoodItem{{ID: itemID, Name: "Milk", Quantity: 1, ExpirationDate: datePtr(2026, 3, 20)}},
	}
	st := loadedState(d, p)

	next, effects := reducePlaces(st, PlaceMsg{
		PlaceID: p.ID,
		Action:  QuantityChanged{ItemID: itemID, Qty: 4},
	}, d)

	// The collection reflects the child change.
	require.Equal(t, 4, next.Places[0].Items[0].Quantity)

	require.Len(t, effectsOfType[PersistPlacesEffect](effects), 1)
	require.Len(t, effectsOfType[PublishSnapshotEffect](effects), 1)
	// Integration resweeps the place's reminders.
	require.Len(t, effectsOfType[ScheduleReminderEffect](effects), 2)
}

func TestChildIntegrationUnknownPlace(t *testing.T) {
	d := testDeps()
	st := loadedState(d, models.Place{ID: uuid.New(), Name: "Fridge"})

	next, effects := reducePlaces(st, PlaceMsg{
		PlaceID: uuid.New(),
		Action:  QuantityChanged{ItemID: uuid.New(), Qty: 1},
	}, d)
	require.Empty(t, effects)
	require.Equal(t, st.Places, next.Places)
}

func TestChildFormStateLivesOnFrame(t *testing.T) {
	d := testDeps()
	p := models.Place{ID: uuid.New(), Name: "Fridge"}
	st := loadedState(d, p)
	st, _ = reducePlaces(st, PushPlace{PlaceID: p.ID}, d)

	// Form edits are UI-only; they stick to the pushed frame.
	st, _ = reducePlaces(st, PlaceMsg{PlaceID: p.ID, Action: ItemFormChanged{Name: "Milk", Qty: 2}}, d)
	frame := st.Path[0].(PlaceFrame)
	require.Equal(t, "Milk", frame.Place.NewItemName)

	// Confirm integrates the new item into the collection.
	st, _ = reducePlaces(st, PlaceMsg{PlaceID: p.ID, Action: ConfirmAddItem{}}, d)
	require.Len(t, st.Places[0].Items, 1)
	require.Equal(t, "Milk", st.Places[0].Items[0].Name)
}

func TestCleanupAllWorkflow(t *testing.T) {
	d := testDeps()
	expired1 := models.FoodItem{ID: uuid.New(), Name: "Old Milk", ExpirationDate: datePtr(2026, 3, 5)}
	expired2 := models.FoodItem{ID: uuid.New(), Name: "Old Bread", ExpirationDate: datePtr(2026, 3, 1)}
	fresh := models.FoodItem{ID: uuid.New(), Name: "Eggs", ExpirationDate: datePtr(2026, 3, 15)}
	dateless := models.FoodItem{ID: uuid.New(), Name: "Salt"}

	st := loadedState(d,
		models.Place{ID: uuid.New(), Name: "Fridge", Items: []models.FoodItem{expired1, fresh}},
		models.Place{ID: uuid.New(), Name: "Pantry", Items: []models.FoodItem{expired2, dateless}},
	)

	st, _ = reducePlaces(st, BannerTapped{Kind: BannerExpired}, d)
	frame := st.Path[0].(ExpirationFrame)
	require.Len(t, frame.Rows, 2)

	next, effects := reducePlaces(st, ExpirationMsg{FrameID: frame.ID, Action: CleanupAllTapped{}}, d)

	// Expired items are gone everywhere, the rest survive.
	require.Len(t, next.Places[0].Items, 1)
	require.Equal(t, "Eggs", next.Places[0].Items[0].Name)
	require.Len(t, next.Places[1].Items, 1)
	require.Equal(t, "Salt", next.Places[1].Items[0].Name)

	// The screen pops.
	require.Empty(t, next.Path)

	require.Len(t, effectsOfType[PersistPlacesEffect](effects), 1)
	cancels := effectsOfType[CancelRemindersEffect](effects)
	require.Len(t, cancels, 1)
	var want []string
	want = append(want, reminder.IDsForItem(expired1.ID)...)
	want = append(want, reminder.IDsForItem(expired2.ID)...)
	require.ElementsMatch(t, want, cancels[0].IDs)
}

func TestCloseTappedPopsFrame(t *testing.T) {
	d := testDeps()
	st := loadedState(d, models.Place{ID: uuid.New(), Name: "Fridge"})
	st, _ = reducePlaces(st, BannerTapped{Kind: BannerExpiringSoon}, d)
	frame := st.Path[0].(ExpirationFrame)

	next, effects := reducePlaces(st, ExpirationMsg{FrameID: frame.ID, Action: CloseTapped{}}, d)
	require.Empty(t, next.Path)
	require.Empty(t, effects)

	// Unknown frame id leaves the stack alone.
	st2, _ := reducePlaces(st, ExpirationMsg{FrameID: uuid.New(), Action: CloseTapped{}}, d)
	require.Len(t, st2.Path, 1)
}
