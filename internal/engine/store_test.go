package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/varepato/pantrypal/internal/models"
)

type fakeGateway struct {
	mu sync.Mutex

	places   []models.Place
	shopping []models.ShoppingListItem

	loadErr error
	shopErr error

	replaceCalls [][]models.Place
	merged       []string
	updated      []models.ShoppingListItem
	deleted      [][]uuid.UUID
}

func (f *fakeGateway) LoadPlaces(ctx context.Context) ([]models.Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]models.Place, len(f.places))
	copy(out, f.places)
	return out, nil
}

func (f *fakeGateway) ReplaceAll(ctx context.Context, places []models.Place) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := make([]models.Place, len(places))
	copy(snap, places)
	f.replaceCalls = append(f.replaceCalls, snap)
	f.places = snap
	return nil
}

func (f *fakeGateway) LoadShoppingList(ctx context.Context) ([]models.ShoppingListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.shopErr != nil {
		return nil, f.shopErr
	}
	out := make([]models.ShoppingListItem, len(f.shopping))
	copy(out, f.shopping)
	return out, nil
}

func (f *fakeGateway) MergeOrCreateShoppingItem(ctx context.Context, name string, qty int, source models.ItemSource, linkedID, placeID *uuid.UUID) (models.ShoppingListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item := models.ShoppingListItem{
		ID:              uuid.New(),
		Name:            name,
		DesiredQuantity: qty,
		Source:          source,
		Status:          models.StatusToBuy,
		NormalizedKey:   models.NormalizeKey(name),
	}
	f.shopping = append(f.shopping, item)
	f.merged = append(f.merged, name)
	return item, nil
}

func (f *fakeGateway) UpdateShoppingItem(ctx context.Context, item models.ShoppingListItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, item)
	return nil
}

func (f *fakeGateway) DeleteShoppingItems(ctx context.Context, ids []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, ids)
	return nil
}

func (f *fakeGateway) MarkPurchased(ctx context.Context, ids []uuid.UUID, purchased bool) error {
	return nil
}

type fakeScheduler struct {
	mu        sync.Mutex
	scheduled map[string]time.Time
	canceled  []string
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{scheduled: map[string]time.Time{}}
}

func (f *fakeScheduler) RequestAuthorization(ctx context.Context) (bool, error) {
	return true, nil
}

func (f *fakeScheduler) Schedule(ctx context.Context, id, title, body string, fireAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled[id] = fireAt
	return nil
}

func (f *fakeScheduler) Cancel(ctx context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.canceled = append(f.canceled, ids...)
	return nil
}

type fakePublisher struct {
	mu    sync.Mutex
	snaps []models.WidgetSnapshot
}

func (f *fakePublisher) Publish(snap models.WidgetSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snaps = append(f.snaps, snap)
	return nil
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.snaps)
}

func storeDeps(gw *fakeGateway) (Deps, *fakeScheduler, *fakePublisher) {
	sched := newFakeScheduler()
	pub := &fakePublisher{}
	d := testDeps()
	d.Gateway = gw
	d.Scheduler = sched
	d.Snapshots = pub
	return d, sched, pub
}

func TestStoreBootstrap(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{places: []models.Place{
		{ID: uuid.New(), Name: "Fridge", Items: []models.FoodItem{
			{ID: uuid.New(), Name: "Milk", ExpirationDate: datePtr(2026, 3, 20)},
		}},
	}}
	d, sched, pub := storeDeps(gw)

	store := NewStore(d)
	require.NoError(t, store.Bootstrap(ctx))

	st := store.State()
	require.True(t, st.HasLoaded)
	require.Len(t, st.Places, 1)

	store.Wait()

	// The load resweep scheduled both reminders and published.
	sched.mu.Lock()
	require.Len(t, sched.scheduled, 2)
	sched.mu.Unlock()
	require.Equal(t, 1, pub.count())
	// Loading alone never writes back.
	require.Empty(t, gw.replaceCalls)
}

func TestStorePersistOrder(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{}
	d, _, _ := storeDeps(gw)

	store := NewStore(d)
	require.NoError(t, store.Bootstrap(ctx))

	for _, name := range []string{"Fridge", "Pantry", "Freezer"} {
		store.Dispatch(ctx, PlaceFormChanged{Name: name})
		store.Dispatch(ctx, ConfirmAddPlace{})
	}
	final := store.State()
	store.Wait()

	// One write per mutation, in dispatch order.
	require.Len(t, gw.replaceCalls, 3)
	for i, call := range gw.replaceCalls {
		require.Len(t, call, i+1)
	}
	require.Empty(t, cmp.Diff(final.Snapshot(), gw.replaceCalls[2]))
}

func TestStoreLoadFailure(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{loadErr: errors.New("corrupt")}
	d, _, _ := storeDeps(gw)

	store := NewStore(d)
	require.Error(t, store.Bootstrap(ctx))

	store.Dispatch(ctx, LoadRequested{})
	store.Wait()

	st := store.State()
	require.False(t, st.HasLoaded)
	require.Empty(t, st.Places)
	require.Empty(t, gw.replaceCalls)
}

func TestStoreAuthorizationRoundTrip(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{}
	d, _, _ := storeDeps(gw)

	store := NewStore(d)
	require.NoError(t, store.Bootstrap(ctx))

	store.Dispatch(ctx, RequestNotificationPermission{})
	store.Wait()

	require.True(t, store.State().NotificationsGranted)
}

func TestStoreDeleteCancelsViaScheduler(t *testing.T) {
	ctx := context.Background()
	itemID := uuid.New()
	placeID := uuid.New()
	gw := &fakeGateway{places: []models.Place{
		{ID: placeID, Name: "Fridge", Items: []models.FoodItem{
			{ID: itemID, Name: "Milk", ExpirationDate: datePtr(2026, 3, 20)},
		}},
	}}
	d, sched, _ := storeDeps(gw)

	store := NewStore(d)
	require.NoError(t, store.Bootstrap(ctx))

	store.Dispatch(ctx, DeletePlaces{PlaceIDs: []uuid.UUID{placeID}})
	store.Wait()

	sched.mu.Lock()
	defer sched.mu.Unlock()
	require.Len(t, sched.canceled, 2)
}

func TestShoppingStoreMergeTriggersReload(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{}
	d, _, _ := storeDeps(gw)

	shop := NewShoppingStore(d)
	require.NoError(t, shop.Bootstrap(ctx))

	shop.Dispatch(ctx, ShopMergeOrCreate{Name: "Milk", Qty: 2, Source: models.SourceManual})
	shop.Wait()

	require.Equal(t, []string{"Milk"}, gw.merged)
	st := shop.State()
	require.Len(t, st.Items, 1)
	require.Equal(t, "Milk", st.Items[0].Name)
}

func TestShoppingStoreLoadFailure(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{shopErr: errors.New("disk gone")}
	d, _, _ := storeDeps(gw)

	shop := NewShoppingStore(d)
	require.Error(t, shop.Bootstrap(ctx))

	shop.Dispatch(ctx, ShopLoad{})
	shop.Wait()

	st := shop.State()
	require.False(t, st.Loading)
	require.Equal(t, "disk gone", st.Err)
}
