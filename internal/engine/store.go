package engine

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// persistQueueDepth bounds the snapshot write queue. Writes drain far
// faster than a human can mutate, so backpressure here is theoretical.
const persistQueueDepth = 64

// Store runs the places state machine. Dispatch applies the reducer
// under a mutex, then launches each returned effect. Snapshot writes
// are the exception: they go through a single-writer queue so they hit
// the gateway in dispatch order, never concurrently.
type Store struct {
	deps Deps

	mu    sync.Mutex
	state PlacesState

	wg        sync.WaitGroup
	persistCh chan PersistPlacesEffect
	closeOnce sync.Once
}

// NewStore builds a store around the initial state.
func NewStore(deps Deps) *Store {
	s := &Store{
		deps:      deps.normalized(),
		state:     NewPlacesState(),
		persistCh: make(chan PersistPlacesEffect, persistQueueDepth),
	}
	s.wg.Add(1)
	go s.persistLoop()
	return s
}

// Bootstrap loads the collection synchronously so callers can act on
// loaded state immediately. The reschedule and publish effects it
// triggers still run async.
func (s *Store) Bootstrap(ctx context.Context) error {
	places, err := s.deps.Gateway.LoadPlaces(ctx)
	if err != nil {
		return err
	}
	s.Dispatch(ctx, LoadSucceeded{Places: places})
	return nil
}

// Dispatch feeds one action through the reducer and starts its effects.
func (s *Store) Dispatch(ctx context.Context, action Action) {
	s.mu.Lock()
	next, effects := reducePlaces(s.state, action, s.deps)
	s.state = next
	s.mu.Unlock()

	for _, eff := range effects {
		if p, ok := eff.(PersistPlacesEffect); ok {
			s.wg.Add(1)
			s.persistCh <- p
			continue
		}
		s.wg.Add(1)
		go func(eff Effect) {
			defer s.wg.Done()
			s.runEffect(ctx, eff)
		}(eff)
	}
}

// State returns a copy of the current state.
func (s *Store) State() PlacesState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Wait drains all in-flight effects and shuts the write queue down.
// The store must not be dispatched to afterwards.
func (s *Store) Wait() {
	s.closeOnce.Do(func() { close(s.persistCh) })
	s.wg.Wait()
}

// persistLoop is the single writer for collection snapshots.
func (s *Store) persistLoop() {
	defer s.wg.Done()
	for p := range s.persistCh {
		if err := s.deps.Gateway.ReplaceAll(context.Background(), p.Snapshot); err != nil {
			s.deps.Logger.Warn("snapshot write failed", zap.Error(err))
		}
		s.wg.Done()
	}
}

func (s *Store) runEffect(ctx context.Context, eff Effect) {
	switch e := eff.(type) {
	case LoadPlacesEffect:
		places, err := s.deps.Gateway.LoadPlaces(ctx)
		if err != nil {
			s.deps.Logger.Warn("load failed", zap.Error(err))
			s.Dispatch(ctx, LoadFailed{})
			return
		}
		s.Dispatch(ctx, LoadSucceeded{Places: places})

	case PublishSnapshotEffect:
		if err := s.deps.Snapshots.Publish(e.Snapshot); err != nil {
			s.deps.Logger.Warn("snapshot publish failed", zap.Error(err))
		}

	case ScheduleReminderEffect:
		r := e.Request
		if err := s.deps.Scheduler.Schedule(ctx, r.ID, r.Title, r.Body, r.FireAt); err != nil {
			s.deps.Logger.Warn("reminder schedule failed", zap.String("id", r.ID), zap.Error(err))
		}

	case CancelRemindersEffect:
		if err := s.deps.Scheduler.Cancel(ctx, e.IDs); err != nil {
			s.deps.Logger.Warn("reminder cancel failed", zap.Error(err))
		}

	case RequestAuthorizationEffect:
		granted, err := s.deps.Scheduler.RequestAuthorization(ctx)
		if err != nil {
			s.deps.Logger.Warn("authorization request failed", zap.Error(err))
			granted = false
		}
		s.Dispatch(ctx, NotificationPermissionResponse{Granted: granted})
	}
}

// ShoppingStore runs the shopping-list state machine. Same dispatch
// discipline as Store; shopping writes are row-level and need no
// ordering queue.
type ShoppingStore struct {
	deps Deps

	mu    sync.Mutex
	state ShoppingState

	wg sync.WaitGroup
}

// NewShoppingStore builds a store around the initial shopping state.
func NewShoppingStore(deps Deps) *ShoppingStore {
	return &ShoppingStore{deps: deps.normalized(), state: NewShoppingState()}
}

// Bootstrap loads the shopping list synchronously.
func (s *ShoppingStore) Bootstrap(ctx context.Context) error {
	items, err := s.deps.Gateway.LoadShoppingList(ctx)
	if err != nil {
		return err
	}
	s.Dispatch(ctx, ShopLoaded{Items: items})
	return nil
}

// Dispatch feeds one action through the reducer and starts its effects.
func (s *ShoppingStore) Dispatch(ctx context.Context, action Action) {
	s.mu.Lock()
	next, effects := reduceShopping(s.state, action, s.deps)
	s.state = next
	s.mu.Unlock()

	for _, eff := range effects {
		s.wg.Add(1)
		go func(eff Effect) {
			defer s.wg.Done()
			s.runEffect(ctx, eff)
		}(eff)
	}
}

// State returns a copy of the current state.
func (s *ShoppingStore) State() ShoppingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Wait blocks until all in-flight effects have finished.
func (s *ShoppingStore) Wait() {
	s.wg.Wait()
}

func (s *ShoppingStore) runEffect(ctx context.Context, eff Effect) {
	switch e := eff.(type) {
	case LoadShoppingEffect:
		items, err := s.deps.Gateway.LoadShoppingList(ctx)
		if err != nil {
			s.Dispatch(ctx, ShopLoadFailed{Message: err.Error()})
			return
		}
		s.Dispatch(ctx, ShopLoaded{Items: items})

	case MergeOrCreateEffect:
		_, err := s.deps.Gateway.MergeOrCreateShoppingItem(ctx, e.Name, e.Qty, e.Source, e.LinkedID, e.PlaceID)
		if err != nil {
			s.deps.Logger.Warn("shopping merge failed", zap.String("name", e.Name), zap.Error(err))
			return
		}
		s.Dispatch(ctx, ShopLoad{})

	case UpdateShoppingItemEffect:
		if err := s.deps.Gateway.UpdateShoppingItem(ctx, e.Item); err != nil {
			s.deps.Logger.Warn("shopping update failed", zap.Error(err))
		}

	case DeleteShoppingItemsEffect:
		if err := s.deps.Gateway.DeleteShoppingItems(ctx, e.IDs); err != nil {
			s.deps.Logger.Warn("shopping delete failed", zap.Error(err))
		}

	case MarkPurchasedEffect:
		if err := s.deps.Gateway.MarkPurchased(ctx, e.IDs, e.Purchased); err != nil {
			s.deps.Logger.Warn("shopping status flip failed", zap.Error(err))
		}
	}
}
