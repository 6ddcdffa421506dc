// Package e2e drives the real stack end to end: a sqlite store, the
// reminder scheduler and the widget snapshot slot wired together the same
// way the CLI wires them, then exercised through store dispatches.
package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/varepato/pantrypal/internal/config"
	"github.com/varepato/pantrypal/internal/db"
	"github.com/varepato/pantrypal/internal/engine"
	"github.com/varepato/pantrypal/internal/models"
	"github.com/varepato/pantrypal/internal/reminder"
	"github.com/varepato/pantrypal/internal/widget"
)

// Harness owns one on-disk pantry under a temp base directory.
type Harness struct {
	t *testing.T

	Dir      string
	DB       *db.DB
	Settings config.Settings
	Widget   widget.FileStore
}

// Setup initializes a fresh pantry: database, config file, widget slot.
func Setup(t *testing.T) *Harness {
	t.Helper()
	dir := t.TempDir()

	database, err := db.Initialize(dir)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, config.Save(dir, config.Settings{}))
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	return &Harness{
		t:        t,
		Dir:      dir,
		DB:       database,
		Settings: cfg,
		Widget:   widget.FileStore{Path: cfg.WidgetPath},
	}
}

// Deps wires the live collaborators, mirroring the CLI wiring.
func (h *Harness) Deps() engine.Deps {
	return engine.Deps{
		Gateway:    h.DB,
		Scheduler:  reminder.NewStoreScheduler(h.DB),
		Snapshots:  h.Widget,
		Logger:     zaptest.NewLogger(h.t),
		Policy:     h.Settings.Policy(),
		SoonWindow: h.Settings.SoonWindowDays,
	}
}

// OpenStore builds and bootstraps a places store, as a fresh process would.
// Each store is single-use: Wait it before opening the next.
func (h *Harness) OpenStore(ctx context.Context) *engine.Store {
	h.t.Helper()
	s := engine.NewStore(h.Deps())
	require.NoError(h.t, s.Bootstrap(ctx))
	return s
}

// OpenShopping builds and bootstraps a shopping-list store.
func (h *Harness) OpenShopping(ctx context.Context) *engine.ShoppingStore {
	h.t.Helper()
	s := engine.NewShoppingStore(h.Deps())
	require.NoError(h.t, s.Bootstrap(ctx))
	return s
}

// AddPlace runs the add-place form flow and returns the new place's id.
func (h *Harness) AddPlace(ctx context.Context, s *engine.Store, name string) uuid.UUID {
	h.t.Helper()
	s.Dispatch(ctx, engine.PlaceFormChanged{Name: name, Icon: models.DefaultPlaceIcon, Color: models.DefaultPlaceColor})
	s.Dispatch(ctx, engine.ConfirmAddPlace{})

	p, ok := FindPlace(s.State(), name)
	require.True(h.t, ok, "place %q not created", name)
	return p.ID
}

// AddItem pushes the place, runs the add-item form and pops again, the
// same sequence the CLI and TUI drive. Returns the new item's id.
func (h *Harness) AddItem(ctx context.Context, s *engine.Store, placeID uuid.UUID, name string, qty int, expires *time.Time) uuid.UUID {
	h.t.Helper()
	s.Dispatch(ctx, engine.PushPlace{PlaceID: placeID})
	s.Dispatch(ctx, engine.PlaceMsg{PlaceID: placeID, Action: engine.AddItemRequested{}})
	s.Dispatch(ctx, engine.PlaceMsg{PlaceID: placeID, Action: engine.ItemFormChanged{Name: name, Qty: qty, Expiry: expires}})
	s.Dispatch(ctx, engine.PlaceMsg{PlaceID: placeID, Action: engine.ConfirmAddItem{}})
	s.Dispatch(ctx, engine.PopFrame{})

	p, ok := s.State().PlaceByID(placeID)
	require.True(h.t, ok)
	for _, it := range p.Items {
		if it.Name == name {
			return it.ID
		}
	}
	h.t.Fatalf("item %q not created", name)
	return uuid.Nil
}

// FindPlace returns the place with the given name from the collection.
func FindPlace(st engine.PlacesState, name string) (engine.PlaceState, bool) {
	for _, p := range st.Places {
		if p.Name == name {
			return p, true
		}
	}
	return engine.PlaceState{}, false
}

// TopExpiration returns the topmost expiration frame on the navigation
// stack.
func TopExpiration(st engine.PlacesState) (engine.ExpirationFrame, bool) {
	for i := len(st.Path) - 1; i >= 0; i-- {
		if f, ok := st.Path[i].(engine.ExpirationFrame); ok {
			return f, true
		}
	}
	return engine.ExpirationFrame{}, false
}

// DaysFromNow returns now shifted by n calendar days.
func DaysFromNow(n int) time.Time {
	return time.Now().AddDate(0, 0, n)
}
