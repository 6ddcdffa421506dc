// Package engine is the state-synchronization core: a unidirectional
// action → reducer → state → effect loop that keeps the in-memory model,
// the persisted store, scheduled reminders and the published widget
// snapshot consistent with each other.
//
// Reducers are pure: they take a state and an action and return the next
// state plus a list of effect values. Effects run asynchronously and feed
// their results back in as new actions; state is never touched from an
// effect's completion path directly.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/varepato/pantrypal/internal/expiry"
	"github.com/varepato/pantrypal/internal/models"
	"github.com/varepato/pantrypal/internal/reminder"
)

// Gateway is the consumed persistence contract. ReplaceAll fails the
// whole write rather than partially applying. Implemented by internal/db.
type Gateway interface {
	LoadPlaces(ctx context.Context) ([]models.Place, error)
	ReplaceAll(ctx context.Context, places []models.Place) error
	LoadShoppingList(ctx context.Context) ([]models.ShoppingListItem, error)
	MergeOrCreateShoppingItem(ctx context.Context, name string, qty int, source models.ItemSource, linkedID, placeID *uuid.UUID) (models.ShoppingListItem, error)
	UpdateShoppingItem(ctx context.Context, item models.ShoppingListItem) error
	DeleteShoppingItems(ctx context.Context, ids []uuid.UUID) error
	MarkPurchased(ctx context.Context, ids []uuid.UUID, purchased bool) error
}

// SnapshotPublisher is the produced contract for the widget snapshot.
// Publishing is fire-and-forget: failures never fail the mutation that
// triggered them.
type SnapshotPublisher interface {
	Publish(snap models.WidgetSnapshot) error
}

// Deps are the external collaborators injected into reducers and the
// effect layer. Nothing reaches for ambient globals; fakes slot in here
// for tests.
type Deps struct {
	Gateway   Gateway
	Scheduler reminder.Scheduler
	Snapshots SnapshotPublisher
	Logger    *zap.Logger
	Policy    reminder.Policy
	// SoonWindow is the "expiring soon" window in days.
	SoonWindow int
	// Now and NewID exist so reducers stay deterministic under test.
	Now   func() time.Time
	NewID func() uuid.UUID
}

func (d Deps) normalized() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Policy == (reminder.Policy{}) {
		d.Policy = reminder.DefaultPolicy()
	}
	if d.SoonWindow <= 0 {
		d.SoonWindow = expiry.DefaultSoonWindowDays
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = uuid.New
	}
	return d
}
