package engine

import (
	"github.com/google/uuid"

	"github.com/varepato/pantrypal/internal/models"
	"github.com/varepato/pantrypal/internal/reminder"
)

// Effect is asynchronous work a reducer wants done. Effects are plain
// values (a tagged union, not closures) so tests can assert on them
// without executing anything.
type Effect interface{ isEffect() }

// LoadPlacesEffect loads the full collection; feeds back LoadSucceeded
// or LoadFailed.
type LoadPlacesEffect struct{}

// PersistPlacesEffect writes the whole collection snapshot. Writes are
// serialized in dispatch order by the store so an earlier mutation can
// never clobber a later one.
type PersistPlacesEffect struct{ Snapshot []models.Place }

// PublishSnapshotEffect publishes the widget aggregate; fire-and-forget.
type PublishSnapshotEffect struct{ Snapshot models.WidgetSnapshot }

// ScheduleReminderEffect schedules (or replaces) one reminder.
type ScheduleReminderEffect struct{ Request reminder.Request }

// CancelRemindersEffect cancels pending reminders by id.
type CancelRemindersEffect struct{ IDs []string }

// RequestAuthorizationEffect asks for notification permission; feeds
// back NotificationPermissionResponse.
type RequestAuthorizationEffect struct{}

// LoadShoppingEffect fetches the shopping list; feeds back ShopLoaded or
// ShopLoadFailed.
type LoadShoppingEffect struct{}

// MergeOrCreateEffect runs the merge-or-create workflow, then feeds back
// ShopLoad to refresh.
type MergeOrCreateEffect struct {
	Name     string
	Qty      int
	Source   models.ItemSource
	LinkedID *uuid.UUID
	PlaceID  *uuid.UUID
}

// UpdateShoppingItemEffect persists an optimistic in-memory edit.
type UpdateShoppingItemEffect struct{ Item models.ShoppingListItem }

// DeleteShoppingItemsEffect persists an optimistic removal.
type DeleteShoppingItemsEffect struct{ IDs []uuid.UUID }

// MarkPurchasedEffect persists a bulk status flip.
type MarkPurchasedEffect struct {
	IDs       []uuid.UUID
	Purchased bool
}

func (LoadPlacesEffect) isEffect()           {}
func (PersistPlacesEffect) isEffect()        {}
func (PublishSnapshotEffect) isEffect()      {}
func (ScheduleReminderEffect) isEffect()     {}
func (CancelRemindersEffect) isEffect()      {}
func (RequestAuthorizationEffect) isEffect() {}
func (LoadShoppingEffect) isEffect()         {}
func (MergeOrCreateEffect) isEffect()        {}
func (UpdateShoppingItemEffect) isEffect()   {}
func (DeleteShoppingItemsEffect) isEffect()  {}
func (MarkPurchasedEffect) isEffect()        {}
