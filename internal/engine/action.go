package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/varepato/pantrypal/internal/models"
)

// Action is a message fed into a store's reducer. Actions are processed
// one at a time, in the order received.
type Action interface{ isAction() }

// BannerKind identifies the two dismissible home banners.
type BannerKind int

const (
	BannerExpired BannerKind = iota
	BannerExpiringSoon
)

// --- Root (places collection) actions ---

// LoadRequested kicks off the initial load from the persistence gateway.
type LoadRequested struct{}

// LoadSucceeded replaces the in-memory collection wholesale.
type LoadSucceeded struct{ Places []models.Place }

// LoadFailed leaves state as-is; no retry is scheduled.
type LoadFailed struct{}

// AddPlaceRequested opens the add-place form.
type AddPlaceRequested struct{}

// PlaceFormChanged binds the add-place form fields.
type PlaceFormChanged struct{ Name, Icon, Color string }

// ConfirmAddPlace validates and appends a new place.
type ConfirmAddPlace struct{}

// DeletePlaces removes places by stable id; callers resolve any
// transient indices to ids before dispatching.
type DeletePlaces struct{ PlaceIDs []uuid.UUID }

// DismissBanner snoozes a banner until the next local midnight.
type DismissBanner struct{ Kind BannerKind }

// BannerTapped pushes the matching expiration screen.
type BannerTapped struct{ Kind BannerKind }

// OpenAllItems pops navigation back to the root item list (deep link).
type OpenAllItems struct{}

// RequestNotificationPermission asks the scheduler for authorization.
type RequestNotificationPermission struct{}

// NotificationPermissionResponse records the authorization outcome.
type NotificationPermissionResponse struct{ Granted bool }

// PushPlace pushes a place screen onto the navigation stack.
type PushPlace struct{ PlaceID uuid.UUID }

// PopFrame pops the top navigation frame.
type PopFrame struct{}

// PlaceMsg routes a child action to one place's reducer.
type PlaceMsg struct {
	PlaceID uuid.UUID
	Action  PlaceAction
}

// ExpirationMsg routes a child action to an expiration screen frame.
type ExpirationMsg struct {
	FrameID uuid.UUID
	Action  ExpirationAction
}

func (LoadRequested) isAction()                  {}
func (LoadSucceeded) isAction()                  {}
func (LoadFailed) isAction()                     {}
func (AddPlaceRequested) isAction()              {}
func (PlaceFormChanged) isAction()               {}
func (ConfirmAddPlace) isAction()                {}
func (DeletePlaces) isAction()                   {}
func (DismissBanner) isAction()                  {}
func (BannerTapped) isAction()                   {}
func (OpenAllItems) isAction()                   {}
func (RequestNotificationPermission) isAction()  {}
func (NotificationPermissionResponse) isAction() {}
func (PushPlace) isAction()                      {}
func (PopFrame) isAction()                       {}
func (PlaceMsg) isAction()                       {}
func (ExpirationMsg) isAction()                  {}

// --- Place (child) actions ---

// PlaceAction is a transition of a single place's state machine.
type PlaceAction interface{ isPlaceAction() }

// AddItemRequested opens the add-item form; UI-only, nothing persists.
type AddItemRequested struct{}

// ItemFormChanged binds the add-item form fields.
type ItemFormChanged struct {
	Name   string
	Qty    int
	Notes  string
	Expiry *time.Time
}

// ConfirmAddItem validates and appends a new food item.
type ConfirmAddItem struct{}

// SetItemExpiry changes or clears an item's expiration date.
type SetItemExpiry struct {
	ItemID uuid.UUID
	Date   *time.Time
}

// DeleteItems removes items by stable id.
type DeleteItems struct{ ItemIDs []uuid.UUID }

// QuantityChanged sets an item's quantity, clamped to >= 0.
type QuantityChanged struct {
	ItemID uuid.UUID
	Qty    int
}

// SearchQueryChanged filters the place's visible items; UI-only.
type SearchQueryChanged struct{ Query string }

func (AddItemRequested) isPlaceAction()   {}
func (ItemFormChanged) isPlaceAction()    {}
func (ConfirmAddItem) isPlaceAction()     {}
func (SetItemExpiry) isPlaceAction()      {}
func (DeleteItems) isPlaceAction()        {}
func (QuantityChanged) isPlaceAction()    {}
func (SearchQueryChanged) isPlaceAction() {}

// --- Expiration screen actions ---

// ExpirationAction is a transition of an expiration screen.
type ExpirationAction interface{ isExpirationAction() }

// CleanupAllTapped asks the root to purge every expired item.
type CleanupAllTapped struct{}

// CloseTapped pops the expiration screen.
type CloseTapped struct{}

func (CleanupAllTapped) isExpirationAction() {}
func (CloseTapped) isExpirationAction()      {}

// --- Shopping list actions ---

// ShopLoad fetches the shopping list; a no-op while already loading.
type ShopLoad struct{}

// ShopLoaded replaces the in-memory entries.
type ShopLoaded struct{ Items []models.ShoppingListItem }

// ShopLoadFailed captures a displayable error; reload to retry.
type ShopLoadFailed struct{ Message string }

// ShopAddRequested opens the add sheet.
type ShopAddRequested struct{}

// ShopFormChanged binds the add-sheet fields.
type ShopFormChanged struct {
	Name string
	Qty  int
}

// ShopConfirmAdd closes the sheet and merges the entered entry.
type ShopConfirmAdd struct{}

// ShopCancelAdd closes the sheet without adding.
type ShopCancelAdd struct{}

// ShopMergeOrCreate merges name into the list or creates a new entry.
type ShopMergeOrCreate struct {
	Name     string
	Qty      int
	Source   models.ItemSource
	LinkedID *uuid.UUID
	PlaceID  *uuid.UUID
}

// ShopSetQuantity edits an entry's quantity optimistically.
type ShopSetQuantity struct {
	ID  uuid.UUID
	Qty int
}

// ShopDelete removes entries optimistically.
type ShopDelete struct{ IDs []uuid.UUID }

// ShopMarkPurchased bulk-flips purchase status.
type ShopMarkPurchased struct {
	IDs       []uuid.UUID
	Purchased bool
}

func (ShopLoad) isAction()          {}
func (ShopLoaded) isAction()        {}
func (ShopLoadFailed) isAction()    {}
func (ShopAddRequested) isAction()  {}
func (ShopFormChanged) isAction()   {}
func (ShopConfirmAdd) isAction()    {}
func (ShopCancelAdd) isAction()     {}
func (ShopMergeOrCreate) isAction() {}
func (ShopSetQuantity) isAction()   {}
func (ShopDelete) isAction()        {}
func (ShopMarkPurchased) isAction() {}
