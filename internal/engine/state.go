package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/varepato/pantrypal/internal/expiry"
	"github.com/varepato/pantrypal/internal/models"
)

// PlaceState is one place plus its transient UI state (search query and
// the add-item form fields).
type PlaceState struct {
	ID       uuid.UUID
	Name     string
	IconName string
	ColorHex string
	Items    []models.FoodItem

	SearchQuery string

	AddingItem    bool
	NewItemName   string
	NewItemQty    int
	NewItemNotes  string
	NewItemExpiry *time.Time
}

// NewPlaceState wraps a domain place in fresh UI state.
func NewPlaceState(p models.Place) PlaceState {
	return PlaceState{
		ID:         p.ID,
		Name:       p.Name,
		IconName:   p.IconName,
		ColorHex:   p.ColorHex,
		Items:      p.Items,
		NewItemQty: 1,
	}
}

// Place strips the UI state back down to the domain value.
func (s PlaceState) Place() models.Place {
	return models.Place{ID: s.ID, Name: s.Name, IconName: s.IconName, ColorHex: s.ColorHex, Items: s.Items}
}

func (s PlaceState) cloneItems() []models.FoodItem {
	items := make([]models.FoodItem, len(s.Items))
	copy(items, s.Items)
	return items
}

// ExpiredCount counts this place's expired items.
func (s PlaceState) ExpiredCount(now time.Time) int {
	n := 0
	for _, it := range s.Items {
		if expiry.IsExpired(it.ExpirationDate, now) {
			n++
		}
	}
	return n
}

// ExpiringSoonCount counts items expiring within the window.
func (s PlaceState) ExpiringSoonCount(now time.Time, withinDays int) int {
	n := 0
	for _, it := range s.Items {
		if expiry.IsExpiringSoon(it.ExpirationDate, now, withinDays) {
			n++
		}
	}
	return n
}

// VisibleItems applies the search query filter.
func (s PlaceState) VisibleItems() []models.FoodItem {
	q := strings.ToLower(strings.TrimSpace(s.SearchQuery))
	if q == "" {
		return s.Items
	}
	var out []models.FoodItem
	for _, it := range s.Items {
		if strings.Contains(strings.ToLower(it.Name), q) {
			out = append(out, it)
		}
	}
	return out
}

// Frame is one entry of the navigation stack: a tagged variant over the
// finite set of destination screens.
type Frame interface{ isFrame() }

// PlaceFrame shows one place's item list.
type PlaceFrame struct{ Place PlaceState }

// ExpirationFrame shows the expired or expiring-soon row list.
type ExpirationFrame struct {
	ID   uuid.UUID
	Kind expiry.Kind
	Days int
	Rows []expiry.Row
}

func (PlaceFrame) isFrame()      {}
func (ExpirationFrame) isFrame() {}

// PlacesState is the root state: the sorted collection plus navigation,
// the add-place form, banner snoozes and the load lifecycle flag.
type PlacesState struct {
	Places []PlaceState
	Path   []Frame

	AddingPlace   bool
	NewPlaceName  string
	NewPlaceIcon  string
	NewPlaceColor string

	HideExpiredBannerUntil  *time.Time
	HideExpiringBannerUntil *time.Time

	// HasLoaded gates snapshot persistence: before the initial load
	// completes, an empty in-memory collection must never overwrite
	// durable data.
	HasLoaded bool

	NotificationsGranted bool
}

// NewPlacesState returns the initial, not-yet-loaded state.
func NewPlacesState() PlacesState {
	return PlacesState{
		NewPlaceIcon:  models.DefaultPlaceIcon,
		NewPlaceColor: models.DefaultPlaceColor,
	}
}

// PlaceByID returns the place with the given id from the collection.
func (s PlacesState) PlaceByID(id uuid.UUID) (PlaceState, bool) {
	for _, p := range s.Places {
		if p.ID == id {
			return p, true
		}
	}
	return PlaceState{}, false
}

// Snapshot converts the collection to domain values for persistence and
// snapshot publishing.
func (s PlacesState) Snapshot() []models.Place {
	out := make([]models.Place, len(s.Places))
	for i, p := range s.Places {
		out[i] = p.Place()
	}
	return out
}

// BannerEligible reports whether a banner may render: always when never
// snoozed, otherwise only once now has reached the snooze timestamp.
func (s PlacesState) BannerEligible(kind BannerKind, now time.Time) bool {
	var until *time.Time
	if kind == BannerExpired {
		until = s.HideExpiredBannerUntil
	} else {
		until = s.HideExpiringBannerUntil
	}
	return until == nil || !now.Before(*until)
}

// TotalExpired counts expired items across all places.
func (s PlacesState) TotalExpired(now time.Time) int {
	n := 0
	for _, p := range s.Places {
		n += p.ExpiredCount(now)
	}
	return n
}

// TotalExpiringSoon counts items expiring within the window across all
// places.
func (s PlacesState) TotalExpiringSoon(now time.Time, withinDays int) int {
	n := 0
	for _, p := range s.Places {
		n += p.ExpiringSoonCount(now, withinDays)
	}
	return n
}

func clonePlaces(places []PlaceState) []PlaceState {
	out := make([]PlaceState, len(places))
	copy(out, places)
	return out
}

// sortPlaces re-establishes the collection order: case-insensitive by
// name, id string as the stable tie-break. Called after every structural
// mutation.
func sortPlaces(places []PlaceState) {
	sort.SliceStable(places, func(i, j int) bool {
		a := strings.ToLower(places[i].Name)
		b := strings.ToLower(places[j].Name)
		if a == b {
			return places[i].ID.String() < places[j].ID.String()
		}
		return a < b
	})
}

// ShoppingState is the shopping-list feature state.
type ShoppingState struct {
	Items   []models.ShoppingListItem
	Loading bool
	Err     string

	Adding  bool
	NewName string
	NewQty  int
}

// NewShoppingState returns the initial shopping-list state.
func NewShoppingState() ShoppingState {
	return ShoppingState{NewQty: 1}
}

func cloneShoppingItems(items []models.ShoppingListItem) []models.ShoppingListItem {
	out := make([]models.ShoppingListItem, len(items))
	copy(out, items)
	return out
}
