package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ItemSource records what produced a shopping-list entry.
type ItemSource string

const (
	SourceExpiredCleanup ItemSource = "expired_cleanup"
	SourceDepleted       ItemSource = "depleted"
	SourceManual         ItemSource = "manual"
)

// IsValidSource reports whether s is a known shopping-list source.
func IsValidSource(s ItemSource) bool {
	switch s {
	case SourceExpiredCleanup, SourceDepleted, SourceManual:
		return true
	}
	return false
}

// ItemStatus is the purchase state of a shopping-list entry.
type ItemStatus string

const (
	StatusToBuy     ItemStatus = "to_buy"
	StatusPurchased ItemStatus = "purchased"
)

// Defaults for newly created places.
const (
	DefaultPlaceIcon  = "box"
	DefaultPlaceColor = "#3B82F6"
)

// FoodItem is a tracked quantity of a named food inside a place.
// An item belongs to exactly one place; Quantity never goes below zero.
type FoodItem struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Quantity       int        `json:"quantity"`
	Notes          string     `json:"notes,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

// Place is a named storage location (pantry, fridge, freezer) owning items.
// Item IDs are unique within a place.
type Place struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	IconName string     `json:"icon_name"`
	ColorHex string     `json:"color_hex"`
	Items    []FoodItem `json:"items"`
}

// ItemByID returns a pointer to the owned item with the given id, or nil.
func (p *Place) ItemByID(id uuid.UUID) *FoodItem {
	for i := range p.Items {
		if p.Items[i].ID == id {
			return &p.Items[i]
		}
	}
	return nil
}

// ShoppingListItem is a derived "to buy" entry. Entries with the same
// normalized key are merged rather than duplicated (see NormalizeKey).
type ShoppingListItem struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	DesiredQuantity  int        `json:"desired_quantity"`
	Notes            string     `json:"notes,omitempty"`
	Source           ItemSource `json:"source"`
	Status           ItemStatus `json:"status"`
	LinkedFoodItemID *uuid.UUID `json:"linked_food_item_id,omitempty"`
	LastPlaceID      *uuid.UUID `json:"last_place_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	NormalizedKey    string     `json:"normalized_key"`
}

// NormalizeKey lowercases a name and collapses runs of whitespace to a
// single space so "  Milk   2% " and "milk 2%" merge to the same entry.
func NormalizeKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// WidgetSnapshot is the aggregate summary published for the home-screen
// widget. Never authoritative: always rederivable from the places.
type WidgetSnapshot struct {
	TotalItems   int       `json:"total_items"`
	ExpiringSoon int       `json:"expiring_soon"`
	Expired      int       `json:"expired"`
	UpdatedAt    time.Time `json:"updated_at"`
}
