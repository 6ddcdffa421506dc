package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/varepato/pantrypal/internal/models"
)

// LoadShoppingList returns all shopping entries, newest-created first with
// a name tie-break.
func (db *DB) LoadShoppingList(ctx context.Context) ([]models.ShoppingListItem, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, desired_quantity, notes, source, status,
		       linked_food_item_id, last_place_id, created_at, updated_at, normalized_key
		FROM shopping_items
		ORDER BY created_at DESC, name COLLATE NOCASE ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("load shopping list: %w", err)
	}
	defer rows.Close()

	var items []models.ShoppingListItem
	for rows.Next() {
		item, err := scanShoppingItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanShoppingItem(r rowScanner) (models.ShoppingListItem, error) {
	var item models.ShoppingListItem
	var id string
	var notes, linked, lastPlace sql.NullString
	if err := r.Scan(&id, &item.Name, &item.DesiredQuantity, &notes, &item.Source,
		&item.Status, &linked, &lastPlace, &item.CreatedAt, &item.UpdatedAt, &item.NormalizedKey); err != nil {
		return item, fmt.Errorf("scan shopping item: %w", err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return item, fmt.Errorf("parse shopping id %q: %w", id, err)
	}
	item.ID = parsed
	item.Notes = notes.String
	if linked.Valid {
		if u, err := uuid.Parse(linked.String); err == nil {
			item.LinkedFoodItemID = &u
		}
	}
	if lastPlace.Valid {
		if u, err := uuid.Parse(lastPlace.String); err == nil {
			item.LastPlaceID = &u
		}
	}
	return item, nil
}

// MergeOrCreateShoppingItem adds name to the shopping list. If an entry
// with the same normalized key exists its quantity is bumped by max(1, qty)
// and its linkage backfilled where previously absent; otherwise a new
// to-buy entry is created. The read-then-write is not guarded against
// concurrent duplicate inserts; single-writer callers only.
func (db *DB) MergeOrCreateShoppingItem(ctx context.Context, name string, qty int, source models.ItemSource, linkedID, placeID *uuid.UUID) (models.ShoppingListItem, error) {
	trimmed := strings.TrimSpace(name)
	key := models.NormalizeKey(trimmed)
	now := time.Now()
	if qty < 1 {
		qty = 1
	}

	existing, err := db.shoppingItemByKey(ctx, key)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return models.ShoppingListItem{}, err
	}

	if err == nil {
		existing.DesiredQuantity += qty
		existing.UpdatedAt = now
		if existing.LinkedFoodItemID == nil {
			existing.LinkedFoodItemID = linkedID
		}
		if existing.LastPlaceID == nil {
			existing.LastPlaceID = placeID
		}
		if err := db.UpdateShoppingItem(ctx, existing); err != nil {
			return models.ShoppingListItem{}, err
		}
		return existing, nil
	}

	item := models.ShoppingListItem{
		ID:               uuid.New(),
		Name:             trimmed,
		DesiredQuantity:  qty,
		Source:           source,
		Status:           models.StatusToBuy,
		LinkedFoodItemID: linkedID,
		LastPlaceID:      placeID,
		CreatedAt:        now,
		UpdatedAt:        now,
		NormalizedKey:    key,
	}
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO shopping_items
			(id, name, desired_quantity, notes, source, status,
			 linked_food_item_id, last_place_id, created_at, updated_at, normalized_key)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID.String(), item.Name, item.DesiredQuantity, item.Notes, string(item.Source),
		string(item.Status), uuidOrNil(item.LinkedFoodItemID), uuidOrNil(item.LastPlaceID),
		item.CreatedAt, item.UpdatedAt, item.NormalizedKey)
	if err != nil {
		return models.ShoppingListItem{}, fmt.Errorf("insert shopping item: %w", err)
	}
	return item, nil
}

func (db *DB) shoppingItemByKey(ctx context.Context, key string) (models.ShoppingListItem, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, name, desired_quantity, notes, source, status,
		       linked_food_item_id, last_place_id, created_at, updated_at, normalized_key
		FROM shopping_items
		WHERE normalized_key = ?
		ORDER BY created_at ASC
		LIMIT 1
	`, key)
	item, err := scanShoppingItem(row)
	if err != nil && errors.Is(err, sql.ErrNoRows) {
		return item, sql.ErrNoRows
	}
	return item, err
}

// UpdateShoppingItem writes an entry back in full.
func (db *DB) UpdateShoppingItem(ctx context.Context, item models.ShoppingListItem) error {
	if item.DesiredQuantity < 1 {
		item.DesiredQuantity = 1
	}
	_, err := db.conn.ExecContext(ctx, `
		UPDATE shopping_items
		SET name = ?, desired_quantity = ?, notes = ?, source = ?, status = ?,
		    linked_food_item_id = ?, last_place_id = ?, updated_at = ?, normalized_key = ?
		WHERE id = ?
	`, item.Name, item.DesiredQuantity, item.Notes, string(item.Source), string(item.Status),
		uuidOrNil(item.LinkedFoodItemID), uuidOrNil(item.LastPlaceID), item.UpdatedAt,
		item.NormalizedKey, item.ID.String())
	if err != nil {
		return fmt.Errorf("update shopping item: %w", err)
	}
	return nil
}

// DeleteShoppingItems removes entries by id.
func (db *DB) DeleteShoppingItems(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders, args := idArgs(ids)
	_, err := db.conn.ExecContext(ctx,
		"DELETE FROM shopping_items WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return fmt.Errorf("delete shopping items: %w", err)
	}
	return nil
}

// MarkPurchased flips the purchase status of entries, touching updated_at.
func (db *DB) MarkPurchased(ctx context.Context, ids []uuid.UUID, purchased bool) error {
	if len(ids) == 0 {
		return nil
	}
	status := models.StatusToBuy
	if purchased {
		status = models.StatusPurchased
	}
	placeholders, args := idArgs(ids)
	args = append([]interface{}{string(status), time.Now()}, args...)
	_, err := db.conn.ExecContext(ctx,
		"UPDATE shopping_items SET status = ?, updated_at = ? WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return fmt.Errorf("mark purchased: %w", err)
	}
	return nil
}

func idArgs(ids []uuid.UUID) (string, []interface{}) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id.String()
	}
	return placeholders, args
}

func uuidOrNil(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return id.String()
}
