package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/varepato/pantrypal/internal/models"
)

// LoadPlaces returns every place with its items. Places come back ordered
// case-insensitively by name (id as tie-break); items keep insertion order.
func (db *DB) LoadPlaces(ctx context.Context) ([]models.Place, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, icon_name, color_hex
		FROM places
		ORDER BY name COLLATE NOCASE ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("load places: %w", err)
	}
	defer rows.Close()

	var places []models.Place
	for rows.Next() {
		var p models.Place
		var id string
		if err := rows.Scan(&id, &p.Name, &p.IconName, &p.ColorHex); err != nil {
			return nil, fmt.Errorf("scan place: %w", err)
		}
		p.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse place id %q: %w", id, err)
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range places {
		items, err := db.loadItems(ctx, places[i].ID)
		if err != nil {
			return nil, err
		}
		places[i].Items = items
	}
	return places, nil
}

func (db *DB) loadItems(ctx context.Context, placeID uuid.UUID) ([]models.FoodItem, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, quantity, notes, expiration_date
		FROM food_items
		WHERE place_id = ?
		ORDER BY position ASC, id ASC
	`, placeID.String())
	if err != nil {
		return nil, fmt.Errorf("load items for %s: %w", placeID, err)
	}
	defer rows.Close()

	var items []models.FoodItem
	for rows.Next() {
		var it models.FoodItem
		var id string
		var notes sql.NullString
		var exp sql.NullTime
		if err := rows.Scan(&id, &it.Name, &it.Quantity, &notes, &exp); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse item id %q: %w", id, err)
		}
		it.Notes = notes.String
		if exp.Valid {
			t := exp.Time
			it.ExpirationDate = &t
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ReplaceAll replaces the whole persisted collection with the snapshot,
// atomically: either every row is written or none are. As a safety net an
// empty snapshot never overwrites a non-empty store; the caller gates on
// its load lifecycle, this guard catches anything that slips through.
func (db *DB) ReplaceAll(ctx context.Context, places []models.Place) error {
	if len(places) == 0 {
		var existing int
		if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM places").Scan(&existing); err != nil {
			return fmt.Errorf("count places: %w", err)
		}
		if existing > 0 {
			return nil
		}
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM food_items"); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM places"); err != nil {
		return fmt.Errorf("clear places: %w", err)
	}

	for _, p := range places {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO places (id, name, icon_name, color_hex)
			VALUES (?, ?, ?, ?)
		`, p.ID.String(), p.Name, p.IconName, p.ColorHex); err != nil {
			return fmt.Errorf("insert place %s: %w", p.Name, err)
		}
		for pos, it := range p.Items {
			var exp interface{}
			if it.ExpirationDate != nil {
				exp = *it.ExpirationDate
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO food_items (id, place_id, name, quantity, notes, expiration_date, position)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, it.ID.String(), p.ID.String(), it.Name, it.Quantity, it.Notes, exp, pos); err != nil {
				return fmt.Errorf("insert item %s: %w", it.Name, err)
			}
		}
	}

	return tx.Commit()
}
