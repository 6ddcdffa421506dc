package db

import (
	"context"
	"fmt"
	"time"
)

// PendingReminder is a scheduled local reminder row.
type PendingReminder struct {
	ID     string
	Title  string
	Body   string
	FireAt time.Time
}

// UpsertReminder schedules a reminder, replacing any pending one with the
// same id.
func (db *DB) UpsertReminder(ctx context.Context, r PendingReminder) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO reminders (id, title, body, fire_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, body = excluded.body, fire_at = excluded.fire_at
	`, r.ID, r.Title, r.Body, r.FireAt)
	if err != nil {
		return fmt.Errorf("upsert reminder %s: %w", r.ID, err)
	}
	return nil
}

// DeleteReminders removes pending reminders by id. Unknown ids are ignored.
func (db *DB) DeleteReminders(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := ""
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		if i > 0 {
			placeholders += ","
		}
		placeholders += "?"
		args[i] = id
	}
	_, err := db.conn.ExecContext(ctx, "DELETE FROM reminders WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return fmt.Errorf("delete reminders: %w", err)
	}
	return nil
}

// ListReminders returns all pending reminders ordered by fire time.
func (db *DB) ListReminders(ctx context.Context) ([]PendingReminder, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, title, body, fire_at FROM reminders ORDER BY fire_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var out []PendingReminder
	for rows.Next() {
		var r PendingReminder
		if err := rows.Scan(&r.ID, &r.Title, &r.Body, &r.FireAt); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DueReminders returns pending reminders whose fire time is at or before now.
func (db *DB) DueReminders(ctx context.Context, now time.Time) ([]PendingReminder, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, title, body, fire_at FROM reminders WHERE fire_at <= ? ORDER BY fire_at ASC
	`, now)
	if err != nil {
		return nil, fmt.Errorf("due reminders: %w", err)
	}
	defer rows.Close()

	var out []PendingReminder
	for rows.Next() {
		var r PendingReminder
		if err := rows.Scan(&r.ID, &r.Title, &r.Body, &r.FireAt); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
