package reminder

import (
	"context"
	"time"

	"github.com/varepato/pantrypal/internal/db"
)

// StoreScheduler is the live Scheduler: pending reminders live in the
// sqlite store and 'pantry remind' delivers the due ones to the console.
type StoreScheduler struct {
	DB  *db.DB
	Now func() time.Time
}

// NewStoreScheduler returns a scheduler over the given database.
func NewStoreScheduler(d *db.DB) *StoreScheduler {
	return &StoreScheduler{DB: d, Now: time.Now}
}

// RequestAuthorization always grants; console delivery needs no permission.
func (s *StoreScheduler) RequestAuthorization(ctx context.Context) (bool, error) {
	return true, nil
}

// Schedule stores a reminder, replacing any pending one with the same id.
// A fire time at or before now is not scheduled; any stale pending
// reminder under that id is cleared instead, so a backdated expiration
// never produces an immediate notification.
func (s *StoreScheduler) Schedule(ctx context.Context, id, title, body string, fireAt time.Time) error {
	if !fireAt.After(s.Now()) {
		return s.DB.DeleteReminders(ctx, []string{id})
	}
	return s.DB.UpsertReminder(ctx, db.PendingReminder{ID: id, Title: title, Body: body, FireAt: fireAt})
}

// Cancel removes pending reminders by id.
func (s *StoreScheduler) Cancel(ctx context.Context, ids []string) error {
	return s.DB.DeleteReminders(ctx, ids)
}
