// Package reminder implements the expiration-reminder policy: deterministic
// identifiers, fire-time computation, and the scheduler contract.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/varepato/pantrypal/internal/models"
)

// Defaults for the scheduling policy.
const (
	DefaultLeadDays = 2
	DefaultFireHour = 9 // 9:00 AM local
)

// Kind distinguishes the two reminders an item can carry.
type Kind string

const (
	KindPreExpiry Kind = "pre"
	KindDayOf     Kind = "day"
)

// ID returns the deterministic reminder identifier for an item and kind.
// Stable ids make reschedule and cancel idempotent without tracking
// opaque handles.
func ID(itemID uuid.UUID, kind Kind) string {
	return "item-" + itemID.String() + "-" + string(kind)
}

// IDsForItem returns both reminder ids for an item.
func IDsForItem(itemID uuid.UUID) []string {
	return []string{ID(itemID, KindPreExpiry), ID(itemID, KindDayOf)}
}

// Request is a reminder to be scheduled.
type Request struct {
	ID     string
	Title  string
	Body   string
	FireAt time.Time
}

// Scheduler is the consumed contract for local time-based reminders.
// Schedule replaces any pending reminder with the same id and must not
// create one whose fire time is already past (it clears a stale pending
// reminder with that id instead). All failures stay at this boundary.
type Scheduler interface {
	RequestAuthorization(ctx context.Context) (bool, error)
	Schedule(ctx context.Context, id, title, body string, fireAt time.Time) error
	Cancel(ctx context.Context, ids []string) error
}

// Policy computes reminder requests for food items.
type Policy struct {
	LeadDays int // days before expiration for the pre-expiry reminder
	FireHour int // local hour both reminders fire at
}

// DefaultPolicy returns the stock 2-days-ahead, 9 AM policy.
func DefaultPolicy() Policy {
	return Policy{LeadDays: DefaultLeadDays, FireHour: DefaultFireHour}
}

// RequestsForItem returns the pre-expiry and day-of requests for an item,
// or nil when the item has no expiration date.
func (p Policy) RequestsForItem(item models.FoodItem) []Request {
	if item.ExpirationDate == nil {
		return nil
	}
	exp := *item.ExpirationDate
	expLabel := exp.Format("Jan 2, 2006")
	return []Request{
		{
			ID:     ID(item.ID, KindPreExpiry),
			Title:  fmt.Sprintf("Expiring soon: %s", item.Name),
			Body:   fmt.Sprintf("Expires on %s", expLabel),
			FireAt: p.fireAt(exp.AddDate(0, 0, -p.LeadDays)),
		},
		{
			ID:     ID(item.ID, KindDayOf),
			Title:  fmt.Sprintf("Expires today: %s", item.Name),
			Body:   fmt.Sprintf("%s expires on %s", item.Name, expLabel),
			FireAt: p.fireAt(exp),
		},
	}
}

// PreExpiryRequest returns only the pre-expiry request, or nil without a
// date. Used where the day-of reminder is the integrating caller's job.
func (p Policy) PreExpiryRequest(item models.FoodItem) *Request {
	reqs := p.RequestsForItem(item)
	if reqs == nil {
		return nil
	}
	return &reqs[0]
}

// fireAt pins a fire time to FireHour local time on the target day.
func (p Policy) fireAt(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, p.FireHour, 0, 0, 0, day.Location())
}
