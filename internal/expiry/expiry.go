// Package expiry holds the pure expiration math: day counts, expired /
// expiring-soon predicates, and the row builder for the expiration views.
package expiry

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/varepato/pantrypal/internal/models"
)

// DefaultSoonWindowDays is the default "expiring soon" window.
const DefaultSoonWindowDays = 3

// DaysUntil returns the calendar-day difference from now to date.
// The second return is false when the item has no expiration date.
// Negative values mean the date is in the past.
func DaysUntil(date *time.Time, now time.Time) (int, bool) {
	if date == nil {
		return 0, false
	}
	from := startOfDay(now)
	to := startOfDay(*date)
	// Round to absorb DST offsets inside the span.
	return int(math.Round(to.Sub(from).Hours() / 24)), true
}

// IsExpired reports whether date is strictly before today.
// An item with no date is never expired.
func IsExpired(date *time.Time, now time.Time) bool {
	d, ok := DaysUntil(date, now)
	return ok && d < 0
}

// IsExpiringSoon reports whether date falls within the next withinDays
// calendar days (today included).
func IsExpiringSoon(date *time.Time, now time.Time, withinDays int) bool {
	d, ok := DaysUntil(date, now)
	return ok && d >= 0 && d <= withinDays
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Kind selects which expiration view a row list is built for.
type Kind int

const (
	KindExpired Kind = iota
	KindExpiringSoon
)

func (k Kind) String() string {
	if k == KindExpired {
		return "expired"
	}
	return "expiring soon"
}

// Row is one line of an expiration view: an item flattened together with
// the metadata of the place that owns it.
type Row struct {
	ItemID         uuid.UUID
	PlaceID        uuid.UUID
	PlaceName      string
	PlaceIcon      string
	Name           string
	Quantity       int
	ExpirationDate *time.Time
	DaysUntil      int
	HasDays        bool
}

// BuildRows flattens all items across places, filters them by kind and
// sorts them for display. Expired rows sort most-overdue first; soon rows
// sort soonest first, with dateless rows last.
func BuildRows(kind Kind, withinDays int, places []models.Place, now time.Time) []Row {
	var rows []Row
	for _, place := range places {
		for _, item := range place.Items {
			d, ok := DaysUntil(item.ExpirationDate, now)

			include := false
			switch kind {
			case KindExpired:
				include = ok && d < 0
			case KindExpiringSoon:
				include = ok && d >= 0 && d <= withinDays
			}
			if !include {
				continue
			}

			rows = append(rows, Row{
				ItemID:         item.ID,
				PlaceID:        place.ID,
				PlaceName:      place.Name,
				PlaceIcon:      place.IconName,
				Name:           item.Name,
				Quantity:       item.Quantity,
				ExpirationDate: item.ExpirationDate,
				DaysUntil:      d,
				HasDays:        ok,
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return sortKey(rows[i], kind) < sortKey(rows[j], kind)
	})
	return rows
}

// sortKey maps a missing day count to a sentinel: zero for the expired
// view, +infinity for the soon view so dateless items sort last.
func sortKey(r Row, kind Kind) int {
	if !r.HasDays {
		if kind == KindExpired {
			return 0
		}
		return math.MaxInt
	}
	return r.DaysUntil
}
