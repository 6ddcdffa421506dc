package expiry

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/varepato/pantrypal/internal/models"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &t
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.Local)

	tests := []struct {
		name     string
		date     *time.Time
		wantDays int
		wantOK   bool
	}{
		{"no date", nil, 0, false},
		{"today", date(2026, 3, 10), 0, true},
		{"tomorrow", date(2026, 3, 11), 1, true},
		{"yesterday", date(2026, 3, 9), -1, true},
		{"next week", date(2026, 3, 17), 7, true},
		{"last month", date(2026, 2, 10), -28, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DaysUntil(tt.date, now)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.wantDays {
				t.Errorf("days = %d, want %d", got, tt.wantDays)
			}
		})
	}
}

func TestDaysUntilIgnoresTimeOfDay(t *testing.T) {
	// 23:59 today vs 00:01 tomorrow is still one calendar day.
	now := time.Date(2026, 3, 10, 23, 59, 0, 0, time.Local)
	exp := time.Date(2026, 3, 11, 0, 1, 0, 0, time.Local)

	d, ok := DaysUntil(&exp, now)
	if !ok || d != 1 {
		t.Errorf("DaysUntil = %d,%v, want 1,true", d, ok)
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	if IsExpired(nil, now) {
		t.Error("item without a date must never be expired")
	}
	if IsExpired(date(2026, 3, 10), now) {
		t.Error("expiring today is not expired")
	}
	if !IsExpired(date(2026, 3, 9), now) {
		t.Error("yesterday should be expired")
	}
}

func TestIsExpiringSoon(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name   string
		date   *time.Time
		within int
		want   bool
	}{
		{"no date", nil, 3, false},
		{"today", date(2026, 3, 10), 3, true},
		{"window edge", date(2026, 3, 13), 3, true},
		{"past window", date(2026, 3, 14), 3, false},
		{"already expired", date(2026, 3, 9), 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsExpiringSoon(tt.date, now, tt.within); got != tt.want {
				t.Errorf("IsExpiringSoon = %v, want %v", got, tt.want)
			}
		})
	}
}

func testPlaces() []models.Place {
	return []models.Place{
		{
			ID:   uuid.New(),
			Name: "Fridge",
			Items: []models.FoodItem{
				{ID: uuid.New(), Name: "Milk", Quantity: 1, ExpirationDate: date(2026, 3, 12)},
				{ID: uuid.New(), Name: "Old Yogurt", Quantity: 2, ExpirationDate: date(2026, 3, 5)},
				{ID: uuid.New(), Name: "Salt", Quantity: 1},
			},
		},
		{
			ID:   uuid.New(),
			Name: "Pantry",
			Items: []models.FoodItem{
				{ID: uuid.New(), Name: "Stale Bread", Quantity: 1, ExpirationDate: date(2026, 3, 8)},
				{ID: uuid.New(), Name: "Eggs", Quantity: 12, ExpirationDate: date(2026, 3, 10)},
			},
		},
	}
}

func TestBuildRowsExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	rows := BuildRows(KindExpired, DefaultSoonWindowDays, testPlaces(), now)

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// Most overdue first.
	if rows[0].Name != "Old Yogurt" || rows[1].Name != "Stale Bread" {
		t.Errorf("order = %s, %s; want Old Yogurt, Stale Bread", rows[0].Name, rows[1].Name)
	}
	if rows[0].PlaceName != "Fridge" {
		t.Errorf("place = %s, want Fridge", rows[0].PlaceName)
	}
}

func TestBuildRowsExpiringSoon(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	rows := BuildRows(KindExpiringSoon, DefaultSoonWindowDays, testPlaces(), now)

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// Soonest first: Eggs today, Milk in 2d. Salt (no date) excluded.
	if rows[0].Name != "Eggs" || rows[1].Name != "Milk" {
		t.Errorf("order = %s, %s; want Eggs, Milk", rows[0].Name, rows[1].Name)
	}
	if rows[0].DaysUntil != 0 || rows[1].DaysUntil != 2 {
		t.Errorf("days = %d, %d; want 0, 2", rows[0].DaysUntil, rows[1].DaysUntil)
	}
}

func TestBuildRowsEmpty(t *testing.T) {
	now := time.Now()
	if rows := BuildRows(KindExpired, 3, nil, now); len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}
