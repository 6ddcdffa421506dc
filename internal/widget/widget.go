// Package widget computes and publishes the aggregate snapshot consumed by
// the read-only summary widget.
package widget

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/varepato/pantrypal/internal/expiry"
	"github.com/varepato/pantrypal/internal/models"
)

// DefaultFile is the snapshot slot under the base directory.
const DefaultFile = ".pantry/widget.json"

// Build derives the snapshot counts from the full places collection.
// Negative quantities never contribute to the total; items without a date
// count as neither expiring nor expired.
func Build(places []models.Place, soonWindow int, now time.Time) models.WidgetSnapshot {
	snap := models.WidgetSnapshot{UpdatedAt: now}
	for _, place := range places {
		for _, item := range place.Items {
			if item.Quantity > 0 {
				snap.TotalItems += item.Quantity
			}
			d, ok := expiry.DaysUntil(item.ExpirationDate, now)
			if !ok {
				continue
			}
			switch {
			case d < 0:
				snap.Expired++
			case d <= soonWindow:
				snap.ExpiringSoon++
			}
		}
	}
	return snap
}

// FileStore publishes snapshots to a shared JSON slot on disk.
type FileStore struct {
	Path string
}

// Publish writes the snapshot atomically (temp file + rename), so the
// widget reader never observes a torn write.
func (s FileStore) Publish(snap models.WidgetSnapshot) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "widget-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, s.Path)
}

// Load reads the published snapshot. A missing slot yields all zeros, the
// same fallback the widget renderer uses before the first publish.
func (s FileStore) Load() (models.WidgetSnapshot, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.WidgetSnapshot{}, nil
		}
		return models.WidgetSnapshot{}, err
	}
	var snap models.WidgetSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.WidgetSnapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// NextRefresh returns the widget's next scheduled re-render: 03:05 local
// time, tomorrow if that is already past today.
func NextRefresh(now time.Time) time.Time {
	y, m, d := now.Date()
	next := time.Date(y, m, d, 3, 5, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// TargetRoute picks the deep-link route a widget tap should open: expired
// wins over expiring-soon, which wins over the plain item list.
func TargetRoute(snap models.WidgetSnapshot) string {
	switch {
	case snap.Expired > 0:
		return "expired"
	case snap.ExpiringSoon > 0:
		return "expiring"
	default:
		return "items"
	}
}
