package engine

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/varepato/pantrypal/internal/expiry"
	"github.com/varepato/pantrypal/internal/models"
	"github.com/varepato/pantrypal/internal/reminder"
	"github.com/varepato/pantrypal/internal/widget"
)

// reducePlaces is the root state machine for the whole collection: load
// lifecycle, place add/delete, navigation, banners, the cleanup workflow
// and child place integration.
func reducePlaces(st PlacesState, action Action, d Deps) (PlacesState, []Effect) {
	switch a := action.(type) {
	case LoadRequested:
		return st, []Effect{LoadPlacesEffect{}}

	case LoadSucceeded:
		places := make([]PlaceState, len(a.Places))
		for i, p := range a.Places {
			places[i] = NewPlaceState(p)
		}
		sortPlaces(places)
		st.Places = places
		st.HasLoaded = true

		// Resweep every reminder; schedule replaces by id, so redundant
		// calls for unchanged items are harmless.
		effects := rescheduleEffects(allItems(st), d)
		effects = append(effects, publishEffect(st, d))
		return st, effects

	case LoadFailed:
		// Collection stays at its prior in-memory value.
		return st, nil

	case AddPlaceRequested:
		st.AddingPlace = true
		return st, nil

	case PlaceFormChanged:
		st.NewPlaceName = a.Name
		st.NewPlaceIcon = a.Icon
		st.NewPlaceColor = a.Color
		return st, nil

	case ConfirmAddPlace:
		trimmed := strings.TrimSpace(st.NewPlaceName)
		if trimmed == "" {
			return st, nil
		}

		icon := st.NewPlaceIcon
		if icon == "" {
			icon = models.DefaultPlaceIcon
		}
		color := st.NewPlaceColor
		if color == "" {
			color = models.DefaultPlaceColor
		}
		place := PlaceState{
			ID:         d.NewID(),
			Name:       trimmed,
			IconName:   icon,
			ColorHex:   color,
			NewItemQty: 1,
		}

		places := append(clonePlaces(st.Places), place)
		sortPlaces(places)
		st.Places = places

		st.AddingPlace = false
		st.NewPlaceName = ""
		st.NewPlaceIcon = models.DefaultPlaceIcon
		st.NewPlaceColor = models.DefaultPlaceColor

		return st, persistEffects(st, d)

	case DeletePlaces:
		doomed := make(map[string]bool, len(a.PlaceIDs))
		for _, id := range a.PlaceIDs {
			doomed[id.String()] = true
		}

		var kept []PlaceState
		var cancelIDs []string
		for _, p := range st.Places {
			if !doomed[p.ID.String()] {
				kept = append(kept, p)
				continue
			}
			for _, it := range p.Items {
				if it.ExpirationDate != nil {
					cancelIDs = append(cancelIDs, reminder.IDsForItem(it.ID)...)
				}
			}
		}
		sortPlaces(kept)
		st.Places = kept

		effects := persistEffects(st, d)
		if len(cancelIDs) > 0 {
			effects = append(effects, CancelRemindersEffect{IDs: cancelIDs})
		}
		return st, effects

	case DismissBanner:
		tomorrow := startOfDay(d.Now()).AddDate(0, 0, 1)
		if a.Kind == BannerExpired {
			st.HideExpiredBannerUntil = &tomorrow
		} else {
			st.HideExpiringBannerUntil = &tomorrow
		}
		return st, nil

	case BannerTapped:
		kind := expiry.KindExpired
		if a.Kind == BannerExpiringSoon {
			kind = expiry.KindExpiringSoon
		}
		rows := expiry.BuildRows(kind, d.SoonWindow, st.Snapshot(), d.Now())
		st.Path = append(st.Path, ExpirationFrame{ID: d.NewID(), Kind: kind, Days: d.SoonWindow, Rows: rows})
		return st, nil

	case OpenAllItems:
		st.Path = nil
		return st, nil

	case RequestNotificationPermission:
		return st, []Effect{RequestAuthorizationEffect{}}

	case NotificationPermissionResponse:
		st.NotificationsGranted = a.Granted
		return st, nil

	case PushPlace:
		if p, ok := st.PlaceByID(a.PlaceID); ok {
			st.Path = append(st.Path, PlaceFrame{Place: p})
		}
		return st, nil

	case PopFrame:
		if n := len(st.Path); n > 0 {
			st.Path = st.Path[:n-1]
		}
		return st, nil

	case PlaceMsg:
		return reducePlaceMsg(st, a, d)

	case ExpirationMsg:
		return reduceExpirationMsg(st, a, d)
	}

	return st, nil
}

// reducePlaceMsg runs a child action against one place and integrates
// the result: replace-by-id, resort, persist, reschedule.
func reducePlaceMsg(st PlacesState, msg PlaceMsg, d Deps) (PlacesState, []Effect) {
	child, frameIdx, ok := childPlace(st, msg.PlaceID)
	if !ok {
		return st, nil
	}

	next, childEffects, delegate := reducePlace(child, msg.Action, d)

	if frameIdx >= 0 {
		path := make([]Frame, len(st.Path))
		copy(path, st.Path)
		path[frameIdx] = PlaceFrame{Place: next}
		st.Path = path
	}

	if delegate != PlaceDelegateUpdated {
		return st, childEffects
	}

	// Integrate the updated child into the collection.
	places := clonePlaces(st.Places)
	for i := range places {
		if places[i].ID == next.ID {
			places[i] = next
			break
		}
	}
	sortPlaces(places)
	st.Places = places

	effects := childEffects
	effects = append(effects, persistEffects(st, d)...)
	// Reschedule every reminder in the updated place. Redundant for
	// unchanged items, but scheduling is idempotent by id.
	effects = append(effects, rescheduleEffects(next.Items, d)...)
	return st, effects
}

// reduceExpirationMsg handles actions from an expiration screen frame.
func reduceExpirationMsg(st PlacesState, msg ExpirationMsg, d Deps) (PlacesState, []Effect) {
	switch msg.Action.(type) {
	case CloseTapped:
		st.Path = popFromFrame(st.Path, msg.FrameID)
		return st, nil

	case CleanupAllTapped:
		now := d.Now()
		places := clonePlaces(st.Places)
		var cancelIDs []string
		for i := range places {
			var kept []models.FoodItem
			for _, it := range places[i].Items {
				if expiry.IsExpired(it.ExpirationDate, now) {
					cancelIDs = append(cancelIDs, reminder.IDsForItem(it.ID)...)
					continue
				}
				kept = append(kept, it)
			}
			places[i].Items = kept
		}
		sortPlaces(places)
		st.Places = places
		st.Path = popFromFrame(st.Path, msg.FrameID)

		effects := persistEffects(st, d)
		if len(cancelIDs) > 0 {
			effects = append(effects, CancelRemindersEffect{IDs: cancelIDs})
		}
		return st, effects
	}

	return st, nil
}

// childPlace finds the authoritative state for a place: the navigation
// frame when one is pushed (it carries live form state), otherwise the
// collection entry. frameIdx is -1 when no frame holds the place.
func childPlace(st PlacesState, id uuid.UUID) (PlaceState, int, bool) {
	for i := len(st.Path) - 1; i >= 0; i-- {
		if f, ok := st.Path[i].(PlaceFrame); ok && f.Place.ID == id {
			return f.Place, i, true
		}
	}
	for _, p := range st.Places {
		if p.ID == id {
			return p, -1, true
		}
	}
	return PlaceState{}, -1, false
}

// popFromFrame drops the frame with the given id and everything above it.
func popFromFrame(path []Frame, frameID uuid.UUID) []Frame {
	for i, f := range path {
		if ef, ok := f.(ExpirationFrame); ok && ef.ID == frameID {
			return path[:i]
		}
	}
	return path
}

// persistEffects emits the snapshot write plus the widget publish, gated:
// before the initial load completes an empty collection is never written,
// so a slow load can't be raced into wiping durable data.
func persistEffects(st PlacesState, d Deps) []Effect {
	if !st.HasLoaded && len(st.Places) == 0 {
		return nil
	}
	return []Effect{
		PersistPlacesEffect{Snapshot: st.Snapshot()},
		publishEffect(st, d),
	}
}

func publishEffect(st PlacesState, d Deps) Effect {
	return PublishSnapshotEffect{Snapshot: widget.Build(st.Snapshot(), d.SoonWindow, d.Now())}
}

// rescheduleEffects emits schedule requests for every dated item.
func rescheduleEffects(items []models.FoodItem, d Deps) []Effect {
	var effects []Effect
	for _, it := range items {
		for _, req := range d.Policy.RequestsForItem(it) {
			effects = append(effects, ScheduleReminderEffect{Request: req})
		}
	}
	return effects
}

func allItems(st PlacesState) []models.FoodItem {
	var items []models.FoodItem
	for _, p := range st.Places {
		items = append(items, p.Items...)
	}
	return items
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
