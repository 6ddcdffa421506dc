package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/varepato/pantrypal/internal/config"
	"github.com/varepato/pantrypal/internal/db"
	"github.com/varepato/pantrypal/internal/engine"
	"github.com/varepato/pantrypal/internal/logging"
	"github.com/varepato/pantrypal/internal/models"
	"github.com/varepato/pantrypal/internal/reminder"
	"github.com/varepato/pantrypal/internal/widget"
)

// buildDeps wires the live collaborators for an engine store.
func buildDeps(database *db.DB, cfg config.Settings) engine.Deps {
	return engine.Deps{
		Gateway:    database,
		Scheduler:  reminder.NewStoreScheduler(database),
		Snapshots:  widget.FileStore{Path: cfg.WidgetPath},
		Logger:     logging.New(database.BaseDir()),
		Policy:     cfg.Policy(),
		SoonWindow: cfg.SoonWindowDays,
	}
}

// openStore opens the database and returns a bootstrapped places store.
// The caller owns both: store.Wait() then database.Close().
func openStore(ctx context.Context) (*engine.Store, *db.DB, config.Settings, error) {
	database, err := db.Open(getBaseDir())
	if err != nil {
		return nil, nil, config.Settings{}, err
	}
	cfg, _ := config.Load(getBaseDir())

	store := engine.NewStore(buildDeps(database, cfg))
	if err := store.Bootstrap(ctx); err != nil {
		store.Wait()
		database.Close()
		return nil, nil, config.Settings{}, fmt.Errorf("load places: %w", err)
	}
	return store, database, cfg, nil
}

// openShopping opens the database and returns a bootstrapped shopping store.
func openShopping(ctx context.Context) (*engine.ShoppingStore, *db.DB, error) {
	database, err := db.Open(getBaseDir())
	if err != nil {
		return nil, nil, err
	}
	cfg, _ := config.Load(getBaseDir())

	store := engine.NewShoppingStore(buildDeps(database, cfg))
	if err := store.Bootstrap(ctx); err != nil {
		store.Wait()
		database.Close()
		return nil, nil, fmt.Errorf("load shopping list: %w", err)
	}
	return store, database, nil
}

// resolvePlace finds a place by case-insensitive name, or by id prefix as
// a fallback for duplicate names.
func resolvePlace(st engine.PlacesState, nameOrID string) (engine.PlaceState, error) {
	needle := strings.ToLower(strings.TrimSpace(nameOrID))
	for _, p := range st.Places {
		if strings.ToLower(p.Name) == needle {
			return p, nil
		}
	}
	for _, p := range st.Places {
		if strings.HasPrefix(p.ID.String(), needle) {
			return p, nil
		}
	}
	return engine.PlaceState{}, fmt.Errorf("no place named %q", nameOrID)
}

// resolveItem finds an item in a place by case-insensitive name, or by id
// prefix.
func resolveItem(p engine.PlaceState, nameOrID string) (models.FoodItem, error) {
	needle := strings.ToLower(strings.TrimSpace(nameOrID))
	for _, it := range p.Items {
		if strings.ToLower(it.Name) == needle {
			return it, nil
		}
	}
	for _, it := range p.Items {
		if strings.HasPrefix(it.ID.String(), needle) {
			return it, nil
		}
	}
	return models.FoodItem{}, fmt.Errorf("no item named %q in %s", nameOrID, p.Name)
}

// resolveShoppingItems maps name arguments to shopping entries by
// normalized key, or by id prefix.
func resolveShoppingItems(st engine.ShoppingState, names []string) ([]models.ShoppingListItem, error) {
	var out []models.ShoppingListItem
	for _, name := range names {
		key := models.NormalizeKey(name)
		found := false
		for _, it := range st.Items {
			if it.NormalizedKey == key || strings.HasPrefix(it.ID.String(), strings.ToLower(name)) {
				out = append(out, it)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("no shopping entry %q", name)
		}
	}
	return out, nil
}
