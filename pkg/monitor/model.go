// Package monitor is the interactive terminal UI over the engine: places
// and items on the left, the shopping list on the right, forms for adding
// either. All mutations go through store dispatch; the UI never touches
// the database directly.
package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/varepato/pantrypal/internal/engine"
)

// Panel identifies the focusable regions.
type Panel int

const (
	PanelPlaces Panel = iota
	PanelItems
	PanelShopping
)

// Model is the main Bubble Tea model for the monitor TUI
type Model struct {
	Store *engine.Store
	Shop  *engine.ShoppingStore

	Width  int
	Height int

	ActivePanel Panel
	Cursor      map[Panel]int

	// SelectedPlace is the place whose items the middle panel shows.
	SelectedPlace uuid.UUID

	SearchMode  bool
	SearchInput textinput.Model

	Form *FormState

	SoonWindow int
	Err        error

	ctx context.Context
}

// New builds the monitor model over already-bootstrapped stores.
func New(store *engine.Store, shop *engine.ShoppingStore, soonWindow int) Model {
	search := textinput.New()
	search.Placeholder = "filter items..."
	search.CharLimit = 64

	return Model{
		Store:       store,
		Shop:        shop,
		Cursor:      map[Panel]int{},
		SearchInput: search,
		SoonWindow:  soonWindow,
		ctx:         context.Background(),
	}
}

// Init starts the periodic re-render tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd())
}

type tickMsg time.Time

// tickCmd re-renders periodically so day-boundary changes show up in a
// long-running session.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the TUI and blocks until it exits.
func Run(store *engine.Store, shop *engine.ShoppingStore, soonWindow int) error {
	p := tea.NewProgram(New(store, shop, soonWindow), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// selectedPlaceState resolves the currently selected place, falling back
// to the place under the cursor.
func (m Model) selectedPlaceState() (engine.PlaceState, bool) {
	st := m.Store.State()
	if p, ok := st.PlaceByID(m.SelectedPlace); ok {
		return p, true
	}
	if i := m.Cursor[PanelPlaces]; i < len(st.Places) {
		return st.Places[i], true
	}
	return engine.PlaceState{}, false
}

// clampCursors keeps every cursor inside its list after a mutation.
func (m *Model) clampCursors() {
	st := m.Store.State()
	if m.Cursor[PanelPlaces] >= len(st.Places) {
		m.Cursor[PanelPlaces] = max(0, len(st.Places)-1)
	}
	if p, ok := m.selectedPlaceState(); ok {
		if m.Cursor[PanelItems] >= len(p.VisibleItems()) {
			m.Cursor[PanelItems] = max(0, len(p.VisibleItems())-1)
		}
	}
	shop := m.Shop.State()
	if m.Cursor[PanelShopping] >= len(shop.Items) {
		m.Cursor[PanelShopping] = max(0, len(shop.Items)-1)
	}
}
