package monitor

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/varepato/pantrypal/internal/engine"
	"github.com/varepato/pantrypal/internal/models"
)

// Update is the Bubble Tea message loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tickMsg:
		return m, tickCmd()
	}

	if m.Form != nil {
		return m.updateForm(msg)
	}

	if m.SearchMode {
		return m.updateSearch(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(key)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.Form.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form.Form = f
	}

	switch m.Form.Form.State {
	case huh.StateCompleted:
		m.submitForm()
		m.Form = nil
		m.clampCursors()
	case huh.StateAborted:
		m.Form = nil
	}
	return m, cmd
}

func (m *Model) submitForm() {
	fs := m.Form
	switch fs.Kind {
	case FormAddPlace:
		m.Store.Dispatch(m.ctx, engine.PlaceFormChanged{Name: fs.Name, Icon: fs.Icon, Color: fs.Color})
		m.Store.Dispatch(m.ctx, engine.ConfirmAddPlace{})

	case FormAddItem:
		place, ok := m.selectedPlaceState()
		if !ok {
			return
		}
		m.Store.Dispatch(m.ctx, engine.PushPlace{PlaceID: place.ID})
		m.Store.Dispatch(m.ctx, engine.PlaceMsg{PlaceID: place.ID, Action: engine.AddItemRequested{}})
		m.Store.Dispatch(m.ctx, engine.PlaceMsg{PlaceID: place.ID, Action: engine.ItemFormChanged{
			Name:   fs.Name,
			Qty:    fs.QtyValue(),
			Notes:  fs.Notes,
			Expiry: fs.ExpiresValue(),
		}})
		m.Store.Dispatch(m.ctx, engine.PlaceMsg{PlaceID: place.ID, Action: engine.ConfirmAddItem{}})
		m.Store.Dispatch(m.ctx, engine.PopFrame{})

	case FormAddShopping:
		m.Shop.Dispatch(m.ctx, engine.ShopMergeOrCreate{
			Name:   fs.Name,
			Qty:    fs.QtyValue(),
			Source: models.SourceManual,
		})
	}
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.SearchMode = false
			m.SearchInput.SetValue("")
			m.SearchInput.Blur()
			return m, nil
		case "enter":
			m.SearchMode = false
			m.SearchInput.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	m.Cursor[PanelItems] = 0
	return m, cmd
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.ActivePanel = (m.ActivePanel + 1) % 3
		return m, nil

	case "j", "down":
		m.Cursor[m.ActivePanel]++
		m.clampCursors()
		return m, nil

	case "k", "up":
		if m.Cursor[m.ActivePanel] > 0 {
			m.Cursor[m.ActivePanel]--
		}
		return m, nil

	case "enter":
		if m.ActivePanel == PanelPlaces {
			st := m.Store.State()
			if i := m.Cursor[PanelPlaces]; i < len(st.Places) {
				m.SelectedPlace = st.Places[i].ID
				m.ActivePanel = PanelItems
				m.Cursor[PanelItems] = 0
			}
		}
		return m, nil

	case "a":
		switch m.ActivePanel {
		case PanelPlaces:
			m.Form = NewFormState(FormAddPlace)
		case PanelItems:
			if _, ok := m.selectedPlaceState(); ok {
				m.Form = NewFormState(FormAddItem)
			}
		case PanelShopping:
			m.Form = NewFormState(FormAddShopping)
		}
		if m.Form != nil {
			return m, m.Form.Form.Init()
		}
		return m, nil

	case "d":
		m.deleteSelected()
		m.clampCursors()
		return m, nil

	case "+", "=":
		m.adjustQty(1)
		return m, nil

	case "-":
		m.adjustQty(-1)
		return m, nil

	case " ":
		if m.ActivePanel == PanelShopping {
			shop := m.Shop.State()
			if i := m.Cursor[PanelShopping]; i < len(shop.Items) {
				it := shop.Items[i]
				m.Shop.Dispatch(m.ctx, engine.ShopMarkPurchased{
					IDs:       []uuid.UUID{it.ID},
					Purchased: it.Status != models.StatusPurchased,
				})
			}
		}
		return m, nil

	case "c":
		m.cleanupExpired()
		m.clampCursors()
		return m, nil

	case "/":
		if m.ActivePanel == PanelItems {
			m.SearchMode = true
			m.SearchInput.Focus()
			return m, nil
		}
		return m, nil

	case "r":
		m.Store.Dispatch(m.ctx, engine.LoadRequested{})
		m.Shop.Dispatch(m.ctx, engine.ShopLoad{})
		return m, nil
	}
	return m, nil
}

func (m *Model) deleteSelected() {
	switch m.ActivePanel {
	case PanelPlaces:
		st := m.Store.State()
		if i := m.Cursor[PanelPlaces]; i < len(st.Places) {
			m.Store.Dispatch(m.ctx, engine.DeletePlaces{PlaceIDs: []uuid.UUID{st.Places[i].ID}})
		}
	case PanelItems:
		place, ok := m.selectedPlaceState()
		if !ok {
			return
		}
		place.SearchQuery = m.SearchInput.Value()
		items := place.VisibleItems()
		if i := m.Cursor[PanelItems]; i < len(items) {
			m.Store.Dispatch(m.ctx, engine.PlaceMsg{
				PlaceID: place.ID,
				Action:  engine.DeleteItems{ItemIDs: []uuid.UUID{items[i].ID}},
			})
		}
	case PanelShopping:
		shop := m.Shop.State()
		if i := m.Cursor[PanelShopping]; i < len(shop.Items) {
			m.Shop.Dispatch(m.ctx, engine.ShopDelete{IDs: []uuid.UUID{shop.Items[i].ID}})
		}
	}
}

func (m *Model) adjustQty(delta int) {
	switch m.ActivePanel {
	case PanelItems:
		place, ok := m.selectedPlaceState()
		if !ok {
			return
		}
		place.SearchQuery = m.SearchInput.Value()
		items := place.VisibleItems()
		if i := m.Cursor[PanelItems]; i < len(items) {
			m.Store.Dispatch(m.ctx, engine.PlaceMsg{
				PlaceID: place.ID,
				Action:  engine.QuantityChanged{ItemID: items[i].ID, Qty: items[i].Quantity + delta},
			})
		}
	case PanelShopping:
		shop := m.Shop.State()
		if i := m.Cursor[PanelShopping]; i < len(shop.Items) {
			it := shop.Items[i]
			m.Shop.Dispatch(m.ctx, engine.ShopSetQuantity{ID: it.ID, Qty: it.DesiredQuantity + delta})
		}
	}
}

// cleanupExpired runs the same workflow as the expired screen: push it,
// clean it, pop it.
func (m *Model) cleanupExpired() {
	m.Store.Dispatch(m.ctx, engine.BannerTapped{Kind: engine.BannerExpired})
	st := m.Store.State()
	for i := len(st.Path) - 1; i >= 0; i-- {
		if f, ok := st.Path[i].(engine.ExpirationFrame); ok {
			m.Store.Dispatch(m.ctx, engine.ExpirationMsg{FrameID: f.ID, Action: engine.CleanupAllTapped{}})
			return
		}
	}
}
