package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/varepato/pantrypal/internal/expiry"
	"github.com/varepato/pantrypal/internal/models"
)

// View renders the three panels side by side, or the open form.
func (m Model) View() string {
	if m.Form != nil {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.Form.Form.View())
	}

	width := m.Width
	if width <= 0 {
		width = 120
	}
	colWidth := width/3 - 4

	now := time.Now()
	places := m.renderPlaces(colWidth, now)
	items := m.renderItems(colWidth, now)
	shopping := m.renderShopping(colWidth)

	row := lipgloss.JoinHorizontal(lipgloss.Top, places, items, shopping)

	help := helpStyle.Render("tab: panel  j/k: move  enter: open  a: add  d: delete  +/-: qty  space: bought  c: cleanup  /: filter  r: reload  q: quit")
	if m.SearchMode {
		help = m.SearchInput.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, row, help)
}

func (m Model) renderPlaces(width int, now time.Time) string {
	st := m.Store.State()
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Places") + "\n")

	if len(st.Places) == 0 {
		b.WriteString(subtleStyle.Render("none yet (a to add)"))
	}
	for i, p := range st.Places {
		line := fmt.Sprintf("%-16s %3d", truncate(p.Name, 16), len(p.Items))
		if n := p.ExpiredCount(now); n > 0 {
			line += expiredStyle.Render(fmt.Sprintf(" !%d", n))
		} else if n := p.ExpiringSoonCount(now, m.SoonWindow); n > 0 {
			line += soonStyle.Render(fmt.Sprintf(" ~%d", n))
		}
		b.WriteString(m.cursorLine(PanelPlaces, i, line) + "\n")
	}

	return m.panel(PanelPlaces, width, b.String())
}

func (m Model) renderItems(width int, now time.Time) string {
	var b strings.Builder

	place, ok := m.selectedPlaceState()
	if !ok {
		b.WriteString(panelTitleStyle.Render("Items") + "\n")
		b.WriteString(subtleStyle.Render("select a place"))
		return m.panel(PanelItems, width, b.String())
	}

	b.WriteString(panelTitleStyle.Render(truncate(place.Name, width-4)) + "\n")

	place.SearchQuery = m.SearchInput.Value()
	items := place.VisibleItems()
	if len(items) == 0 {
		b.WriteString(subtleStyle.Render("no items"))
	}
	for i, it := range items {
		line := fmt.Sprintf("%-14s x%-3d %s", truncate(it.Name, 14), it.Quantity, expiryBadge(it, now, m.SoonWindow))
		b.WriteString(m.cursorLine(PanelItems, i, line) + "\n")
	}

	return m.panel(PanelItems, width, b.String())
}

func (m Model) renderShopping(width int) string {
	shop := m.Shop.State()
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Shopping") + "\n")

	if shop.Err != "" {
		b.WriteString(expiredStyle.Render(shop.Err) + "\n")
	}
	if len(shop.Items) == 0 {
		b.WriteString(subtleStyle.Render("empty"))
	}
	for i, it := range shop.Items {
		line := fmt.Sprintf("%-16s x%d", truncate(it.Name, 16), it.DesiredQuantity)
		if it.Status == models.StatusPurchased {
			line = purchasedStyle.Render(line)
		}
		b.WriteString(m.cursorLine(PanelShopping, i, line) + "\n")
	}

	return m.panel(PanelShopping, width, b.String())
}

func (m Model) panel(p Panel, width int, content string) string {
	style := panelStyle
	if m.ActivePanel == p {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m Model) cursorLine(p Panel, i int, line string) string {
	if m.ActivePanel == p && m.Cursor[p] == i {
		return selectedStyle.Render("> " + line)
	}
	return "  " + line
}

func expiryBadge(it models.FoodItem, now time.Time, soonWindow int) string {
	d, ok := expiry.DaysUntil(it.ExpirationDate, now)
	if !ok {
		return subtleStyle.Render("-")
	}
	switch {
	case d < 0:
		return expiredStyle.Render(fmt.Sprintf("%dd ago", -d))
	case d == 0:
		return soonStyle.Render("today")
	case d <= soonWindow:
		return soonStyle.Render(fmt.Sprintf("%dd", d))
	default:
		return okStyle.Render(fmt.Sprintf("%dd", d))
	}
}

func truncate(s string, n int) string {
	if n < 1 {
		n = 1
	}
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
