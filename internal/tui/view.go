package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"pricesense/internal/model"
)

const sidebarWidth = 38

func (m dashModel) View() string {
	width := m.width
	if width <= 0 {
		width = 100
	}
	height := m.height
	if height <= 0 {
		height = 30
	}

	if m.modal == modalConfirmDelete && m.deleteTarget != nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.viewConfirmModal())
	}

	mainWidth := width - sidebarWidth - 2
	if mainWidth < 40 {
		mainWidth = 40
	}

	mainPanels := []string{m.viewProducts(mainWidth)}
	if trend := m.viewTrend(mainWidth); trend != "" {
		mainPanels = append(mainPanels, trend)
	}
	main := lipgloss.JoinVertical(lipgloss.Left, mainPanels...)
	sidebar := lipgloss.JoinVertical(lipgloss.Left, m.viewAddForm(), m.viewAlerts())

	sections := []string{
		m.viewNavbar(width),
	}
	if m.toast != nil {
		sections = append(sections, styleToast(m.toast.kind).Render(m.toast.message))
	}
	sections = append(sections,
		lipgloss.JoinHorizontal(lipgloss.Top, main, " ", sidebar),
		styleMuted().Render("/ search · a add · enter select · esc clear · x remove · r reload · q quit"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m dashModel) viewNavbar(width int) string {
	brand := styleBrand().Render("PriceSense")

	search := ""
	if m.focus == focusSearch {
		search = m.searchInput.View()
	} else if m.query != "" {
		search = styleMuted().Render("filter: ") + m.query
	} else {
		search = styleMuted().Render("press / to search")
	}

	var badge string
	switch m.health {
	case healthOK:
		badge = styleSuccess().Render("● backend reachable")
	case healthDown:
		badge = styleError().Render("● backend unreachable")
	default:
		badge = styleMuted().Render("● checking backend")
	}

	left := brand + "  " + search
	gap := width - lipgloss.Width(left) - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + badge
}

func (m dashModel) viewProducts(width int) string {
	var b strings.Builder
	b.WriteString(styleTitle().Render("Tracked Products"))
	b.WriteString("\n")

	switch {
	case m.products.loading:
		b.WriteString(styleMuted().Render("Loading products…"))
	case m.products.err != "":
		b.WriteString(styleError().Render(m.products.err))
	case len(m.products.items) == 0:
		b.WriteString(styleMuted().Render("No products yet. Add your first one!"))
	default:
		nameWidth := width - 42
		if nameWidth < 12 {
			nameWidth = 12
		}
		b.WriteString(styleMuted().Render(fmt.Sprintf("  %-*s %10s %10s %9s", nameWidth, "Name", "Current", "Last", "Change")))
		for i, p := range m.products.items {
			b.WriteString("\n")
			b.WriteString(m.renderProductRow(p, i, nameWidth))
		}
	}

	return stylePanel().Width(width).Render(b.String())
}

func (m dashModel) renderProductRow(p model.Product, idx, nameWidth int) string {
	last := "—"
	if p.LastPrice != nil {
		last = formatMoney(*p.LastPrice)
	}

	change := "—"
	if pct, ok := model.PercentChange(p.CurrentPrice, p.LastPrice); ok {
		change = pct.StringFixed(1) + "%"
		switch model.ClassifyChange(pct) {
		case "drop":
			change = lipgloss.NewStyle().Foreground(colorDrop).Render(change)
		case "rise":
			change = lipgloss.NewStyle().Foreground(colorRise).Render(change)
		}
	}

	name := p.Name
	if len(name) > nameWidth {
		name = name[:nameWidth-1] + "…"
	}

	marker := "  "
	if idx == m.cursor && m.focus == focusProducts {
		marker = "▸ "
	}

	row := fmt.Sprintf("%s%-*s %10s %10s", marker, nameWidth, name, formatMoney(p.CurrentPrice), last)
	row += " " + change
	if p.ID == m.selectedID {
		return styleSelectedRow().Render(row)
	}
	return row
}

func (m dashModel) viewTrend(width int) string {
	if !m.flags.Charts {
		return ""
	}

	title := "Price Trend"
	if m.selectedName != "" {
		title = m.selectedName
	}

	var b strings.Builder
	b.WriteString(styleTitle().Render(title))
	b.WriteString("\n")

	switch {
	case m.selectedID == "":
		b.WriteString(styleMuted().Render("Select a product to see its trend."))
	case m.history.loading:
		b.WriteString(styleMuted().Render("Loading history…"))
	case m.history.err != "":
		b.WriteString(styleError().Render(m.history.err))
	case len(m.history.points) == 0:
		b.WriteString(styleMuted().Render("No history recorded yet."))
	default:
		b.WriteString(sparkline(m.history.points, width-6))
		b.WriteString("\n")
		b.WriteString(styleMuted().Render(trendSummary(m.history.points)))
	}

	return stylePanel().Width(width).Render(b.String())
}

func (m dashModel) viewAddForm() string {
	var b strings.Builder
	b.WriteString(styleTitle().Render("Add Product"))
	b.WriteString("\n")
	if m.addErr != "" {
		b.WriteString(styleError().Render(m.addErr))
		b.WriteString("\n")
	}
	b.WriteString("Name\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\nURL (optional)\n")
	b.WriteString(m.urlInput.View())
	b.WriteString("\n")
	if m.adding {
		b.WriteString(styleMuted().Render("Adding…"))
	} else {
		b.WriteString(styleMuted().Render("enter: submit  esc: back"))
	}
	return stylePanel().Width(sidebarWidth).Render(b.String())
}

func (m dashModel) viewAlerts() string {
	var b strings.Builder
	b.WriteString(styleTitle().Render("Alerts"))
	b.WriteString("\n")

	switch {
	case m.alerts.loading:
		b.WriteString(styleMuted().Render("Loading alerts…"))
	case m.alerts.err != "":
		b.WriteString(styleError().Render(m.alerts.err))
	case len(m.alerts.items) == 0:
		b.WriteString(styleMuted().Render("No alerts at the moment."))
	default:
		for i, alert := range m.alerts.items {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(alert.DisplayName())
			b.WriteString("\n")
			meta := "drop to " + formatMoney(alert.Price)
			if alert.TriggeredAt != "" {
				meta += " • " + alert.TriggeredAt
			}
			b.WriteString(styleMuted().Render(meta))
			b.WriteString("\n")
		}
	}

	return stylePanel().Width(sidebarWidth).Render(b.String())
}

func (m dashModel) viewConfirmModal() string {
	target := m.deleteTarget

	confirm := styleButton(m.confirmFocus == confirmFocusConfirm).Render("Remove")
	cancel := styleButton(m.confirmFocus == confirmFocusCancel).Render("Cancel")

	body := fmt.Sprintf("Remove %q from tracking?", target.Name)
	content := strings.Join([]string{
		styleTitle().Render("Remove product"),
		"",
		body,
		"",
		confirm + "  " + cancel,
		"",
		styleMuted().Render("tab: focus   enter: select   esc: cancel"),
	}, "\n")

	return styleModal().Render(content)
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline renders the most recent points as a min/max scaled bar strip.
func sparkline(points []model.HistoryPoint, width int) string {
	if width < 1 {
		width = 1
	}
	if len(points) > width {
		points = points[len(points)-width:]
	}
	if len(points) == 0 {
		return ""
	}

	lo := points[0].Price
	hi := points[0].Price
	for _, p := range points[1:] {
		if p.Price.LessThan(lo) {
			lo = p.Price
		}
		if p.Price.GreaterThan(hi) {
			hi = p.Price
		}
	}

	span := hi.Sub(lo).InexactFloat64()
	var b strings.Builder
	for _, p := range points {
		idx := 0
		if span > 0 {
			idx = int(p.Price.Sub(lo).InexactFloat64() / span * float64(len(sparkRunes)-1))
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

func trendSummary(points []model.HistoryPoint) string {
	lo := points[0].Price
	hi := points[0].Price
	for _, p := range points[1:] {
		if p.Price.LessThan(lo) {
			lo = p.Price
		}
		if p.Price.GreaterThan(hi) {
			hi = p.Price
		}
	}
	latest := points[len(points)-1].Price
	return fmt.Sprintf("min %s  max %s  latest %s  (%d points)",
		formatMoney(lo), formatMoney(hi), formatMoney(latest), len(points))
}

func formatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
