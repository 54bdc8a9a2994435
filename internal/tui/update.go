package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pricesense/internal/model"
)

func (m dashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case productsLoadedMsg:
		if msg.seq != m.productsSeq {
			// A newer reload superseded this one; last request wins.
			return m, nil
		}
		m.products.loading = false
		if msg.err != nil {
			m.products.err = errorMessage(msg.err, fallbackProductsError)
			return m, nil
		}
		m.products.items = msg.items
		m.clampCursor()
		return m, nil

	case alertsLoadedMsg:
		if msg.seq != m.alertsSeq {
			return m, nil
		}
		m.alerts.loading = false
		if msg.err != nil {
			m.alerts.err = errorMessage(msg.err, fallbackAlertsError)
			return m, nil
		}
		m.alerts.items = msg.items
		return m, nil

	case historyLoadedMsg:
		if msg.seq != m.historySeq || msg.productID != m.selectedID {
			// Stale result for a previously selected product.
			return m, nil
		}
		m.history.loading = false
		if msg.err != nil {
			m.history.err = errorMessage(msg.err, fallbackHistoryError)
			return m, nil
		}
		m.history.points = msg.points
		return m, nil

	case productAddedMsg:
		m.adding = false
		if msg.err != nil {
			m.addErr = errorMessage(msg.err, fallbackAddError)
			return m, m.showToast(toastError, m.addErr)
		}
		m.addErr = ""
		m.nameInput.SetValue("")
		m.urlInput.SetValue("")
		m.clearSelection()
		return m, tea.Batch(
			m.showToast(toastSuccess, "Product added."),
			m.startProductsReload(),
		)

	case productDeletedMsg:
		if msg.err != nil {
			// Full rollback: the pre-mutation snapshot replaces the list
			// wholesale, same objects in the same order.
			m.products.items = msg.prev
			m.clampCursor()
			return m, m.showToast(toastError, errorMessage(msg.err, fallbackDeleteError))
		}
		return m, m.showToast(toastSuccess, "Product removed.")

	case toastDoneMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case healthMsg:
		if msg.seq != m.healthSeq {
			return m, nil
		}
		if msg.err != nil {
			m.health = healthDown
		} else {
			m.health = healthOK
		}
		return m, nil

	case healthTickMsg:
		m.healthSeq++
		return m, tea.Batch(probeHealthCmd(m.gateway, m.healthSeq), healthTickCmd())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m dashModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.modal == modalConfirmDelete {
		return m.handleConfirmKey(msg)
	}

	switch m.focus {
	case focusSearch:
		return m.handleSearchKey(msg)
	case focusForm:
		return m.handleFormKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m dashModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m, m.performDelete()
		}
		m.cancelDelete()
		return m, nil
	case "y":
		return m, m.performDelete()
	case "n", "esc", "ctrl+g":
		m.cancelDelete()
		return m, nil
	}
	return m, nil
}

func (m dashModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.query = strings.TrimSpace(m.searchInput.Value())
		m.searchInput.Blur()
		m.focus = focusProducts
		return m, m.startProductsReload()
	case "esc":
		m.searchInput.Blur()
		m.focus = focusProducts
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m dashModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.setFormField((m.formField + 1) % 2)
		return m, nil
	case "shift+tab", "up":
		m.setFormField((m.formField + 1) % 2)
		return m, nil
	case "enter":
		return m, m.submitAdd()
	case "esc":
		m.nameInput.Blur()
		m.urlInput.Blur()
		m.focus = focusProducts
		return m, nil
	}

	var cmd tea.Cmd
	if m.formField == 0 {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.urlInput, cmd = m.urlInput.Update(msg)
	}
	return m, cmd
}

func (m dashModel) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.focus = focusSearch
		m.searchInput.Focus()
		return m, nil
	case "a":
		m.focus = focusForm
		m.setFormField(0)
		return m, nil
	case "r":
		return m, tea.Batch(m.startProductsReload(), m.startAlertsReload())
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.products.items)-1 {
			m.cursor++
		}
		return m, nil
	case "enter", " ":
		if p, ok := m.cursorProduct(); ok {
			return m, m.selectProduct(p)
		}
		return m, nil
	case "esc":
		m.clearSelection()
		return m, nil
	case "x", "d", "delete":
		if p, ok := m.cursorProduct(); ok {
			m.openDeleteConfirm(p)
		}
		return m, nil
	}
	return m, nil
}

func (m *dashModel) setFormField(field int) {
	m.formField = field
	if field == 0 {
		m.nameInput.Focus()
		m.urlInput.Blur()
	} else {
		m.urlInput.Focus()
		m.nameInput.Blur()
	}
}

// submitAdd validates locally before anything touches the network; an empty
// name never produces a request.
func (m *dashModel) submitAdd() tea.Cmd {
	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		m.addErr = "Product name is required"
		return nil
	}
	if m.adding {
		return nil
	}
	m.addErr = ""
	m.adding = true
	draft := model.ProductDraft{
		Name: name,
		URL:  strings.TrimSpace(m.urlInput.Value()),
	}
	return addProductCmd(m.gateway, draft)
}

func (m *dashModel) openDeleteConfirm(p model.Product) {
	target := p
	m.deleteTarget = &target
	m.modal = modalConfirmDelete
	m.confirmFocus = confirmFocusCancel
}

func (m *dashModel) cancelDelete() {
	m.deleteTarget = nil
	m.modal = modalNone
}

// performDelete applies the optimistic removal before the network call
// resolves. Both the removal and any rollback are whole-list replacements,
// so a render never observes a partially removed state.
func (m *dashModel) performDelete() tea.Cmd {
	target := m.deleteTarget
	m.deleteTarget = nil
	m.modal = modalNone
	if target == nil {
		return nil
	}

	prev := m.products.items
	next := make([]model.Product, 0, len(prev))
	for _, p := range prev {
		if p.ID != target.ID {
			next = append(next, p)
		}
	}
	m.products.items = next
	if m.selectedID == target.ID {
		m.clearSelection()
	}
	m.clampCursor()

	return deleteProductCmd(m.gateway, target.ID, prev)
}
