package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pricesense/internal/api"
	"pricesense/internal/model"
	"pricesense/internal/normalize"
)

// The gateway client enforces the fixed request timeout, so commands run
// against a background context; cancellation of superseded requests is not
// needed because stale results are discarded by sequence on arrival.

func fetchProductsCmd(gateway *api.Client, query string, seq int) tea.Cmd {
	return func() tea.Msg {
		payload, err := gateway.ListProducts(context.Background(), query)
		if err != nil {
			return productsLoadedMsg{seq: seq, err: err}
		}
		return productsLoadedMsg{seq: seq, items: normalize.Products(payload)}
	}
}

func fetchAlertsCmd(gateway *api.Client, seq int) tea.Cmd {
	return func() tea.Msg {
		payload, err := gateway.ListAlerts(context.Background())
		if err != nil {
			return alertsLoadedMsg{seq: seq, err: err}
		}
		return alertsLoadedMsg{seq: seq, items: normalize.Alerts(payload)}
	}
}

func fetchHistoryCmd(gateway *api.Client, id model.ID, seq int) tea.Cmd {
	return func() tea.Msg {
		payload, err := gateway.ListHistory(context.Background(), id)
		if err != nil {
			return historyLoadedMsg{seq: seq, productID: id, err: err}
		}
		return historyLoadedMsg{seq: seq, productID: id, points: normalize.History(payload)}
	}
}

func addProductCmd(gateway *api.Client, draft model.ProductDraft) tea.Cmd {
	return func() tea.Msg {
		created, err := gateway.AddProduct(context.Background(), draft)
		return productAddedMsg{product: created, err: err}
	}
}

func deleteProductCmd(gateway *api.Client, id model.ID, prev []model.Product) tea.Cmd {
	return func() tea.Msg {
		err := gateway.DeleteProduct(context.Background(), id)
		return productDeletedMsg{id: id, prev: prev, err: err}
	}
}

func probeHealthCmd(gateway *api.Client, seq int) tea.Cmd {
	return func() tea.Msg {
		return healthMsg{seq: seq, err: gateway.Healthcheck(context.Background())}
	}
}

func healthTickCmd() tea.Cmd {
	return tea.Tick(healthInterval, func(time.Time) tea.Msg { return healthTickMsg{} })
}

// startProductsReload begins a products load for the current query,
// superseding any in-flight one.
func (m *dashModel) startProductsReload() tea.Cmd {
	m.products.loading = true
	m.products.err = ""
	m.productsSeq++
	return fetchProductsCmd(m.gateway, m.query, m.productsSeq)
}

func (m *dashModel) startAlertsReload() tea.Cmd {
	m.alerts.loading = true
	m.alerts.err = ""
	m.alertsSeq++
	return fetchAlertsCmd(m.gateway, m.alertsSeq)
}

func (m *dashModel) startHistoryLoad(id model.ID) tea.Cmd {
	m.history.loading = true
	m.history.err = ""
	m.historySeq++
	return fetchHistoryCmd(m.gateway, id, m.historySeq)
}

// selectProduct makes the product the active selection. A change of
// identity is the sole trigger for a history load.
func (m *dashModel) selectProduct(p model.Product) tea.Cmd {
	if m.selectedID == p.ID {
		return nil
	}
	m.selectedID = p.ID
	m.selectedName = p.Name
	return m.startHistoryLoad(p.ID)
}

// clearSelection drops the selection and resets history without a network
// call. Bumping the sequence invalidates any in-flight history result.
func (m *dashModel) clearSelection() {
	m.selectedID = ""
	m.selectedName = ""
	m.history = historyState{}
	m.historySeq++
}

// showToast replaces the active toast and restarts its expiry timer. Only
// the newest timer's message survives the tick comparison.
func (m *dashModel) showToast(kind, message string) tea.Cmd {
	m.toast = &toastState{kind: kind, message: message}
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastDoneMsg{seq: seq} })
}

// errorMessage extracts a human-readable message from a gateway error,
// falling back to per-pipeline text.
func errorMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		return err.Error()
	}
	return fallback
}
