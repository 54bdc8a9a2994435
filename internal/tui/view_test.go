package tui

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"pricesense/internal/model"
)

func TestViewRendersProductsAndChange(t *testing.T) {
	m := testModel()
	last := decimal.NewFromInt(100)
	m.products = productsState{items: []model.Product{
		{ID: "1", Name: "Espresso Machine", CurrentPrice: decimal.NewFromInt(90), LastPrice: &last},
		{ID: "2", Name: "Grinder", CurrentPrice: decimal.NewFromInt(40)},
	}}

	out := m.View()
	if !strings.Contains(out, "Espresso Machine") {
		t.Fatal("product names should be rendered")
	}
	if !strings.Contains(out, "-10.0%") {
		t.Fatalf("percent change should be rendered, got:\n%s", out)
	}
	if !strings.Contains(out, "—") {
		t.Fatal("an undefined change renders as a dash")
	}
}

func TestViewEmptyState(t *testing.T) {
	m := testModel()
	m.products = productsState{}
	if !strings.Contains(m.View(), "No products yet. Add your first one!") {
		t.Fatal("the empty list shows the onboarding hint")
	}
}

func TestViewToastAndChartsFlag(t *testing.T) {
	m := testModel()
	m.products = productsState{}
	m.alerts = alertsState{}
	m.toast = &toastState{kind: toastSuccess, message: "Product added."}

	out := m.View()
	if !strings.Contains(out, "Product added.") {
		t.Fatal("the active toast should be rendered")
	}
	if !strings.Contains(out, "Price Trend") {
		t.Fatal("the trend panel renders when charts are enabled")
	}

	m.flags.Charts = false
	if strings.Contains(m.View(), "Price Trend") {
		t.Fatal("the trend panel must be hidden when charts are disabled")
	}
}

func TestViewConfirmModalCoversScreen(t *testing.T) {
	m := testModel()
	seedProducts(&m, "A")
	m, _ = apply(t, m, key("x"))
	out := m.View()
	if !strings.Contains(out, `Remove "A" from tracking?`) {
		t.Fatalf("modal should name the target, got:\n%s", out)
	}
	if strings.Contains(out, "Tracked Products") {
		t.Fatal("the modal replaces the dashboard view")
	}
}
