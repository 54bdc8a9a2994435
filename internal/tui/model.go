package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"pricesense/internal/api"
	"pricesense/internal/config"
	"pricesense/internal/model"
)

const (
	toastTTL       = 2500 * time.Millisecond
	healthInterval = 15 * time.Second

	fallbackProductsError = "Failed to load products"
	fallbackAlertsError   = "Failed to load alerts"
	fallbackHistoryError  = "Failed to load price history"
	fallbackAddError      = "Failed to add product"
	fallbackDeleteError   = "Failed to remove product. Please check your network or try again."
)

type focusArea int

const (
	focusProducts focusArea = iota
	focusSearch
	focusForm
)

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmDelete
)

type confirmFocus int

const (
	confirmFocusConfirm confirmFocus = iota
	confirmFocusCancel
)

type healthState int

const (
	healthPending healthState = iota
	healthOK
	healthDown
)

const (
	toastSuccess = "success"
	toastError   = "error"
)

// Each load pipeline owns its own loading flag, error text, and settled
// data. A failed reload keeps the prior settled data.

type productsState struct {
	loading bool
	err     string
	items   []model.Product
}

type alertsState struct {
	loading bool
	err     string
	items   []model.Alert
}

type historyState struct {
	loading bool
	err     string
	points  []model.HistoryPoint
}

type toastState struct {
	kind    string
	message string
}

// dashModel is the aggregate UI state store. Presentation reads from it
// exclusively; pipelines and mutations write into it through Update.
type dashModel struct {
	cfg     *config.Config
	flags   config.FeatureFlags
	gateway *api.Client
	logger  zerolog.Logger

	width  int
	height int

	focus        focusArea
	modal        modalKind
	confirmFocus confirmFocus
	deleteTarget *model.Product

	searchInput textinput.Model
	nameInput   textinput.Model
	urlInput    textinput.Model
	formField   int

	query string

	products productsState
	alerts   alertsState
	history  historyState

	// Monotonically increasing request sequence per pipeline; results
	// tagged with an older sequence are discarded on arrival.
	productsSeq int
	alertsSeq   int
	historySeq  int

	cursor       int
	selectedID   model.ID
	selectedName string

	adding bool
	addErr string

	toast    *toastState
	toastSeq int

	health    healthState
	healthSeq int
}

func newDashModel(cfg *config.Config, gateway *api.Client, logger zerolog.Logger) dashModel {
	m := dashModel{
		cfg:     cfg,
		flags:   cfg.FeatureFlags(),
		gateway: gateway,
		logger:  logger.With().Str("component", "dashboard").Logger(),
	}

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "Search products..."
	m.searchInput.CharLimit = 120
	m.searchInput.Width = 28

	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "Product name"
	m.nameInput.CharLimit = 200
	m.nameInput.Width = 28

	m.urlInput = textinput.New()
	m.urlInput.Placeholder = "https://example.com/product"
	m.urlInput.CharLimit = 400
	m.urlInput.Width = 28

	// The initial loads are issued from Init, so the pipelines start out
	// loading with their first sequence already assigned.
	m.products = productsState{loading: true}
	m.alerts = alertsState{loading: true}
	m.productsSeq = 1
	m.alertsSeq = 1
	m.healthSeq = 1

	return m
}

// Init kicks off the products, alerts, and health pipelines.
func (m dashModel) Init() tea.Cmd {
	return tea.Batch(
		fetchProductsCmd(m.gateway, m.query, m.productsSeq),
		fetchAlertsCmd(m.gateway, m.alertsSeq),
		probeHealthCmd(m.gateway, m.healthSeq),
		healthTickCmd(),
	)
}

func (m *dashModel) clampCursor() {
	if m.cursor >= len(m.products.items) {
		m.cursor = len(m.products.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m dashModel) cursorProduct() (model.Product, bool) {
	if m.cursor < 0 || m.cursor >= len(m.products.items) {
		return model.Product{}, false
	}
	return m.products.items[m.cursor], true
}
