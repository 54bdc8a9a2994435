package tui

import (
	"pricesense/internal/model"
)

// Pipeline results carry the sequence number of the request that produced
// them. Update compares it against the pipeline's latest-issued sequence and
// discards stale arrivals, so the newest request always wins.

type productsLoadedMsg struct {
	seq   int
	items []model.Product
	err   error
}

type alertsLoadedMsg struct {
	seq   int
	items []model.Alert
	err   error
}

type historyLoadedMsg struct {
	seq       int
	productID model.ID
	points    []model.HistoryPoint
	err       error
}

type productAddedMsg struct {
	product model.Product
	err     error
}

// productDeletedMsg carries the pre-mutation snapshot so a failed delete can
// restore the exact prior list.
type productDeletedMsg struct {
	id   model.ID
	prev []model.Product
	err  error
}

type toastDoneMsg struct {
	seq int
}

type healthMsg struct {
	seq int
	err error
}

type healthTickMsg struct{}
