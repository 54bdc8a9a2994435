package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ID is an opaque product or alert identifier. Backends disagree on whether
// ids are JSON strings or numbers, so both decode into the same value.
type ID string

// UnmarshalJSON accepts string, numeric, or null identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Product is a tracked product as served by the backend.
type Product struct {
	ID           ID               `json:"id"`
	Name         string           `json:"name"`
	URL          string           `json:"url,omitempty"`
	CurrentPrice decimal.Decimal  `json:"current_price"`
	LastPrice    *decimal.Decimal `json:"last_price,omitempty"`
}

// ProductDraft is the payload submitted when adding a product. URL is
// omitted from the request body when blank.
type ProductDraft struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Alert is a triggered price-drop notification. Alerts are read-only on the
// client; they are never mutated locally.
type Alert struct {
	ID          ID              `json:"id"`
	ProductID   ID              `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Price       decimal.Decimal `json:"price"`
	TriggeredAt string          `json:"triggered_at"`
}

// DisplayName returns the alert's product name, falling back to the id.
func (a Alert) DisplayName() string {
	if strings.TrimSpace(a.ProductName) != "" {
		return a.ProductName
	}
	return "Product #" + string(a.ProductID)
}

// HistoryPoint is one normalized observation on a product's price trend.
// The timestamp stays in its raw textual form; only non-emptiness is
// guaranteed by normalization.
type HistoryPoint struct {
	Timestamp string
	Price     decimal.Decimal
}

// Time parses the point's timestamp best-effort.
func (p HistoryPoint) Time() (time.Time, bool) {
	return ParseTimestamp(p.Timestamp)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp interprets the textual timestamps the backend emits:
// RFC3339 variants, a few date layouts, and unix epochs in seconds or
// milliseconds.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	if epoch, err := strconv.ParseFloat(raw, 64); err == nil && epoch > 0 {
		// Heuristic: values this large are milliseconds.
		if epoch > 1e12 {
			epoch /= 1000
		}
		sec := int64(epoch)
		nsec := int64((epoch - float64(sec)) * float64(time.Second))
		return time.Unix(sec, nsec).UTC(), true
	}
	return time.Time{}, false
}

var hundred = decimal.NewFromInt(100)

// PercentChange computes the relative move from last to current in percent.
// A missing or zero last price makes the change undefined, reported via the
// second return value.
func PercentChange(current decimal.Decimal, last *decimal.Decimal) (decimal.Decimal, bool) {
	if last == nil || last.IsZero() {
		return decimal.Decimal{}, false
	}
	return current.Sub(*last).Div(*last).Mul(hundred), true
}

// ClassifyChange labels a percent change for display.
func ClassifyChange(pct decimal.Decimal) string {
	switch pct.Sign() {
	case 1:
		return "rise"
	case -1:
		return "drop"
	default:
		return "flat"
	}
}
