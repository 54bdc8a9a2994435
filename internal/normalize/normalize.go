// Package normalize converts loosely-shaped backend payloads into the
// canonical entity shapes the rest of the dashboard consumes. Backends
// disagree on envelopes and on history field names; everything downstream
// sees one stable model.
package normalize

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"

	"pricesense/internal/model"
)

// timestampFields are tried in order; the first non-empty value wins. A
// record without any resolvable timestamp cannot be plotted and is dropped.
var timestampFields = []string{"timestamp", "created_at", "time", "ts"}

// priceFields are tried in order. A missing price defaults to zero; only a
// present-but-uncoercible price drops the record.
var priceFields = []string{"price", "value"}

// Items yields the element sequence of a payload shaped as either a bare
// array or an {items:[...]} envelope. Any other shape yields nothing.
func Items(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var envelope struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		return envelope.Items
	}
	return nil
}

// Products decodes a product list payload, dropping undecodable elements.
func Products(raw json.RawMessage) []model.Product {
	items := Items(raw)
	out := make([]model.Product, 0, len(items))
	for _, item := range items {
		var p model.Product
		if err := json.Unmarshal(item, &p); err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Alerts decodes an alert list payload, dropping undecodable elements.
func Alerts(raw json.RawMessage) []model.Alert {
	items := Items(raw)
	out := make([]model.Alert, 0, len(items))
	for _, item := range items {
		var a model.Alert
		if err := json.Unmarshal(item, &a); err != nil {
			continue
		}
		out = append(out, a)
	}
	return out
}

// History normalizes raw history records into plottable points. The
// timestamp rule is strict (no timestamp, no point) while the price rule is
// lenient (absent prices become zero); a missing time axis makes a point
// unplottable, a missing price does not.
func History(raw json.RawMessage) []model.HistoryPoint {
	items := Items(raw)
	out := make([]model.HistoryPoint, 0, len(items))
	for _, item := range items {
		var record map[string]any
		if err := json.Unmarshal(item, &record); err != nil || record == nil {
			continue
		}

		ts := resolveTimestamp(record)
		if ts == "" {
			continue
		}

		price, ok := resolvePrice(record)
		if !ok {
			continue
		}

		out = append(out, model.HistoryPoint{Timestamp: ts, Price: price})
	}
	return out
}

func resolveTimestamp(record map[string]any) string {
	for _, field := range timestampFields {
		value, present := record[field]
		if !present || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			if v != 0 {
				return strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
	}
	return ""
}

func resolvePrice(record map[string]any) (decimal.Decimal, bool) {
	for _, field := range priceFields {
		value, present := record[field]
		if !present || value == nil {
			continue
		}
		switch v := value.(type) {
		case float64:
			return decimal.NewFromFloat(v), true
		case string:
			if v == "" {
				return decimal.Zero, true
			}
			parsed, err := decimal.NewFromString(v)
			if err != nil {
				return decimal.Decimal{}, false
			}
			return parsed, true
		default:
			return decimal.Decimal{}, false
		}
	}
	return decimal.Zero, true
}
