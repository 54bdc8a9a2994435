package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"pricesense/internal/model"
	"pricesense/internal/normalize"
)

// Products prints the tracked product set as a table, optionally filtered
// by a free-text query.
func (a *App) Products(ctx context.Context, query string) error {
	payload, err := a.newGateway().ListProducts(ctx, query)
	if err != nil {
		return err
	}

	products := normalize.Products(payload)
	if len(products) == 0 {
		fmt.Fprintln(os.Stdout, "no products tracked")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tName\tCurrent\tLast\tChange%\tURL")

	for _, p := range products {
		last := "-"
		change := "-"
		if p.LastPrice != nil {
			last = formatPrice(*p.LastPrice)
		}
		if pct, ok := model.PercentChange(p.CurrentPrice, p.LastPrice); ok {
			change = pct.StringFixed(1)
		}
		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID,
			sanitizeInline(p.Name),
			formatPrice(p.CurrentPrice),
			last,
			change,
			p.URL,
		)
	}

	return writer.Flush()
}

// Alerts prints the triggered price-drop alerts as a table.
func (a *App) Alerts(ctx context.Context) error {
	payload, err := a.newGateway().ListAlerts(ctx)
	if err != nil {
		return err
	}

	alerts := normalize.Alerts(payload)
	if len(alerts) == 0 {
		fmt.Fprintln(os.Stdout, "no alerts at the moment")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Product\tDrop To\tTriggered")

	for _, alert := range alerts {
		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\n",
			sanitizeInline(alert.DisplayName()),
			formatPrice(alert.Price),
			alert.TriggeredAt,
		)
	}

	return writer.Flush()
}

func formatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func sanitizeInline(v string) string {
	cleaned := strings.ReplaceAll(v, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", " ")
	return cleaned
}
