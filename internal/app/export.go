package app

import (
	"context"
	"encoding/csv"
	"errors"
	"math"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"pricesense/internal/model"
	"pricesense/internal/normalize"
)

// Export renders a product's price history as CSV and/or PNG.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	if opts.ProductID == "" {
		return errors.New("a product id is required")
	}
	if opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("at least one of --csv or --png must be provided")
	}

	opts.MaxPoints = a.Config.ResolveMaxPoints(opts.MaxPoints)

	payload, err := a.newGateway().ListHistory(ctx, model.ID(opts.ProductID))
	if err != nil {
		return err
	}

	points := normalize.History(payload)
	if len(points) == 0 {
		a.Logger.Info().Str("product_id", opts.ProductID).Msg("no history points to export")
		return nil
	}

	downsampled := downsamplePoints(points, opts.MaxPoints)
	a.Logger.Info().Int("total", len(points)).Int("exported", len(downsampled)).Msg("exporting history")

	if opts.CSVPath != "" {
		if err := writeHistoryCSV(opts.CSVPath, downsampled); err != nil {
			return err
		}
	}

	if opts.PNGPath != "" {
		if err := writeHistoryPNG(opts.PNGPath, downsampled); err != nil {
			return err
		}
	}

	return nil
}

func downsamplePoints(points []model.HistoryPoint, max int) []model.HistoryPoint {
	if max <= 0 || len(points) <= max {
		return points
	}

	result := make([]model.HistoryPoint, 0, max)
	step := float64(len(points)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		idx := int(math.Round(step * float64(i)))
		if idx >= len(points) {
			idx = len(points) - 1
		}
		result = append(result, points[idx])
	}
	return result
}

func writeHistoryCSV(path string, points []model.HistoryPoint) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"timestamp", "price"}); err != nil {
		return err
	}

	for _, point := range points {
		if err := writer.Write([]string{point.Timestamp, point.Price.String()}); err != nil {
			return err
		}
	}

	return writer.Error()
}

func writeHistoryPNG(path string, points []model.HistoryPoint) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	// The chart needs a real time axis; points whose timestamps do not
	// parse are skipped here but still exported to CSV.
	x := make([]time.Time, 0, len(points))
	y := make([]float64, 0, len(points))
	for _, point := range points {
		ts, ok := point.Time()
		if !ok {
			continue
		}
		x = append(x, ts)
		y = append(y, point.Price.InexactFloat64())
	}
	if len(x) < 2 {
		return errors.New("not enough plottable points for a chart")
	}

	priceFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.2f")
	}
	graph := chart.Chart{
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Price",
			ValueFormatter: priceFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Price",
				XValues: x,
				YValues: y,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
