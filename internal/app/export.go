package app

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"

	"watch-listing-stats/internal/report"
)

// Export renders the grouped breakdowns as CSV and/or a PNG chart.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	if opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("at least one of --csv or --png must be provided")
	}

	opts.MaxGroups = a.Config.ResolveMaxGroups(opts.MaxGroups)

	listings, err := a.loadListings(ctx, opts.Input, opts.FromDB)
	if err != nil {
		return err
	}

	rep, err := report.Build(listings, a.reportOptions())
	if err != nil {
		return err
	}

	locations := capGroups(sortGroups(rep.ByLocation), opts.MaxGroups)
	merchants := capGroups(sortGroups(rep.ByMerchant), opts.MaxGroups)
	a.Logger.Info().
		Int("locations", len(locations)).
		Int("merchants", len(merchants)).
		Msg("exporting group breakdowns")

	if opts.CSVPath != "" {
		if err := writeGroupsCSV(opts.CSVPath, locations, merchants); err != nil {
			return err
		}
	}

	if opts.PNGPath != "" {
		if err := writeGroupsPNG(opts.PNGPath, locations); err != nil {
			return err
		}
	}

	return nil
}

func capGroups(rows []groupRow, max int) []groupRow {
	if max <= 0 || len(rows) <= max {
		return rows
	}
	return rows[:max]
}

func writeGroupsCSV(path string, locations, merchants []groupRow) error {
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

	header := []string{"dimension", "group", "count", "avg_price", "avg_shipping", "price_std_dev", "shipping_std_dev"}
	if err := writer.Write(header); err != nil {
		return err
	}

	sections := []struct {
		dimension string
		rows      []groupRow
	}{
		{"location", locations},
		{"merchant", merchants},
	}
	for _, section := range sections {
		for _, row := range section.rows {
			record := []string{
				section.dimension,
				row.Key,
				strconv.Itoa(row.Summary.Count),
				csvMetric(row.Summary.Price.Average, row.Summary.Price.Empty()),
				csvMetric(row.Summary.Shipping.Average, row.Summary.Shipping.Empty()),
				csvMetric(row.Summary.Price.StdDev, row.Summary.Price.Empty()),
				csvMetric(row.Summary.Shipping.StdDev, row.Summary.Shipping.Empty()),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	return writer.Error()
}

func csvMetric(v float64, empty bool) string {
	if empty {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func writeGroupsPNG(path string, locations []groupRow) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	bars := make([]chart.Value, 0, len(locations))
	for _, row := range locations {
		if row.Summary.Price.Empty() {
			continue
		}
		bars = append(bars, chart.Value{
			Label: truncate(row.Key, 16),
			Value: row.Summary.Price.Average,
		})
	}
	if len(bars) == 0 {
		return errors.New("no priced groups to chart")
	}

	graph := chart.BarChart{
		Title:    "Average price by location",
		Width:    1280,
		Height:   720,
		BarWidth: 48,
		YAxis: chart.YAxis{
			Name: "Average price",
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, "%.0f")
			},
		},
		Bars: bars,
	}

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
