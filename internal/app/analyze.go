package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"

	"watch-listing-stats/internal/report"
	"watch-listing-stats/internal/stats"
)

// Analyze builds the statistics report and renders it to stdout.
func (a *App) Analyze(ctx context.Context, opts AnalyzeOptions) error {
	listings, err := a.loadListings(ctx, opts.Input, opts.FromDB)
	if err != nil {
		return err
	}

	rep, err := report.Build(listings, a.reportOptions())
	if err != nil {
		return err
	}

	a.Logger.Info().
		Int("listings", rep.TotalListings).
		Int("priced", rep.Price.Count).
		Int("locations", len(rep.ByLocation)).
		Msg("report built")

	if opts.JSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rep)
	}

	return renderReport(os.Stdout, rep, a.Config.ResolveMaxGroups(0))
}

func renderReport(w io.Writer, rep *report.Report, maxGroups int) error {
	fmt.Fprintf(w, "Listings analyzed: %d\n\n", rep.TotalListings)

	writer := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Metric\tCount\tAverage\tMedian\tStdDev\tMin\tMax")
	writeSummaryRow(writer, "price", rep.Price)
	writeSummaryRow(writer, "shipping", rep.Shipping)
	writeSummaryRow(writer, "total", rep.Total)
	if err := writer.Flush(); err != nil {
		return err
	}

	if err := renderGroups(w, "Location", rep.ByLocation, maxGroups); err != nil {
		return err
	}
	if err := renderGroups(w, "Merchant", rep.ByMerchant, maxGroups); err != nil {
		return err
	}

	return renderInsights(w, rep.Insights)
}

func writeSummaryRow(w io.Writer, name string, s stats.Summary) {
	if s.Empty() {
		fmt.Fprintf(w, "%s\t0\tno valid samples\t\t\t\t\n", name)
		return
	}
	fmt.Fprintf(
		w,
		"%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
		name, s.Count, s.Average, s.Median, s.StdDev, s.Min, s.Max,
	)
}

func renderGroups(w io.Writer, dimension string, groups map[string]report.GroupSummary, maxGroups int) error {
	fmt.Fprintf(w, "\nBy %s\n", strings.ToLower(dimension))

	rows := sortGroups(groups)
	if maxGroups > 0 && len(rows) > maxGroups {
		rows = rows[:maxGroups]
	}

	writer := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "%s\tCount\tAvgPrice\tAvgShipping\tPriceStdDev\tShippingStdDev\n", dimension)
	for _, row := range rows {
		fmt.Fprintf(
			writer,
			"%s\t%d\t%s\t%s\t%s\t%s\n",
			sanitizeInline(row.Key),
			row.Summary.Count,
			formatMetric(row.Summary.Price.Average, row.Summary.Price.Empty()),
			formatMetric(row.Summary.Shipping.Average, row.Summary.Shipping.Empty()),
			formatMetric(row.Summary.Price.StdDev, row.Summary.Price.Empty()),
			formatMetric(row.Summary.Shipping.StdDev, row.Summary.Shipping.Empty()),
		)
	}
	return writer.Flush()
}

func renderInsights(w io.Writer, in report.Insights) error {
	fmt.Fprintln(w, "\nInsights")

	writer := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, row := range sortShares(in.MerchantSplit) {
		fmt.Fprintf(writer, "%s share of priced listings\t%.1f%%\n", row.Key, row.Share*100)
	}
	for _, row := range sortShares(in.AvgShippingByMerchant) {
		fmt.Fprintf(writer, "%s average shipping\t%.2f\n", row.Key, row.Share)
	}
	if in.PriceCoefficientOfVariation != nil {
		fmt.Fprintf(writer, "Price coefficient of variation\t%.3f\n", *in.PriceCoefficientOfVariation)
	}
	if in.ShippingShareOfTotal != nil {
		fmt.Fprintf(writer, "Shipping share of total cost\t%.1f%%\n", *in.ShippingShareOfTotal*100)
	}
	return writer.Flush()
}

type shareRow struct {
	Key   string
	Share float64
}

func sortShares(shares map[string]float64) []shareRow {
	rows := make([]shareRow, 0, len(shares))
	for key, share := range shares {
		rows = append(rows, shareRow{Key: key, Share: share})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Share != rows[j].Share {
			return rows[i].Share > rows[j].Share
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

func formatMetric(v float64, empty bool) string {
	if empty {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

func sanitizeInline(v string) string {
	cleaned := strings.ReplaceAll(v, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", " ")
	return cleaned
}
