// Package report computes descriptive statistics over scraped watch
// listings: price, shipping, and combined-cost summaries, breakdowns by
// location and merchant type, and derived insights. Everything is a pure
// function of the input listings; a Report is rebuilt fresh on every call.
package report

import (
	"errors"

	"watch-listing-stats/internal/listing"
	"watch-listing-stats/internal/stats"
)

// ErrEmptyDataset signals a zero-length input. An empty dataset gets a hard
// error rather than a report full of zeros, which would be indistinguishable
// from real data.
var ErrEmptyDataset = errors.New("report: no listings in dataset")

// Report is the complete analysis of one listing dataset.
type Report struct {
	TotalListings int                     `json:"total_listings"`
	Price         stats.Summary           `json:"price"`
	Shipping      stats.Summary           `json:"shipping"`
	Total         stats.Summary           `json:"total"`
	ByLocation    map[string]GroupSummary `json:"by_location"`
	ByMerchant    map[string]GroupSummary `json:"by_merchant"`
	Insights      Insights                `json:"insights"`
}

// Build runs the full analysis. Individual malformed fields are absorbed by
// dropping the record from the affected sample; only an empty input fails.
func Build(listings []listing.Listing, opts Options) (*Report, error) {
	if len(listings) == 0 {
		return nil, ErrEmptyDataset
	}

	price := stats.Summarize(Extract(listings, FieldPrice, false))
	shipping := stats.Summarize(Extract(listings, FieldShipping, true))
	total := stats.Summarize(ExtractTotals(listings))
	byMerchant := GroupBy(listings, ByMerchant, opts)

	return &Report{
		TotalListings: len(listings),
		Price:         price,
		Shipping:      shipping,
		Total:         total,
		ByLocation:    GroupBy(listings, ByLocation, opts),
		ByMerchant:    byMerchant,
		Insights:      Synthesize(price, shipping, total, byMerchant),
	}, nil
}
