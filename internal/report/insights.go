package report

import (
	"watch-listing-stats/internal/stats"
)

// Insights are cross-cutting metrics derived from already-computed
// summaries. Optional metrics are nil when their defining denominator is
// missing or non-positive.
type Insights struct {
	// MerchantSplit is each merchant group's share of listings with a valid
	// price, as a ratio in [0,1].
	MerchantSplit map[string]float64 `json:"merchant_split"`
	// AvgShippingByMerchant is the mean shipping each merchant type charges.
	AvgShippingByMerchant map[string]float64 `json:"avg_shipping_by_merchant"`
	// PriceCoefficientOfVariation is price std-dev over price mean.
	PriceCoefficientOfVariation *float64 `json:"price_coefficient_of_variation,omitempty"`
	// ShippingShareOfTotal is mean shipping over mean total cost.
	ShippingShareOfTotal *float64 `json:"shipping_share_of_total,omitempty"`
}

// Synthesize derives insights from the top-level summaries and the merchant
// breakdown. It never revisits raw listings; the per-record passes stay
// confined to extraction and grouping.
func Synthesize(price, shipping, total stats.Summary, merchants map[string]GroupSummary) Insights {
	in := Insights{
		MerchantSplit:         make(map[string]float64, len(merchants)),
		AvgShippingByMerchant: make(map[string]float64, len(merchants)),
	}

	var pricedListings int
	for _, g := range merchants {
		pricedListings += g.Price.Count
	}
	for key, g := range merchants {
		if pricedListings > 0 {
			in.MerchantSplit[key] = float64(g.Price.Count) / float64(pricedListings)
		}
		if !g.Shipping.Empty() {
			in.AvgShippingByMerchant[key] = g.Shipping.Average
		}
	}

	if !price.Empty() && price.Average > 0 {
		cv := price.StdDev / price.Average
		in.PriceCoefficientOfVariation = &cv
	}
	if !shipping.Empty() && !total.Empty() && total.Average > 0 {
		share := shipping.Average / total.Average
		in.ShippingShareOfTotal = &share
	}
	return in
}
