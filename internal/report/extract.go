package report

import (
	"watch-listing-stats/internal/listing"
	"watch-listing-stats/internal/money"
)

// Field names one normalizable listing field.
type Field int

const (
	// FieldPrice is the asking price; absent prices are missing data.
	FieldPrice Field = iota
	// FieldShipping is the shipping cost; absent shipping means free.
	FieldShipping
)

func fieldValue(l listing.Listing, field Field) listing.Value {
	if field == FieldShipping {
		return l.ShippingPrice
	}
	return l.Price
}

// Extract normalizes the named field across all listings and collects the
// valid values in record order. Records whose field fails normalization are
// skipped here without affecting samples drawn from their other fields.
func Extract(listings []listing.Listing, field Field, zeroDefault bool) []float64 {
	sample := make([]float64, 0, len(listings))
	for _, l := range listings {
		amount := money.Normalize(fieldValue(l, field), zeroDefault)
		if !amount.Valid {
			continue
		}
		sample = append(sample, amount.Float64())
	}
	return sample
}

// ExtractTotals collects price plus shipping per listing. A listing
// contributes only when both fields normalize; shipping is zero-defaulted,
// so only a present price and a parseable shipping string are required.
func ExtractTotals(listings []listing.Listing) []float64 {
	sample := make([]float64, 0, len(listings))
	for _, l := range listings {
		price := money.Normalize(l.Price, false)
		shipping := money.Normalize(l.ShippingPrice, true)
		if !price.Valid || !shipping.Valid {
			continue
		}
		sample = append(sample, price.Value.Add(shipping.Value).InexactFloat64())
	}
	return sample
}
