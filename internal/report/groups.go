package report

import (
	"strings"

	json "github.com/goccy/go-json"

	"watch-listing-stats/internal/listing"
	"watch-listing-stats/internal/stats"
)

// Canonical merchant labels. Any other merchant string groups under itself.
const (
	MerchantDealer        = "Dealer"
	MerchantPrivateSeller = "Private Seller"
)

// KeyFunc derives a grouping key from a listing; ok is false when the
// listing carries no usable key.
type KeyFunc func(listing.Listing) (key string, ok bool)

// ByLocation groups on the listing location as given.
func ByLocation(l listing.Listing) (string, bool) {
	return listing.Text(l.Location)
}

// ByMerchant groups on the merchant type, folding case variants of the two
// recognized labels onto their canonical spelling.
func ByMerchant(l listing.Listing) (string, bool) {
	name, ok := listing.Text(l.MerchantName)
	if !ok {
		return "", false
	}
	switch strings.ToLower(name) {
	case "dealer":
		return MerchantDealer, true
	case "private seller":
		return MerchantPrivateSeller, true
	}
	return name, true
}

// GroupSummary condenses one group: how many listings landed in it and the
// full price and shipping statistics over exactly those listings. Count is
// the raw group size, so a group whose prices all failed to parse still
// shows up rather than vanishing.
type GroupSummary struct {
	Count    int
	Price    stats.Summary
	Shipping stats.Summary
}

type groupJSON struct {
	Count          int      `json:"count"`
	AvgPrice       *float64 `json:"avg_price,omitempty"`
	AvgShipping    *float64 `json:"avg_shipping,omitempty"`
	PriceStdDev    *float64 `json:"price_std_dev,omitempty"`
	ShippingStdDev *float64 `json:"shipping_std_dev,omitempty"`
}

// MarshalJSON flattens the sub-summaries to the reporting shape, omitting
// metrics whose sample was empty.
func (g GroupSummary) MarshalJSON() ([]byte, error) {
	out := groupJSON{Count: g.Count}
	if !g.Price.Empty() {
		avg, sd := g.Price.Average, g.Price.StdDev
		out.AvgPrice, out.PriceStdDev = &avg, &sd
	}
	if !g.Shipping.Empty() {
		avg, sd := g.Shipping.Average, g.Shipping.StdDev
		out.AvgShipping, out.ShippingStdDev = &avg, &sd
	}
	return json.Marshal(out)
}

// Options tune report construction.
type Options struct {
	// UnknownGroupLabel, when non-empty, buckets records lacking a grouping
	// field under the given label. The default excludes them, keeping
	// incomplete data out of real categories.
	UnknownGroupLabel string
}

// GroupBy partitions listings by key and summarizes each partition
// independently. Listings without a key are excluded unless
// opts.UnknownGroupLabel redirects them.
func GroupBy(listings []listing.Listing, key KeyFunc, opts Options) map[string]GroupSummary {
	groups := make(map[string][]listing.Listing)
	for _, l := range listings {
		k, ok := key(l)
		if !ok {
			if opts.UnknownGroupLabel == "" {
				continue
			}
			k = opts.UnknownGroupLabel
		}
		groups[k] = append(groups[k], l)
	}

	summaries := make(map[string]GroupSummary, len(groups))
	for k, members := range groups {
		summaries[k] = GroupSummary{
			Count:    len(members),
			Price:    stats.Summarize(Extract(members, FieldPrice, false)),
			Shipping: stats.Summarize(Extract(members, FieldShipping, true)),
		}
	}
	return summaries
}
