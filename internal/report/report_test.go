package report

import (
	"errors"
	"math"
	"testing"

	"watch-listing-stats/internal/listing"
)

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildTwoListingDataset(t *testing.T) {
	listings := []listing.Listing{
		mk(listing.StringValue("$100"), listing.StringValue("$10"), "Vienna, Austria", "Dealer"),
		mk(listing.StringValue("$200"), listing.NullValue(), "Geneva, Switzerland", "Private Seller"),
	}

	rep, err := Build(listings, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if rep.TotalListings != 2 {
		t.Fatalf("total listings = %d, want 2", rep.TotalListings)
	}

	p := rep.Price
	if p.Count != 2 || !floatEq(p.Average, 150) || !floatEq(p.Median, 150) || !floatEq(p.Min, 100) || !floatEq(p.Max, 200) {
		t.Fatalf("price summary = %+v", p)
	}

	// Null shipping defaults to zero, so the sample is [10, 0].
	if rep.Shipping.Count != 2 || !floatEq(rep.Shipping.Average, 5) {
		t.Fatalf("shipping summary = %+v", rep.Shipping)
	}

	if rep.Total.Count != 2 || !floatEq(rep.Total.Average, 155) {
		t.Fatalf("total summary = %+v", rep.Total)
	}

	if len(rep.ByLocation) != 2 || len(rep.ByMerchant) != 2 {
		t.Fatalf("group counts: locations %d, merchants %d", len(rep.ByLocation), len(rep.ByMerchant))
	}
}

func TestBuildEmptyDataset(t *testing.T) {
	if _, err := Build(nil, Options{}); !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("empty input should fail with ErrEmptyDataset, got %v", err)
	}
}

func TestBuildUnparseablePriceStillGrouped(t *testing.T) {
	listings := []listing.Listing{
		mk(listing.StringValue("N/A"), listing.StringValue("$10"), "Vienna, Austria", "Dealer"),
		mk(listing.StringValue("$500"), listing.StringValue("$20"), "Vienna, Austria", "Dealer"),
	}

	rep, err := Build(listings, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if rep.Price.Count != 1 {
		t.Fatalf("unparseable price should leave the price sample, got %+v", rep.Price)
	}
	if rep.ByLocation["Vienna, Austria"].Count != 2 {
		t.Fatalf("record should still count toward its groups, got %+v", rep.ByLocation)
	}
	if rep.ByMerchant[MerchantDealer].Count != 2 {
		t.Fatalf("record should still count toward its merchant group, got %+v", rep.ByMerchant)
	}
}

func TestInsightsMerchantSplit(t *testing.T) {
	listings := []listing.Listing{
		mk(listing.StringValue("$100"), listing.StringValue("$10"), "", "Dealer"),
		mk(listing.StringValue("$200"), listing.StringValue("$30"), "", "Dealer"),
		mk(listing.StringValue("$300"), listing.NullValue(), "", "Private Seller"),
		// No valid price: contributes to group size but not to the split.
		mk(listing.StringValue("N/A"), listing.NullValue(), "", "Private Seller"),
	}

	rep, err := Build(listings, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	split := rep.Insights.MerchantSplit
	if !floatEq(split[MerchantDealer], 2.0/3.0) || !floatEq(split[MerchantPrivateSeller], 1.0/3.0) {
		t.Fatalf("split should use valid-price counts, got %#v", split)
	}

	avgShipping := rep.Insights.AvgShippingByMerchant
	if !floatEq(avgShipping[MerchantDealer], 20) {
		t.Fatalf("dealer average shipping = %v, want 20", avgShipping[MerchantDealer])
	}
	if !floatEq(avgShipping[MerchantPrivateSeller], 0) {
		t.Fatalf("private seller average shipping = %v, want 0", avgShipping[MerchantPrivateSeller])
	}
}

func TestInsightsDerivedRatios(t *testing.T) {
	listings := []listing.Listing{
		mk(listing.StringValue("$90"), listing.StringValue("$10"), "", "Dealer"),
		mk(listing.StringValue("$190"), listing.StringValue("$10"), "", "Dealer"),
	}

	rep, err := Build(listings, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	cv := rep.Insights.PriceCoefficientOfVariation
	if cv == nil {
		t.Fatal("coefficient of variation should be present")
	}
	if want := rep.Price.StdDev / rep.Price.Average; !floatEq(*cv, want) {
		t.Fatalf("cv = %v, want %v", *cv, want)
	}

	share := rep.Insights.ShippingShareOfTotal
	if share == nil {
		t.Fatal("shipping share should be present")
	}
	if want := rep.Shipping.Average / rep.Total.Average; !floatEq(*share, want) {
		t.Fatalf("shipping share = %v, want %v", *share, want)
	}
}

func TestInsightsAbsentWithoutAverages(t *testing.T) {
	listings := []listing.Listing{
		mk(listing.StringValue("N/A"), listing.StringValue("bad"), "", "Dealer"),
	}

	rep, err := Build(listings, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if rep.Insights.PriceCoefficientOfVariation != nil {
		t.Fatalf("cv should be absent when no prices parse, got %v", *rep.Insights.PriceCoefficientOfVariation)
	}
	if rep.Insights.ShippingShareOfTotal != nil {
		t.Fatalf("shipping share should be absent without totals, got %v", *rep.Insights.ShippingShareOfTotal)
	}
}
