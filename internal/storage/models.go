package storage

import (
	"time"

	"watch-listing-stats/internal/listing"
)

// StoredListing is a scraped listing row. Price fields keep the raw scraped
// text; normalization happens at analysis time, never at ingest.
type StoredListing struct {
	ID                  string
	URL                 *string
	Manufacturer        *string
	CertificationStatus *string
	Title               *string
	Description         *string
	Price               *string
	ShippingPrice       *string
	Location            *string
	MerchantName        *string
	Badge               *string
	ImageURLs           []string
	CreatedAt           time.Time
}

func textPtr(s string) *string {
	cleaned, ok := listing.Text(s)
	if !ok {
		return nil
	}
	return &cleaned
}

func textOrNullMarker(p *string) string {
	if p == nil {
		return listing.NullText
	}
	return *p
}

// FromListing converts a decoded listing for persistence. The scraper's
// "null" marker becomes SQL NULL.
func FromListing(l listing.Listing) StoredListing {
	return StoredListing{
		ID:                  l.ID,
		URL:                 textPtr(l.URL),
		Manufacturer:        textPtr(l.Manufacturer),
		CertificationStatus: textPtr(l.CertificationStatus),
		Title:               textPtr(l.Title),
		Description:         textPtr(l.Description),
		Price:               l.Price.Ptr(),
		ShippingPrice:       l.ShippingPrice.Ptr(),
		Location:            textPtr(l.Location),
		MerchantName:        textPtr(l.MerchantName),
		Badge:               textPtr(l.Badge),
		ImageURLs:           l.ImageURLs,
	}
}

func valueFromPtr(p *string) listing.Value {
	if p == nil {
		return listing.NullValue()
	}
	return listing.StringValue(*p)
}

// Listing reconstructs the in-memory record the analysis core consumes.
func (s StoredListing) Listing() listing.Listing {
	return listing.Listing{
		ID:                  s.ID,
		URL:                 textOrNullMarker(s.URL),
		Manufacturer:        textOrNullMarker(s.Manufacturer),
		CertificationStatus: textOrNullMarker(s.CertificationStatus),
		Title:               textOrNullMarker(s.Title),
		Description:         textOrNullMarker(s.Description),
		Price:               valueFromPtr(s.Price),
		ShippingPrice:       valueFromPtr(s.ShippingPrice),
		Location:            textOrNullMarker(s.Location),
		MerchantName:        textOrNullMarker(s.MerchantName),
		Badge:               textOrNullMarker(s.Badge),
		ImageURLs:           s.ImageURLs,
	}
}
