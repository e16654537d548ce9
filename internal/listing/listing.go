package listing

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// NullText is the marker the scraper writes for a tag it could not find.
// It arrives as a real JSON string, not as JSON null.
const NullText = "null"

// Kind classifies the JSON scalar a Value was decoded from.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindOther
)

// Value holds a loosely typed scalar field from a scraped listing. Scrapes
// mix currency strings, bare numbers, and JSON null in the same position, so
// Value preserves what was on the wire and leaves interpretation to the
// normalizer.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// StringValue wraps a raw string field.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// NumberValue wraps a numeric field.
func NumberValue(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// NullValue is an absent field.
func NullValue() Value {
	return Value{kind: KindNull}
}

// Kind reports how the value was decoded.
func (v Value) Kind() Kind {
	return v.kind
}

// Text returns the raw string payload; ok is false for non-string kinds.
func (v Value) Text() (string, bool) {
	return v.str, v.kind == KindString
}

// Float64 returns the numeric payload; ok is false for non-number kinds.
func (v Value) Float64() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Ptr renders the value for persistence: strings as-is, numbers formatted,
// null and unrecognized scalars as nil.
func (v Value) Ptr() *string {
	switch v.kind {
	case KindString:
		s := v.str
		return &s
	case KindNumber:
		s := strconv.FormatFloat(v.num, 'f', -1, 64)
		return &s
	default:
		return nil
	}
}

// UnmarshalJSON accepts a string, a number, null, or any other scalar; the
// last case is remembered as KindOther rather than rejected, so one bad
// field never fails the whole document.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*v = Value{kind: KindNull}
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value{kind: KindString, str: s}
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = Value{kind: KindNumber, num: f}
		return nil
	}

	*v = Value{kind: KindOther}
	return nil
}

// MarshalJSON round-trips the decoded scalar; KindOther collapses to null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	default:
		return []byte("null"), nil
	}
}

// Listing is one scraped marketplace entry. Price and shipping stay raw
// until normalization; text fields may carry the scraper's "null" marker.
type Listing struct {
	ID                  string   `json:"id"`
	URL                 string   `json:"url"`
	Manufacturer        string   `json:"manufacturer"`
	CertificationStatus string   `json:"certification_status"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Price               Value    `json:"price"`
	ShippingPrice       Value    `json:"shipping_price"`
	Location            string   `json:"location"`
	MerchantName        string   `json:"merchant_name"`
	Badge               string   `json:"badge"`
	ImageURLs           []string `json:"image_urls"`
}

// Text cleans a scraped text field, reporting whether anything usable was
// present. Empty strings and the "null" marker count as absent.
func Text(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == NullText {
		return "", false
	}
	return s, true
}
