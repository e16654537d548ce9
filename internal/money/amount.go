package money

import (
	"strings"

	"github.com/shopspring/decimal"

	"watch-listing-stats/internal/listing"
)

// Reason explains why an Amount carries no value.
type Reason string

const (
	// ReasonMissing marks an absent or null field.
	ReasonMissing Reason = "missing"
	// ReasonUnparseable marks a string that did not survive currency
	// stripping and decimal parsing, or a negative amount.
	ReasonUnparseable Reason = "unparseable"
	// ReasonNonNumeric marks a scalar that is neither string nor number.
	ReasonNonNumeric Reason = "non-numeric"
)

// currencySymbols are stripped when they lead an amount string. Symbols are
// discarded, never converted.
var currencySymbols = []string{"$", "€", "£"}

// Amount is the result of normalizing one raw listing field: either a
// non-negative decimal value or an absence reason.
type Amount struct {
	Value  decimal.Decimal
	Valid  bool
	Reason Reason
}

// Float64 converts a valid amount for statistical use.
func (a Amount) Float64() float64 {
	return a.Value.InexactFloat64()
}

func invalid(reason Reason) Amount {
	return Amount{Reason: reason}
}

func valid(d decimal.Decimal) Amount {
	return Amount{Value: d, Valid: true}
}

// Normalize turns a loosely typed scraped field into an Amount. Null fields
// (JSON null or the scraper's "null" string) normalize to zero when
// zeroDefault is set, which is how shipping is treated; otherwise they are
// missing. Strings lose one leading currency symbol from {$, €, £} and any
// comma thousands separators before decimal parsing. A parsed negative is
// malformed data, not a discount.
func Normalize(v listing.Value, zeroDefault bool) Amount {
	switch v.Kind() {
	case listing.KindNull:
		return normalizeAbsent(zeroDefault)
	case listing.KindNumber:
		f, _ := v.Float64()
		d := decimal.NewFromFloat(f)
		if d.Sign() < 0 {
			return invalid(ReasonUnparseable)
		}
		return valid(d)
	case listing.KindString:
		s, _ := v.Text()
		return normalizeString(s, zeroDefault)
	default:
		return invalid(ReasonNonNumeric)
	}
}

func normalizeAbsent(zeroDefault bool) Amount {
	if zeroDefault {
		return valid(decimal.Zero)
	}
	return invalid(ReasonMissing)
}

func normalizeString(s string, zeroDefault bool) Amount {
	s = strings.TrimSpace(s)
	if s == "" || s == listing.NullText {
		return normalizeAbsent(zeroDefault)
	}

	for _, symbol := range currencySymbols {
		if strings.HasPrefix(s, symbol) {
			s = strings.TrimSpace(strings.TrimPrefix(s, symbol))
			break
		}
	}
	s = strings.ReplaceAll(s, ",", "")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return invalid(ReasonUnparseable)
	}
	if d.Sign() < 0 {
		return invalid(ReasonUnparseable)
	}
	return valid(d)
}
