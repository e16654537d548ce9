package money

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"watch-listing-stats/internal/listing"
)

func TestNormalizeCurrencyStrings(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"dollar with thousands separator", "$10,023", "10023"},
		{"euro", "€450", "450"},
		{"pound with cents", "£2,500.75", "2500.75"},
		{"surrounding whitespace", "  $99  ", "99"},
		{"bare number string", "123.45", "123.45"},
		// Single separator convention: dot is always the decimal point, so
		// a European-style "€1.234" reads as one point two three four.
		{"dot treated as decimal point", "€1.234", "1.234"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(listing.StringValue(tc.raw), false)
			if !got.Valid {
				t.Fatalf("Normalize(%q) invalid, reason %s", tc.raw, got.Reason)
			}
			want := decimal.RequireFromString(tc.want)
			if !got.Value.Equal(want) {
				t.Fatalf("Normalize(%q) = %s, want %s", tc.raw, got.Value, want)
			}
		})
	}
}

func TestNormalizeRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"non-numeric text", "N/A"},
		{"negative amount", "-50"},
		{"negative with symbol", "$-50"},
		{"symbol only", "$"},
		{"mixed garbage", "$12x"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(listing.StringValue(tc.raw), false)
			if got.Valid {
				t.Fatalf("Normalize(%q) should be invalid, got %s", tc.raw, got.Value)
			}
			if got.Reason != ReasonUnparseable {
				t.Fatalf("Normalize(%q) reason = %s, want %s", tc.raw, got.Reason, ReasonUnparseable)
			}
		})
	}
}

func TestNormalizeAbsentValues(t *testing.T) {
	absent := []listing.Value{
		listing.NullValue(),
		listing.StringValue("null"),
		listing.StringValue(""),
		listing.StringValue("   "),
	}

	for _, v := range absent {
		got := Normalize(v, false)
		if got.Valid || got.Reason != ReasonMissing {
			t.Fatalf("Normalize(%#v, false) = %+v, want missing", v, got)
		}

		got = Normalize(v, true)
		if !got.Valid || !got.Value.IsZero() {
			t.Fatalf("Normalize(%#v, true) = %+v, want zero default", v, got)
		}
	}
}

func TestNormalizeNumbers(t *testing.T) {
	got := Normalize(listing.NumberValue(250), false)
	if !got.Valid || !got.Value.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("numeric field should pass through, got %+v", got)
	}

	got = Normalize(listing.NumberValue(-1), false)
	if got.Valid || got.Reason != ReasonUnparseable {
		t.Fatalf("negative number should be unparseable, got %+v", got)
	}
}

func TestNormalizeNonNumericScalar(t *testing.T) {
	var v listing.Value
	if err := json.Unmarshal([]byte("true"), &v); err != nil {
		t.Fatalf("unmarshal bool: %v", err)
	}

	got := Normalize(v, true)
	if got.Valid || got.Reason != ReasonNonNumeric {
		t.Fatalf("boolean field should be non-numeric even with zero default, got %+v", got)
	}
}
