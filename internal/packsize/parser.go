// Package packsize parses the free-form size strings grocery retailers attach to
// products ("15 oz", "1/2 gal", "8 ct / 22 oz") into structured quantities.
package packsize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/mealcart/internal/units"
)

// Dimension classifies what a parsed pack size measures.
type Dimension int

const (
	DimensionUnknown Dimension = iota
	DimensionUnit
	DimensionWeight
	DimensionVolume
	DimensionComposite
)

// String returns a human-readable dimension name.
func (d Dimension) String() string {
	switch d {
	case DimensionUnit:
		return "unit"
	case DimensionWeight:
		return "weight"
	case DimensionVolume:
		return "volume"
	case DimensionComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Parsed is the result of parsing one size string. It is built fresh by Parse
// and never modified afterwards.
type Parsed struct {
	// Raw is the input exactly as received.
	Raw string

	// Quantity is the primary amount: 22 in "8 ct / 22 oz", 0.5 in "1/2 gal".
	Quantity decimal.NullDecimal

	// Unit is the normalized primary unit label ("oz", "fl oz", "gal", "ct").
	// Empty when parsing failed.
	Unit string

	// Measure is Unit resolved against the canonical unit catalog.
	Measure units.Unit

	// CountEach is the item count of a composite pack, or the count of a
	// simple count pack ("12 ct"). Invalid otherwise.
	CountEach decimal.NullDecimal

	// Composite is true for "<count> / <measure>" packs.
	Composite bool

	Dimension Dimension

	// OK is false when the size is unusable for quantity math.
	OK bool
}

// PrimaryMeasure returns the primary quantity and its canonical unit.
// ok is false when the pack was not parsed.
func (p Parsed) PrimaryMeasure() (decimal.Decimal, units.Unit, bool) {
	if !p.OK || !p.Quantity.Valid || p.Measure == units.Unknown {
		return decimal.Zero, units.Unknown, false
	}
	return p.Quantity.Decimal, p.Measure, true
}

const notAvailable = "n/a"

const qtyPattern = `(\d+\s*/\s*\d+|\d+(?:\.\d+)?|\.\d+)`

var (
	compositeRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(ct|count|ea|each)\.?\s*/\s*` + qtyPattern + `\s*([a-z][a-z .]*)$`)
	simpleRe    = regexp.MustCompile(`^` + qtyPattern + `\s*([a-z][a-z .]*)$`)
)

// measureLabels maps verbose measure spellings to the abbreviations used in
// Parsed.Unit. Keys are already passed through units.Normalize.
var measureLabels = map[string]string{
	"oz": "oz", "ozs": "oz", "ounce": "oz", "ounces": "oz",
	"fl oz": "fl oz", "floz": "fl oz", "fl ozs": "fl oz", "fl ounce": "fl oz",
	"fl ounces": "fl oz", "fluid ounce": "fl oz", "fluid ounces": "fl oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
	"g": "g", "gram": "g", "grams": "g",
	"kg": "kg", "kgs": "kg", "kilogram": "kg", "kilograms": "kg",
	"ml": "ml", "milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml",
	"l": "l", "lt": "l", "ltr": "l", "liter": "l", "liters": "l", "litre": "l", "litres": "l",
	"pt": "pt", "pint": "pt", "pints": "pt",
	"qt": "qt", "quart": "qt", "quarts": "qt",
	"gal": "gal", "gallon": "gal", "gallons": "gal",
}

// countLabels maps count spellings to their label.
var countLabels = map[string]string{
	"ct":    "ct",
	"count": "ct",
	"ea":    "each",
	"each":  "each",
}

// NormalizeUnit maps a raw unit string to the label used in Parsed.Unit.
// ok is false for anything outside the recognized measure and count units.
func NormalizeUnit(raw string) (string, bool) {
	n := units.Normalize(raw)
	if label, ok := measureLabels[n]; ok {
		return label, true
	}
	if label, ok := countLabels[n]; ok {
		return label, true
	}
	return "", false
}

// Parse parses a retailer size string. It never fails: inputs that match
// neither the composite nor the simple form come back with OK false and
// DimensionUnknown.
func Parse(raw string) Parsed {
	out := Parsed{Raw: raw}
	s := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	if s == "" || s == notAvailable {
		return out
	}

	if m := compositeRe.FindStringSubmatch(s); m != nil {
		if parsed, ok := parseComposite(raw, m); ok {
			return parsed
		}
		return out
	}

	if m := simpleRe.FindStringSubmatch(s); m != nil {
		if parsed, ok := parseSimple(raw, m); ok {
			return parsed
		}
	}
	return out
}

func parseComposite(raw string, m []string) (Parsed, bool) {
	count, countOK := parseQuantity(m[1])
	qty, qtyOK := parseQuantity(m[3])
	label, ok := measureLabels[units.Normalize(m[4])]
	if !ok {
		return Parsed{}, false
	}
	return Parsed{
		Raw:       raw,
		Quantity:  nullable(qty, qtyOK),
		Unit:      label,
		Measure:   units.Resolve(label),
		CountEach: nullable(count, countOK),
		Composite: true,
		Dimension: DimensionComposite,
		OK:        countOK && qtyOK && label != "",
	}, true
}

func parseSimple(raw string, m []string) (Parsed, bool) {
	label, ok := NormalizeUnit(m[2])
	if !ok {
		return Parsed{}, false
	}
	qty, qtyOK := parseQuantity(m[1])
	if !qtyOK {
		return Parsed{}, false
	}
	measure := units.Resolve(label)
	out := Parsed{
		Raw:      raw,
		Quantity: nullable(qty, true),
		Unit:     label,
		Measure:  measure,
		OK:       true,
	}
	switch units.DimensionOf(measure) {
	case units.Count:
		out.CountEach = nullable(qty, true)
		out.Dimension = DimensionUnit
	case units.Weight:
		out.Dimension = DimensionWeight
	case units.Volume:
		out.Dimension = DimensionVolume
	default:
		return Parsed{}, false
	}
	return out, true
}

// parseQuantity parses an integer, decimal or simple "a/b" fraction.
// A zero denominator yields ok == false.
func parseQuantity(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(s, " ", "")
	if num, den, isFraction := strings.Cut(s, "/"); isFraction {
		n, err := decimal.NewFromString(num)
		if err != nil {
			return decimal.Zero, false
		}
		dd, err := decimal.NewFromString(den)
		if err != nil || dd.IsZero() {
			return decimal.Zero, false
		}
		return n.Div(dd), true
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

func nullable(v decimal.Decimal, ok bool) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: v, Valid: ok}
}
