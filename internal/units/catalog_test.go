package units

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// approxEqual reports whether a and b differ by less than 1e-9.
func approxEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(dec("0.000000001"))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		raw  string
		want Unit
	}{
		{"tsp", Teaspoon},
		{"Tsp", Teaspoon},
		{"tsp ", Teaspoon},
		{"TEASPOON", Teaspoon},
		{"teaspoons", Teaspoon},
		{"Tbsp.", Tablespoon},
		{"tablespoons", Tablespoon},
		{"fl oz", FluidOunce},
		{"Fl.  Oz.", FluidOunce},
		{"fluid ounces", FluidOunce},
		{"Cups", Cup},
		{"pt", Pint},
		{"quarts", Quart},
		{"gal", Gallon},
		{"mL", Milliliter},
		{"litre", Liter},
		{"mg", Milligram},
		{"grams", Gram},
		{"kilograms", Kilogram},
		{"oz", Ounce},
		{"LBS", Pound},
		{"", Each},
		{"ea", Each},
		{"ct", Each},
		{"pieces", Each},
		{"pinch", Unknown},
		{"handful", Unknown},
		{"to taste", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Resolve(tt.raw); got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestResolveAliasesAgreeAcrossCaseAndSpacing(t *testing.T) {
	for alias, want := range aliases {
		variants := []string{alias, " " + alias + " ", upper(alias)}
		for _, v := range variants {
			if got := Resolve(v); got != want {
				t.Errorf("Resolve(%q) = %v, want %v", v, got, want)
			}
		}
	}
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

func TestDimensionOf(t *testing.T) {
	tests := []struct {
		unit Unit
		want Dimension
	}{
		{Teaspoon, Volume},
		{Gallon, Volume},
		{Milliliter, Volume},
		{Gram, Weight},
		{Pound, Weight},
		{Ounce, Weight},
		{Each, Count},
		{Unknown, DimensionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.unit.String(), func(t *testing.T) {
			if got := DimensionOf(tt.unit); got != tt.want {
				t.Errorf("DimensionOf(%v) = %v, want %v", tt.unit, got, tt.want)
			}
		})
	}
}

func TestFactorsArePositive(t *testing.T) {
	for u, f := range factors {
		if !f.toBase.IsPositive() {
			t.Errorf("factor for %v = %v, want > 0", u, f.toBase)
		}
		if f.dim == DimensionUnknown {
			t.Errorf("unit %v has unknown dimension", u)
		}
	}
}

func TestToBase(t *testing.T) {
	tests := []struct {
		name   string
		qty    string
		unit   Unit
		want   string
		wantOK bool
	}{
		{"cup to teaspoons", "1", Cup, "48", true},
		{"tablespoons to teaspoons", "2", Tablespoon, "6", true},
		{"fluid ounces to teaspoons", "2", FluidOunce, "12", true},
		{"pound to grams", "1", Pound, "453.59237", true},
		{"kilogram to grams", "1.5", Kilogram, "1500", true},
		{"each stays each", "3", Each, "3", true},
		{"unknown has no base", "3", Unknown, "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToBase(dec(tt.qty), tt.unit)
			if ok != tt.wantOK {
				t.Fatalf("ToBase ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !approxEqual(got, dec(tt.want)) {
				t.Errorf("ToBase(%s, %v) = %v, want %s", tt.qty, tt.unit, got, tt.want)
			}
		})
	}
}

func TestToBaseIsLinear(t *testing.T) {
	qty := dec("1.75")
	for u := range factors {
		single, _ := ToBase(qty, u)
		double, _ := ToBase(qty.Mul(decimal.NewFromInt(2)), u)
		if !approxEqual(double, single.Mul(decimal.NewFromInt(2))) {
			t.Errorf("ToBase not linear for %v: %v vs 2*%v", u, double, single)
		}
	}
}

func TestConvertIdentity(t *testing.T) {
	for u := range factors {
		for _, q := range []string{"0", "1", "2.5", "1000.125"} {
			got, ok := Convert(dec(q), u, u)
			if !ok {
				t.Fatalf("Convert(%s, %v, %v) not ok", q, u, u)
			}
			if !got.Equal(dec(q)) {
				t.Errorf("Convert(%s, %v, %v) = %v", q, u, u, got)
			}
		}
	}
}

func TestConvertRoundTrip(t *testing.T) {
	qty := dec("3.3")
	for a, fa := range factors {
		for b, fb := range factors {
			if fa.dim != fb.dim {
				continue
			}
			there, ok := Convert(qty, a, b)
			if !ok {
				t.Fatalf("Convert(%v -> %v) not ok", a, b)
			}
			back, ok := Convert(there, b, a)
			if !ok {
				t.Fatalf("Convert(%v -> %v) not ok", b, a)
			}
			if back.Sub(qty).Abs().GreaterThan(dec("0.000001")) {
				t.Errorf("round trip %v -> %v -> %v = %v, want %v", a, b, a, back, qty)
			}
		}
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name   string
		qty    string
		from   Unit
		to     Unit
		want   string
		wantOK bool
	}{
		{"tablespoons to teaspoons", "1", Tablespoon, Teaspoon, "3", true},
		{"gallon to cups", "1", Gallon, Cup, "16", true},
		{"ounces to pounds", "8", Ounce, Pound, "0.5", true},
		{"liter to milliliters", "1", Liter, Milliliter, "1000", true},
		{"teaspoon to gram crosses dimensions", "1", Teaspoon, Gram, "0", false},
		{"pound to cup crosses dimensions", "1", Pound, Cup, "0", false},
		{"each to gram crosses dimensions", "1", Each, Gram, "0", false},
		{"unknown source", "1", Unknown, Gram, "0", false},
		{"unknown target", "1", Gram, Unknown, "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Convert(dec(tt.qty), tt.from, tt.to)
			if ok != tt.wantOK {
				t.Fatalf("Convert ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !approxEqual(got, dec(tt.want)) {
				t.Errorf("Convert(%s, %v, %v) = %v, want %s", tt.qty, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestPickBestDisplay(t *testing.T) {
	tests := []struct {
		name     string
		dim      Dimension
		baseQty  string
		wantQty  string
		wantUnit string
	}{
		{"two gallons", Volume, "1536", "2", "gallon"},
		{"one and a half cups", Volume, "72", "1.5", "cup"},
		{"five teaspoons", Volume, "5", "1.67", "tablespoon"},
		{"half teaspoon", Volume, "0.5", "0.5", "teaspoon"},
		{"pound and a half", Weight, "680.388555", "1.5", "pound"},
		{"few ounces", Weight, "113.3980925", "4", "ounce"},
		{"grams", Weight, "12", "12", "gram"},
		{"count", Count, "3", "3", "each"},
		{"unknown", DimensionUnknown, "2.345", "2.35", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qty, unit := PickBestDisplay(tt.dim, dec(tt.baseQty))
			if unit != tt.wantUnit {
				t.Errorf("unit = %q, want %q", unit, tt.wantUnit)
			}
			if !qty.Equal(dec(tt.wantQty)) {
				t.Errorf("qty = %v, want %s", qty, tt.wantQty)
			}
		})
	}
}
