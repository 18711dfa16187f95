// Package units holds the canonical measurement vocabulary used when reconciling
// recipe quantities with grocery pack sizes.
//
// All tables in this package are built once at init and never mutated, so every
// function is safe to call from any number of goroutines.
package units

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Unit is a canonical measurement unit.
type Unit int

const (
	Unknown Unit = iota
	Teaspoon
	Tablespoon
	FluidOunce
	Cup
	Pint
	Quart
	Gallon
	Milliliter
	Liter
	Milligram
	Gram
	Kilogram
	Ounce
	Pound
	Each
)

var unitNames = map[Unit]string{
	Teaspoon:   "teaspoon",
	Tablespoon: "tablespoon",
	FluidOunce: "fluid ounce",
	Cup:        "cup",
	Pint:       "pint",
	Quart:      "quart",
	Gallon:     "gallon",
	Milliliter: "milliliter",
	Liter:      "liter",
	Milligram:  "milligram",
	Gram:       "gram",
	Kilogram:   "kilogram",
	Ounce:      "ounce",
	Pound:      "pound",
	Each:       "each",
}

var unitAbbrevs = map[Unit]string{
	Teaspoon:   "tsp",
	Tablespoon: "tbsp",
	FluidOunce: "fl oz",
	Cup:        "cup",
	Pint:       "pt",
	Quart:      "qt",
	Gallon:     "gal",
	Milliliter: "ml",
	Liter:      "l",
	Milligram:  "mg",
	Gram:       "g",
	Kilogram:   "kg",
	Ounce:      "oz",
	Pound:      "lb",
	Each:       "each",
}

// String returns the canonical unit name, e.g. "tablespoon".
func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return "unknown"
}

// Abbrev returns the short label used on grocery packaging, e.g. "tbsp".
func (u Unit) Abbrev() string {
	if abbrev, ok := unitAbbrevs[u]; ok {
		return abbrev
	}
	return ""
}

// Dimension returns the measurement category of the unit.
func (u Unit) Dimension() Dimension {
	return DimensionOf(u)
}

// Dimension is a measurement category. Conversion is only meaningful within one.
type Dimension int

const (
	DimensionUnknown Dimension = iota
	Volume
	Weight
	Count
)

// String returns a human-readable dimension name.
func (d Dimension) String() string {
	switch d {
	case Volume:
		return "volume"
	case Weight:
		return "weight"
	case Count:
		return "count"
	default:
		return "unknown"
	}
}

// MillilitersPerTeaspoon is the US teaspoon expressed in milliliters.
var MillilitersPerTeaspoon = decimal.RequireFromString("4.92892")

type factor struct {
	dim    Dimension
	toBase decimal.Decimal
}

// factors maps every known unit to its dimension's base unit:
// teaspoon for volume, gram for weight, and each for count.
var factors = map[Unit]factor{
	Teaspoon:   {Volume, decimal.NewFromInt(1)},
	Tablespoon: {Volume, decimal.NewFromInt(3)},
	FluidOunce: {Volume, decimal.NewFromInt(6)},
	Cup:        {Volume, decimal.NewFromInt(48)},
	Pint:       {Volume, decimal.NewFromInt(96)},
	Quart:      {Volume, decimal.NewFromInt(192)},
	Gallon:     {Volume, decimal.NewFromInt(768)},
	Milliliter: {Volume, decimal.NewFromInt(1).Div(MillilitersPerTeaspoon)},
	Liter:      {Volume, decimal.NewFromInt(1000).Div(MillilitersPerTeaspoon)},

	Milligram: {Weight, decimal.RequireFromString("0.001")},
	Gram:      {Weight, decimal.NewFromInt(1)},
	Kilogram:  {Weight, decimal.NewFromInt(1000)},
	Ounce:     {Weight, decimal.RequireFromString("28.349523125")},
	Pound:     {Weight, decimal.RequireFromString("453.59237")},

	Each: {Count, decimal.NewFromInt(1)},
}

// aliases maps normalized free-form unit strings to canonical units.
// Keys are lower case with single spaces and no periods; see normalize.
var aliases = map[string]Unit{
	"tsp": Teaspoon, "tsps": Teaspoon, "tspn": Teaspoon,
	"teaspoon": Teaspoon, "teaspoons": Teaspoon,

	"tbsp": Tablespoon, "tbsps": Tablespoon, "tbs": Tablespoon, "tbl": Tablespoon,
	"tblsp": Tablespoon, "tablespoon": Tablespoon, "tablespoons": Tablespoon,

	"fl oz": FluidOunce, "floz": FluidOunce, "fl ozs": FluidOunce, "fl ounce": FluidOunce,
	"fl ounces": FluidOunce, "fluid ounce": FluidOunce, "fluid ounces": FluidOunce,

	"c": Cup, "cup": Cup, "cups": Cup,

	"pt": Pint, "pts": Pint, "pint": Pint, "pints": Pint,

	"qt": Quart, "qts": Quart, "quart": Quart, "quarts": Quart,

	"gal": Gallon, "gals": Gallon, "gallon": Gallon, "gallons": Gallon,

	"ml": Milliliter, "mls": Milliliter, "milliliter": Milliliter, "milliliters": Milliliter,
	"millilitre": Milliliter, "millilitres": Milliliter,

	"l": Liter, "lt": Liter, "ltr": Liter, "liter": Liter, "liters": Liter,
	"litre": Liter, "litres": Liter,

	"mg": Milligram, "milligram": Milligram, "milligrams": Milligram,

	"g": Gram, "gr": Gram, "gm": Gram, "gram": Gram, "grams": Gram,

	"kg": Kilogram, "kgs": Kilogram, "kilogram": Kilogram, "kilograms": Kilogram,

	"oz": Ounce, "ozs": Ounce, "ounce": Ounce, "ounces": Ounce,

	"lb": Pound, "lbs": Pound, "pound": Pound, "pounds": Pound,

	// An empty unit is how recipe storage records "2 eggs".
	"": Each, "each": Each, "ea": Each, "ct": Each, "count": Each,
	"piece": Each, "pieces": Each, "pc": Each, "pcs": Each, "whole": Each,
	"unit": Each, "units": Each, "item": Each, "items": Each,
}

// Normalize lower-cases a raw unit string, drops periods and collapses
// whitespace. "Fl. Oz." and "fl  oz" both become "fl oz".
func Normalize(raw string) string {
	s := strings.ToLower(strings.ReplaceAll(raw, ".", ""))
	return strings.Join(strings.Fields(s), " ")
}

// Resolve maps a free-form unit string to its canonical unit. Strings that are
// not in the alias table resolve to Unknown.
func Resolve(raw string) Unit {
	if u, ok := aliases[Normalize(raw)]; ok {
		return u
	}
	return Unknown
}

// DimensionOf returns the dimension a unit belongs to.
func DimensionOf(u Unit) Dimension {
	if f, ok := factors[u]; ok {
		return f.dim
	}
	return DimensionUnknown
}

// BaseUnit returns the reference unit of a dimension.
func BaseUnit(d Dimension) Unit {
	switch d {
	case Volume:
		return Teaspoon
	case Weight:
		return Gram
	case Count:
		return Each
	default:
		return Unknown
	}
}

// ToBase expresses qty of u in the base unit of u's dimension.
// ok is false for Unknown.
func ToBase(qty decimal.Decimal, u Unit) (decimal.Decimal, bool) {
	f, ok := factors[u]
	if !ok {
		return decimal.Zero, false
	}
	return qty.Mul(f.toBase), true
}

// FromBase is the inverse of ToBase.
func FromBase(baseQty decimal.Decimal, u Unit) (decimal.Decimal, bool) {
	f, ok := factors[u]
	if !ok {
		return decimal.Zero, false
	}
	return baseQty.Div(f.toBase), true
}

// Convert converts qty between two units of the same dimension.
// ok is false when the dimensions differ or either unit is Unknown.
func Convert(qty decimal.Decimal, from, to Unit) (decimal.Decimal, bool) {
	ff, ok := factors[from]
	if !ok {
		return decimal.Zero, false
	}
	tf, ok := factors[to]
	if !ok || ff.dim != tf.dim {
		return decimal.Zero, false
	}
	if from == to {
		return qty, true
	}
	return qty.Mul(ff.toBase).Div(tf.toBase), true
}

// displayOrder lists units from largest to smallest for each dimension.
var displayOrder = map[Dimension][]Unit{
	Volume: {Gallon, Quart, Pint, Cup, Tablespoon, Teaspoon},
	Weight: {Pound, Ounce, Gram},
	Count:  {Each},
}

// PickBestDisplay chooses the largest unit in which baseQty is at least 1 and
// returns the converted quantity rounded to two places with the unit name.
// It is for presentation only; never feed its result back into arithmetic.
func PickBestDisplay(d Dimension, baseQty decimal.Decimal) (decimal.Decimal, string) {
	order, ok := displayOrder[d]
	if !ok {
		return baseQty.Round(2), ""
	}
	one := decimal.NewFromInt(1)
	for _, u := range order {
		qty, _ := FromBase(baseQty, u)
		if qty.GreaterThanOrEqual(one) {
			return qty.Round(2), u.String()
		}
	}
	smallest := order[len(order)-1]
	qty, _ := FromBase(baseQty, smallest)
	return qty.Round(2), smallest.String()
}
