package units

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// DensityTable maps ingredient names to approximate densities in g/mL so
// volume and weight measurements of the same ingredient can be bridged.
// A table is read-only once built.
type DensityTable struct {
	exact map[string]decimal.Decimal
	// keys sorted by descending length so the most specific substring wins.
	keys []string
}

// NewDensityTable builds a table from name -> g/mL entries. Names are matched
// case-insensitively. Non-positive densities are dropped.
func NewDensityTable(entries map[string]decimal.Decimal) *DensityTable {
	t := &DensityTable{exact: make(map[string]decimal.Decimal, len(entries))}
	for name, density := range entries {
		key := normalizeName(name)
		if key == "" || !density.IsPositive() {
			continue
		}
		t.exact[key] = density
	}
	t.keys = make([]string, 0, len(t.exact))
	for key := range t.exact {
		t.keys = append(t.keys, key)
	}
	sort.Slice(t.keys, func(i, j int) bool {
		if len(t.keys[i]) != len(t.keys[j]) {
			return len(t.keys[i]) > len(t.keys[j])
		}
		return t.keys[i] < t.keys[j]
	})
	return t
}

// DensityOf returns the density for an ingredient name. An exact match wins;
// otherwise the longest table key contained in the name is used.
func (t *DensityTable) DensityOf(ingredient string) (decimal.Decimal, bool) {
	name := normalizeName(ingredient)
	if name == "" {
		return decimal.Zero, false
	}
	if d, ok := t.exact[name]; ok {
		return d, true
	}
	for _, key := range t.keys {
		if strings.Contains(name, key) {
			return t.exact[key], true
		}
	}
	return decimal.Zero, false
}

// Len returns the number of entries in the table.
func (t *DensityTable) Len() int {
	return len(t.exact)
}

// VolumeToWeight converts a volume in teaspoons to grams.
// ok is false when density is not positive.
func VolumeToWeight(volumeBaseQty, density decimal.Decimal) (decimal.Decimal, bool) {
	if !density.IsPositive() {
		return decimal.Zero, false
	}
	return volumeBaseQty.Mul(MillilitersPerTeaspoon).Mul(density), true
}

// WeightToVolume converts grams to a volume in teaspoons.
// ok is false when density is not positive.
func WeightToVolume(weightBaseQty, density decimal.Decimal) (decimal.Decimal, bool) {
	if !density.IsPositive() {
		return decimal.Zero, false
	}
	return weightBaseQty.Div(density).Div(MillilitersPerTeaspoon), true
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Densities is the built-in table of common pantry ingredients.
var Densities = NewDensityTable(map[string]decimal.Decimal{
	"water":             mustDecimal("1.0"),
	"milk":              mustDecimal("1.03"),
	"buttermilk":        mustDecimal("1.03"),
	"heavy cream":       mustDecimal("1.01"),
	"sour cream":        mustDecimal("0.96"),
	"yogurt":            mustDecimal("1.03"),
	"butter":            mustDecimal("0.911"),
	"oil":               mustDecimal("0.92"),
	"olive oil":         mustDecimal("0.91"),
	"vegetable oil":     mustDecimal("0.92"),
	"honey":             mustDecimal("1.42"),
	"maple syrup":       mustDecimal("1.32"),
	"molasses":          mustDecimal("1.4"),
	"soy sauce":         mustDecimal("1.2"),
	"vinegar":           mustDecimal("1.01"),
	"flour":             mustDecimal("0.53"),
	"all-purpose flour": mustDecimal("0.53"),
	"bread flour":       mustDecimal("0.55"),
	"whole wheat flour": mustDecimal("0.51"),
	"sugar":             mustDecimal("0.85"),
	"brown sugar":       mustDecimal("0.93"),
	"powdered sugar":    mustDecimal("0.56"),
	"salt":              mustDecimal("1.2"),
	"kosher salt":       mustDecimal("0.54"),
	"baking soda":       mustDecimal("0.96"),
	"baking powder":     mustDecimal("0.9"),
	"cornstarch":        mustDecimal("0.54"),
	"cocoa powder":      mustDecimal("0.42"),
	"rolled oats":       mustDecimal("0.41"),
	"rice":              mustDecimal("0.85"),
	"garlic powder":     mustDecimal("0.52"),
	"ground cinnamon":   mustDecimal("0.56"),
	"peanut butter":     mustDecimal("1.09"),
	"grated parmesan":   mustDecimal("0.42"),
	"shredded cheese":   mustDecimal("0.47"),
})
