// Package calculator merges recipe ingredients into shopping requirements and
// works out how many retail packs cover each one.
//
// Everything here is pure computation over immutable tables and is safe to
// call concurrently.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/mealcart/internal/models"
	"github.com/mmynk/mealcart/internal/units"
)

// bucket accumulates the lines of one (ingredient, dimension) pair, or of one
// (ingredient, raw label) pair when the unit is unrecognized.
type bucket struct {
	req      models.Requirement
	rawSum   decimal.Decimal
	baseSum  decimal.Decimal
	sameUnit bool
	seen     map[string]bool
}

// Aggregate merges the ingredient lines of the given recipes into one
// Requirement per ingredient and dimension.
//
// Recognized units are summed in their dimension's base unit and the total is
// expressed in the first unit seen for that ingredient, so "2 tsp" plus
// "1 tbsp" gives "5 tsp". Lines that all share one unit are summed as written.
// Unrecognized units are summed numerically under their raw label and the
// result is marked Lossy. Output order is first-seen; totals do not depend on
// recipe order.
func Aggregate(recipes []models.Recipe) []models.Requirement {
	buckets := make(map[string]*bucket)
	var order []string

	for _, recipe := range recipes {
		for _, line := range recipe.Ingredients {
			key, b := bucketFor(line)
			existing, ok := buckets[key]
			if !ok {
				buckets[key] = b
				order = append(order, key)
				existing = b
			} else {
				existing.add(line)
			}
			existing.addRecipe(recipe.Name)
		}
	}

	out := make([]models.Requirement, 0, len(order))
	for _, key := range order {
		out = append(out, buckets[key].finish())
	}
	return out
}

// bucketFor returns the bucket key for a line and a bucket seeded with it.
func bucketFor(line models.IngredientLine) (string, *bucket) {
	label := units.Normalize(line.Unit)
	measure := units.Resolve(line.Unit)
	dim := units.DimensionOf(measure)

	var key string
	if dim == units.DimensionUnknown {
		key = line.Key() + "\x00raw:" + label
	} else {
		key = line.Key() + "\x00" + dim.String()
		if label == "" {
			label = measure.Abbrev()
		}
	}

	base := line.Quantity
	if dim != units.DimensionUnknown {
		base, _ = units.ToBase(line.Quantity, measure)
	}

	return key, &bucket{
		req: models.Requirement{
			Key:       line.Key(),
			Name:      line.Name,
			Unit:      label,
			Measure:   measure,
			Dimension: dim,
			Lossy:     dim == units.DimensionUnknown,
		},
		rawSum:   line.Quantity,
		baseSum:  base,
		sameUnit: true,
		seen:     make(map[string]bool),
	}
}

func (b *bucket) add(line models.IngredientLine) {
	b.rawSum = b.rawSum.Add(line.Quantity)

	if b.req.Dimension == units.DimensionUnknown {
		b.baseSum = b.baseSum.Add(line.Quantity)
		return
	}

	measure := units.Resolve(line.Unit)
	if measure != b.req.Measure {
		b.sameUnit = false
	}
	base, _ := units.ToBase(line.Quantity, measure)
	b.baseSum = b.baseSum.Add(base)
}

func (b *bucket) addRecipe(name string) {
	if name == "" || b.seen[name] {
		return
	}
	b.seen[name] = true
	b.req.Recipes = append(b.req.Recipes, name)
}

func (b *bucket) finish() models.Requirement {
	req := b.req
	req.BaseQuantity = b.baseSum
	switch {
	case req.Dimension == units.DimensionUnknown, b.sameUnit:
		req.Quantity = b.rawSum
	default:
		req.Quantity, _ = units.FromBase(b.baseSum, req.Measure)
	}
	return req
}
