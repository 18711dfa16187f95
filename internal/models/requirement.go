package models

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/mealcart/internal/units"
)

// Requirement is the aggregated amount of one ingredient needed across the
// selected recipes. An ingredient written in incompatible units produces one
// Requirement per dimension.
type Requirement struct {
	// Key is the ingredient identity shared by every contributing line.
	Key string `json:"key"`

	// Name is the first-seen display name.
	Name string `json:"name"`

	// Quantity is the total expressed in Unit.
	Quantity decimal.Decimal `json:"quantity"`

	// Unit is the first-seen unit label of the bucket, lower-cased.
	Unit string `json:"unit"`

	// Measure is Unit resolved against the unit catalog. Unknown for the
	// raw-label fallback bucket.
	Measure units.Unit `json:"-"`

	Dimension units.Dimension `json:"-"`

	// BaseQuantity is the total in the dimension's base unit (teaspoons,
	// grams or each). For the fallback bucket it equals Quantity.
	BaseQuantity decimal.Decimal `json:"-"`

	// Recipes lists the names of contributing recipes in first-seen order.
	Recipes []string `json:"recipes"`

	// Lossy is set when the bucket summed quantities whose unit could not be
	// recognized, so the total ignores unit semantics.
	Lossy bool `json:"lossy,omitempty"`
}

// Display returns the total in the most readable unit of its dimension.
// Presentation only.
func (r Requirement) Display() (decimal.Decimal, string) {
	if r.Dimension == units.DimensionUnknown {
		return r.Quantity.Round(2), r.Unit
	}
	return units.PickBestDisplay(r.Dimension, r.BaseQuantity)
}
