package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Recipe is a stored recipe with its ingredient lines.
type Recipe struct {
	// ID is the unique identifier for the recipe (UUID format).
	ID string `json:"id"`

	// Name is the recipe title (e.g., "Sheet Pan Chicken").
	Name string `json:"name"`

	// Ingredients are kept in the order they appear in the recipe.
	Ingredients []IngredientLine `json:"ingredients"`

	// CreatedAt is the Unix timestamp when the recipe was imported.
	CreatedAt int64 `json:"created_at"`
}

// IngredientLine is one ingredient as written in a recipe.
type IngredientLine struct {
	// IngredientID is the canonical ingredient identity, when known.
	IngredientID string `json:"ingredient_id,omitempty"`

	// Name is the display name (e.g., "chicken breast").
	Name string `json:"name"`

	Quantity decimal.Decimal `json:"quantity"`

	// Unit is the free-form unit string. Empty means a plain count ("2 eggs").
	Unit string `json:"unit"`
}

// Key returns the identity used to merge this line with lines from other recipes.
func (l IngredientLine) Key() string {
	if l.IngredientID != "" {
		return IngredientKey(l.IngredientID)
	}
	return IngredientKey(l.Name)
}

// IngredientKey normalizes an ingredient name into a lookup key.
func IngredientKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
