package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/mealcart/internal/models"
	"github.com/mmynk/mealcart/internal/units"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(name, qty, unit string) models.IngredientLine {
	return models.IngredientLine{Name: name, Quantity: dec(qty), Unit: unit}
}

func recipe(name string, lines ...models.IngredientLine) models.Recipe {
	return models.Recipe{Name: name, Ingredients: lines}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name         string
		recipes      []models.Recipe
		validateFunc func(t *testing.T, reqs []models.Requirement)
	}{
		{
			name: "same unit across three recipes",
			recipes: []models.Recipe{
				recipe("Bread", line("flour", "1", "cup")),
				recipe("Pancakes", line("Flour", "1", "Cups")),
				recipe("Cookies", line("flour", "1", "cup")),
			},
			validateFunc: func(t *testing.T, reqs []models.Requirement) {
				if len(reqs) != 1 {
					t.Fatalf("got %d requirements, want 1", len(reqs))
				}
				r := reqs[0]
				if !r.Quantity.Equal(dec("3")) || r.Unit != "cup" {
					t.Errorf("flour = %v %s, want 3 cup", r.Quantity, r.Unit)
				}
				if r.Measure != units.Cup || r.Dimension != units.Volume {
					t.Errorf("measure = %v/%v, want cup/volume", r.Measure, r.Dimension)
				}
				if !r.BaseQuantity.Equal(dec("144")) {
					t.Errorf("base = %v, want 144", r.BaseQuantity)
				}
				if len(r.Recipes) != 3 {
					t.Errorf("recipes = %v, want 3 entries", r.Recipes)
				}
			},
		},
		{
			name: "teaspoons and tablespoons merge into teaspoons",
			recipes: []models.Recipe{
				recipe("Roast", line("garlic powder", "2", "tsp")),
				recipe("Soup", line("garlic powder", "1", "tbsp")),
			},
			validateFunc: func(t *testing.T, reqs []models.Requirement) {
				if len(reqs) != 1 {
					t.Fatalf("got %d requirements, want 1", len(reqs))
				}
				if !reqs[0].Quantity.Equal(dec("5")) || reqs[0].Unit != "tsp" {
					t.Errorf("garlic powder = %v %s, want 5 tsp", reqs[0].Quantity, reqs[0].Unit)
				}
			},
		},
		{
			name: "pounds and ounces merge into first-seen pounds",
			recipes: []models.Recipe{
				recipe("Stir Fry", line("chicken breast", "1", "lb")),
				recipe("Salad", line("chicken breast", "8", "oz")),
			},
			validateFunc: func(t *testing.T, reqs []models.Requirement) {
				if len(reqs) != 1 {
					t.Fatalf("got %d requirements, want 1", len(reqs))
				}
				if !reqs[0].Quantity.Equal(dec("1.5")) || reqs[0].Unit != "lb" {
					t.Errorf("chicken = %v %s, want 1.5 lb", reqs[0].Quantity, reqs[0].Unit)
				}
				if got := reqs[0].Recipes; len(got) != 2 || got[0] != "Stir Fry" || got[1] != "Salad" {
					t.Errorf("recipes = %v", got)
				}
			},
		},
		{
			name: "ounces first gives ounces",
			recipes: []models.Recipe{
				recipe("Salad", line("chicken breast", "8", "oz")),
				recipe("Stir Fry", line("chicken breast", "1", "lb")),
			},
			validateFunc: func(t *testing.T, reqs []models.Requirement) {
				if !reqs[0].Quantity.Equal(dec("24")) || reqs[0].Unit != "oz" {
					t.Errorf("chicken = %v %s, want 24 oz", reqs[0].Quantity, reqs[0].Unit)
				}
			},
		},
		{
			name: "incompatible dimensions stay separate",
			recipes: []models.Recipe{
				recipe("Cake", line("flour", "2", "cups"), line("sugar", "1", "cup")),
				recipe("Bread", line("flour", "500", "g")),
			},
			validateFunc: func(t *testing.T, reqs []models.Requirement) {
				if len(reqs) != 3 {
					t.Fatalf("got %d requirements, want 3", len(reqs))
				}
				if reqs[0].Key != "flour" || reqs[0].Dimension != units.Volume {
					t.Errorf("first = %s/%v, want flour/volume", reqs[0].Key, reqs[0].Dimension)
				}
				if reqs[1].Key != "sugar" {
					t.Errorf("second = %s, want sugar", reqs[1].Key)
				}
				if reqs[2].Key != "flour" || reqs[2].Dimension != units.Weight || !reqs[2].Quantity.Equal(dec("500")) {
					t.Errorf("third = %s/%v %v, want flour/weight 500", reqs[2].Key, reqs[2].Dimension, reqs[2].Quantity)
				}
			},
		},
		{
			name: "empty unit counts as each",
			recipes: []models.Recipe{
				recipe("Omelette", line("eggs", "2", "")),
				recipe("Cake", line("eggs", "3", "each")),
			},
			validateFunc: func(t *testing.T, reqs []models.Requirement) {
				if len(reqs) != 1 {
					t.Fatalf("got %d requirements, want 1", len(reqs))
				}
				r := reqs[0]
				if !r.Quantity.Equal(dec("5")) || r.Unit != "each" || r.Dimension != units.Count {
					t.Errorf("eggs = %v %s (%v), want 5 each", r.Quantity, r.Unit, r.Dimension)
				}
			},
		},
		{
			name: "unknown units fall back to raw labels",
			recipes: []models.Recipe{
				recipe("Tacos", line("cilantro", "1", "Bunch")),
				recipe("Salsa", line("cilantro", "2", "bunch"), line("cilantro", "3", "sprigs")),
			},
			validateFunc: func(t *testing.T, reqs []models.Requirement) {
				if len(reqs) != 2 {
					t.Fatalf("got %d requirements, want 2", len(reqs))
				}
				if !reqs[0].Quantity.Equal(dec("3")) || reqs[0].Unit != "bunch" || !reqs[0].Lossy {
					t.Errorf("bunch bucket = %v %s lossy=%v", reqs[0].Quantity, reqs[0].Unit, reqs[0].Lossy)
				}
				if reqs[0].Dimension != units.DimensionUnknown {
					t.Errorf("bunch dimension = %v, want unknown", reqs[0].Dimension)
				}
				if !reqs[1].Quantity.Equal(dec("3")) || reqs[1].Unit != "sprigs" {
					t.Errorf("sprig bucket = %v %s", reqs[1].Quantity, reqs[1].Unit)
				}
			},
		},
		{
			name: "ingredient id wins over name",
			recipes: []models.Recipe{
				recipe("A", models.IngredientLine{IngredientID: "ing-1", Name: "scallions", Quantity: dec("2"), Unit: ""}),
				recipe("B", models.IngredientLine{IngredientID: "ing-1", Name: "green onions", Quantity: dec("4"), Unit: ""}),
			},
			validateFunc: func(t *testing.T, reqs []models.Requirement) {
				if len(reqs) != 1 {
					t.Fatalf("got %d requirements, want 1", len(reqs))
				}
				if reqs[0].Name != "scallions" || !reqs[0].Quantity.Equal(dec("6")) {
					t.Errorf("got %s %v, want scallions 6", reqs[0].Name, reqs[0].Quantity)
				}
			},
		},
		{
			name: "repeated recipe is listed once",
			recipes: []models.Recipe{
				recipe("Soup", line("salt", "1", "tsp"), line("salt", "1", "tsp")),
			},
			validateFunc: func(t *testing.T, reqs []models.Requirement) {
				if len(reqs[0].Recipes) != 1 || !reqs[0].Quantity.Equal(dec("2")) {
					t.Errorf("salt = %v from %v", reqs[0].Quantity, reqs[0].Recipes)
				}
			},
		},
		{
			name:    "no recipes",
			recipes: nil,
			validateFunc: func(t *testing.T, reqs []models.Requirement) {
				if len(reqs) != 0 {
					t.Errorf("got %d requirements, want 0", len(reqs))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, Aggregate(tt.recipes))
		})
	}
}

func TestAggregateOrderIndependentTotals(t *testing.T) {
	a := recipe("A", line("garlic powder", "2", "tsp"), line("butter", "4", "oz"))
	b := recipe("B", line("garlic powder", "1", "tbsp"), line("butter", "1", "lb"))
	c := recipe("C", line("garlic powder", "1", "cup"))

	forward := Aggregate([]models.Recipe{a, b, c})
	reverse := Aggregate([]models.Recipe{c, b, a})

	if len(forward) != len(reverse) {
		t.Fatalf("forward has %d requirements, reverse %d", len(forward), len(reverse))
	}
	base := make(map[string]decimal.Decimal)
	for _, r := range forward {
		base[r.Key] = r.BaseQuantity
	}
	for _, r := range reverse {
		if !base[r.Key].Equal(r.BaseQuantity) {
			t.Errorf("%s base = %v forward, %v reverse", r.Key, base[r.Key], r.BaseQuantity)
		}
	}
}
