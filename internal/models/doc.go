// Package models defines the core domain models for mealcart.
//
// # Models
//
//   - Recipe: a stored recipe and its ingredient lines
//   - IngredientLine: one (ingredient, quantity, unit) triple as written in a recipe
//   - Requirement: an aggregated per-ingredient total across selected recipes
//   - CartItem: a product and pack count ready for the retailer cart
//   - ReviewItem: a requirement that could not be resolved automatically
//   - CartPlan: the full outcome of planning a cart
//
// Ingredients are identified by an IngredientID when the canonicalization step
// supplied one, otherwise by their normalized display name.
//
// # Design Principles
//
// 1. **Exact quantities**: all amounts are decimal.Decimal, never float64
// 2. **Avoid circular references**: Use ID strings instead of pointers for relationships
// 3. **Nothing silently dropped**: anything the planner cannot resolve becomes a ReviewItem
package models
