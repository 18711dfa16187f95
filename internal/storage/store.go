// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/mealcart/internal/models"
	"github.com/mmynk/mealcart/internal/retail"
)

// ErrNotFound is returned when a recipe, mapping or cached product does not exist.
var ErrNotFound = errors.New("not found")

// RecipeStore persists imported recipes.
type RecipeStore interface {
	// CreateRecipe persists a new recipe.
	// The recipe.ID field will be populated by the store.
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error

	// GetRecipe retrieves a recipe and its ingredient lines.
	// Returns ErrNotFound if the recipe does not exist.
	GetRecipe(ctx context.Context, recipeID string) (*models.Recipe, error)

	// ListRecipes returns all recipes, newest first, without ingredients.
	ListRecipes(ctx context.Context) ([]*models.Recipe, error)

	// DeleteRecipe removes a recipe. Returns ErrNotFound if it does not exist.
	DeleteRecipe(ctx context.Context, recipeID string) error
}

// MappingStore persists the user's choice of retail product per ingredient.
type MappingStore interface {
	// SetProductMapping maps an ingredient key to a UPC, replacing any previous choice.
	SetProductMapping(ctx context.Context, ingredientKey, upc string) error

	// GetProductMapping returns the UPC mapped to an ingredient key.
	// Returns ErrNotFound if the ingredient has not been mapped.
	GetProductMapping(ctx context.Context, ingredientKey string) (string, error)
}

// ProductCache keeps retailer product details between lookups.
type ProductCache interface {
	// PutProduct stores product details, stamped with the current time.
	PutProduct(ctx context.Context, product *retail.Product) error

	// GetProduct returns cached details no older than maxAge.
	// Returns ErrNotFound if the product is missing or stale.
	GetProduct(ctx context.Context, upc string, maxAge time.Duration) (*retail.Product, error)
}

// Store defines every storage operation mealcart needs.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	RecipeStore
	MappingStore
	ProductCache

	// Close releases any resources held by the store.
	Close() error
}
