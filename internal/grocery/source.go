// Package grocery provides access to retailer product data: the lookup and
// search interfaces the planner depends on, a JSON catalog implementation and
// a caching decorator.
package grocery

import (
	"context"
	"errors"

	"github.com/mmynk/mealcart/internal/retail"
)

// ErrProductNotFound is returned when a UPC is unknown to the source.
var ErrProductNotFound = errors.New("product not found")

// ProductSource looks up current product details by UPC.
type ProductSource interface {
	Product(ctx context.Context, upc string) (*retail.Product, error)
}

// Searcher finds products matching a free-text ingredient name.
type Searcher interface {
	Search(ctx context.Context, term string, limit int) ([]retail.Product, error)
}

// Catalog is a product source that can also search.
type Catalog interface {
	ProductSource
	Searcher
}
