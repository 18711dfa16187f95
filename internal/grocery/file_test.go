package grocery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/mealcart/internal/retail"
)

const catalogJSON = `[
  {"upc": "001", "name": "All Purpose Flour", "brand": "Gold Medal", "size": "5 lb", "categories": ["Baking"], "regular_price": "3.49"},
  {"upc": "002", "name": "Bread Flour", "brand": "King Arthur", "size": "5 lb", "categories": ["Baking"], "regular_price": 6.99, "promo_price": "5.99", "on_sale": true},
  {"upc": "003", "name": "Boneless Chicken Breast", "size": "1 lb", "categories": ["Meat & Seafood"], "regular_price": "4.99", "promo_price": null},
  {"upc": "001", "name": "Duplicate", "size": "1 oz"}
]`

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogJSON), 0o644))
	return path
}

func TestLoadFileCatalog(t *testing.T) {
	c, err := LoadFileCatalog(writeCatalog(t))
	require.NoError(t, err)
	ctx := context.Background()

	p, err := c.Product(ctx, "002")
	require.NoError(t, err)
	assert.Equal(t, "Bread Flour", p.Name)
	assert.Equal(t, "5.99", p.Price().StringFixed(2))

	p, err = c.Product(ctx, "003")
	require.NoError(t, err)
	assert.False(t, p.PromoPrice.Valid)
	assert.Equal(t, retail.SoldByWeight, p.SaleBasis())

	p, err = c.Product(ctx, "001")
	require.NoError(t, err)
	assert.Equal(t, "All Purpose Flour", p.Name, "first UPC wins")

	_, err = c.Product(ctx, "999")
	assert.True(t, errors.Is(err, ErrProductNotFound))
}

func TestLoadFileCatalogErrors(t *testing.T) {
	_, err := LoadFileCatalog(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"not": "an array"}`), 0o644))
	_, err = LoadFileCatalog(bad)
	assert.Error(t, err)
}

func TestFileCatalogSearch(t *testing.T) {
	c, err := LoadFileCatalog(writeCatalog(t))
	require.NoError(t, err)
	ctx := context.Background()

	got, err := c.Search(ctx, "bread flour", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "002", got[0].UPC, "both words match")
	assert.Equal(t, "001", got[1].UPC)

	got, err = c.Search(ctx, "flour", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = c.Search(ctx, "chicken", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "003", got[0].UPC)

	got, err = c.Search(ctx, "   ", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileCatalogHonorsCancellation(t *testing.T) {
	c := NewFileCatalog([]retail.Product{{UPC: "001", Name: "Milk"}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Product(ctx, "001")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = c.Search(ctx, "milk", 1)
	assert.ErrorIs(t, err, context.Canceled)
}
