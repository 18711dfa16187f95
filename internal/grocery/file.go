package grocery

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mmynk/mealcart/internal/retail"
)

// Ensure FileCatalog implements Catalog
var _ Catalog = (*FileCatalog)(nil)

// FileCatalog serves products from a JSON export of the retailer catalog.
// It is read-only after construction.
type FileCatalog struct {
	products []retail.Product
	byUPC    map[string]int
}

// LoadFileCatalog reads a JSON array of products.
func LoadFileCatalog(path string) (*FileCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open product catalog: %w", err)
	}
	defer f.Close()

	var products []retail.Product
	if err := json.NewDecoder(f).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode product catalog %s: %w", path, err)
	}
	return NewFileCatalog(products), nil
}

// NewFileCatalog builds a catalog from products already in memory.
// Later duplicates of a UPC are ignored.
func NewFileCatalog(products []retail.Product) *FileCatalog {
	c := &FileCatalog{byUPC: make(map[string]int, len(products))}
	for _, p := range products {
		if _, dup := c.byUPC[p.UPC]; dup || p.UPC == "" {
			continue
		}
		c.byUPC[p.UPC] = len(c.products)
		c.products = append(c.products, p)
	}
	return c
}

// Product returns a copy of the product with the given UPC.
func (c *FileCatalog) Product(ctx context.Context, upc string) (*retail.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := c.byUPC[upc]
	if !ok {
		return nil, fmt.Errorf("upc %s: %w", upc, ErrProductNotFound)
	}
	p := c.products[i]
	return &p, nil
}

// Search ranks products by how many words of term appear in their name,
// brand or categories. Products matching no word are left out.
func (c *FileCatalog) Search(ctx context.Context, term string, limit int) ([]retail.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	words := strings.Fields(strings.ToLower(term))
	if len(words) == 0 {
		return nil, nil
	}

	type hit struct {
		index int
		score int
	}
	var hits []hit
	for i := range c.products {
		if score := matchScore(&c.products[i], words); score > 0 {
			hits = append(hits, hit{i, score})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].score > hits[b].score })

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]retail.Product, 0, len(hits))
	for _, h := range hits {
		out = append(out, c.products[h.index])
	}
	return out, nil
}

func matchScore(p *retail.Product, words []string) int {
	haystack := strings.ToLower(p.Name + " " + p.Brand + " " + strings.Join(p.Categories, " "))
	score := 0
	for _, w := range words {
		if strings.Contains(haystack, w) {
			score++
		}
	}
	return score
}
