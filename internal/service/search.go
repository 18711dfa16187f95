package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/mealcart/internal/retail"
)

// SearchResult holds the candidate products for one ingredient name.
type SearchResult struct {
	Products []retail.Product
	Err      error
}

// SearchIngredients searches the product catalog for every name with at most
// s.concurrency searches in flight. Results are keyed by name; a failed
// search is reported in its own entry and does not stop the rest.
func (s *PlanService) SearchIngredients(ctx context.Context, names []string, limit int) (map[string]SearchResult, error) {
	if s.searcher == nil {
		return nil, fmt.Errorf("product search is not configured")
	}

	results := make([]SearchResult, len(names))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, name := range names {
		g.Go(func() error {
			products, err := s.searcher.Search(ctx, name, limit)
			if err != nil {
				slog.Warn("Ingredient search failed", "ingredient", name, "error", err)
			}
			results[i] = SearchResult{Products: products, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]SearchResult, len(names))
	for i, name := range names {
		out[name] = results[i]
	}
	return out, nil
}
