// Package middleware decorates product sources with cross-cutting behavior.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmynk/mealcart/internal/grocery"
	"github.com/mmynk/mealcart/internal/metrics"
	"github.com/mmynk/mealcart/internal/retail"
)

// LogProducts returns a ProductSource that logs and times every lookup.
// Unknown UPCs are logged as warnings, other failures as errors.
func LogProducts(next grocery.ProductSource, m *metrics.Metrics) grocery.ProductSource {
	return &loggingSource{next: next, metrics: m}
}

type loggingSource struct {
	next    grocery.ProductSource
	metrics *metrics.Metrics
}

func (s *loggingSource) Product(ctx context.Context, upc string) (*retail.Product, error) {
	start := time.Now()

	p, err := s.next.Product(ctx, upc)

	elapsed := time.Since(start)
	duration := elapsed.Milliseconds()
	switch {
	case errors.Is(err, grocery.ErrProductNotFound):
		s.metrics.ObserveLookup("product", "not_found", elapsed)
		slog.Warn("Product lookup missed",
			"upc", upc,
			"error", err,
			"duration_ms", duration,
		)
	case err != nil:
		s.metrics.ObserveLookup("product", "error", elapsed)
		slog.Error("Product lookup failed",
			"upc", upc,
			"error", err,
			"duration_ms", duration,
		)
	default:
		s.metrics.ObserveLookup("product", "ok", elapsed)
		slog.Info("Product lookup ok",
			"upc", upc,
			"sold_by", p.SaleBasis(),
			"duration_ms", duration,
		)
	}

	return p, err
}

// LogSearches returns a Searcher that logs and times every search.
func LogSearches(next grocery.Searcher, m *metrics.Metrics) grocery.Searcher {
	return &loggingSearcher{next: next, metrics: m}
}

type loggingSearcher struct {
	next    grocery.Searcher
	metrics *metrics.Metrics
}

func (s *loggingSearcher) Search(ctx context.Context, term string, limit int) ([]retail.Product, error) {
	start := time.Now()

	products, err := s.next.Search(ctx, term, limit)

	elapsed := time.Since(start)
	if err != nil {
		s.metrics.ObserveLookup("search", "error", elapsed)
		slog.Error("Product search failed",
			"term", term,
			"error", err,
			"duration_ms", elapsed.Milliseconds(),
		)
		return nil, err
	}

	s.metrics.ObserveLookup("search", "ok", elapsed)
	slog.Info("Product search ok",
		"term", term,
		"results", len(products),
		"duration_ms", elapsed.Milliseconds(),
	)
	return products, nil
}
