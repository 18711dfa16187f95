package grocery

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmynk/mealcart/internal/metrics"
	"github.com/mmynk/mealcart/internal/retail"
	"github.com/mmynk/mealcart/internal/storage"
)

// CachedSource serves product details from a cache, falling back to an
// upstream source and storing what it fetched.
type CachedSource struct {
	upstream ProductSource
	cache    storage.ProductCache
	ttl      time.Duration
	metrics  *metrics.Metrics
}

// NewCachedSource wraps upstream with cache. Entries older than ttl are refetched.
func NewCachedSource(upstream ProductSource, cache storage.ProductCache, ttl time.Duration, m *metrics.Metrics) *CachedSource {
	return &CachedSource{upstream: upstream, cache: cache, ttl: ttl, metrics: m}
}

// Product returns cached details when fresh, otherwise fetches and caches them.
// Cache failures are logged and never fail the lookup.
func (s *CachedSource) Product(ctx context.Context, upc string) (*retail.Product, error) {
	p, err := s.cache.GetProduct(ctx, upc, s.ttl)
	if err == nil {
		s.metrics.ObserveCache(true)
		return p, nil
	}
	s.metrics.ObserveCache(false)
	if !errors.Is(err, storage.ErrNotFound) {
		slog.Warn("Product cache read failed", "upc", upc, "error", err)
	}

	p, err = s.upstream.Product(ctx, upc)
	if err != nil {
		return nil, err
	}

	if err := s.cache.PutProduct(ctx, p); err != nil {
		slog.Warn("Product cache write failed", "upc", upc, "error", err)
	}
	return p, nil
}
