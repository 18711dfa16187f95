// Package service wires storage, product sources and the calculator into the
// operations the CLI exposes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/mealcart/internal/calculator"
	"github.com/mmynk/mealcart/internal/grocery"
	"github.com/mmynk/mealcart/internal/metrics"
	"github.com/mmynk/mealcart/internal/models"
	"github.com/mmynk/mealcart/internal/retail"
	"github.com/mmynk/mealcart/internal/storage"
)

// DefaultConcurrency caps outstanding product lookups and searches.
const DefaultConcurrency = 5

// Option configures a PlanService.
type Option func(*PlanService)

// WithConcurrency sets the lookup limit. Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(s *PlanService) {
		if n >= 1 {
			s.concurrency = n
		}
	}
}

// WithMetrics records resolution outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *PlanService) {
		s.metrics = m
	}
}

// WithSearcher enables SearchIngredients.
func WithSearcher(searcher grocery.Searcher) Option {
	return func(s *PlanService) {
		s.searcher = searcher
	}
}

// PlanService turns selected recipes into a cart.
type PlanService struct {
	store       storage.Store
	products    grocery.ProductSource
	searcher    grocery.Searcher
	resolver    *calculator.Resolver
	metrics     *metrics.Metrics
	concurrency int
}

// NewPlanService creates a PlanService with the given storage backend and product source.
func NewPlanService(store storage.Store, products grocery.ProductSource, resolver *calculator.Resolver, opts ...Option) *PlanService {
	s := &PlanService{
		store:       store,
		products:    products,
		resolver:    resolver,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// validateRecipe checks a recipe before it is stored.
func validateRecipe(r *models.Recipe) error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("recipe name is required")
	}
	for i, line := range r.Ingredients {
		if strings.TrimSpace(line.Name) == "" {
			return fmt.Errorf("recipe %q: ingredient %d has no name", r.Name, i+1)
		}
		if line.Quantity.IsNegative() {
			return fmt.Errorf("recipe %q: ingredient %q has a negative quantity", r.Name, line.Name)
		}
	}
	return nil
}

// ImportRecipes validates and stores recipes, filling in their IDs.
// It stops at the first invalid recipe; earlier ones stay stored.
func (s *PlanService) ImportRecipes(ctx context.Context, recipes []*models.Recipe) error {
	for _, r := range recipes {
		if err := validateRecipe(r); err != nil {
			return err
		}
		if err := s.store.CreateRecipe(ctx, r); err != nil {
			slog.Error("ImportRecipes: failed to store recipe", "name", r.Name, "error", err)
			return fmt.Errorf("failed to import recipe %q: %w", r.Name, err)
		}
		slog.Info("Recipe imported", "recipe_id", r.ID, "name", r.Name, "ingredients", len(r.Ingredients))
	}
	return nil
}

// MapIngredient records which product to buy for an ingredient.
// The UPC must be known to the product source.
func (s *PlanService) MapIngredient(ctx context.Context, ingredient, upc string) error {
	key := models.IngredientKey(ingredient)
	if key == "" {
		return fmt.Errorf("ingredient is required")
	}
	p, err := s.products.Product(ctx, upc)
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", upc, err)
	}
	if err := s.store.SetProductMapping(ctx, key, upc); err != nil {
		return err
	}
	slog.Info("Ingredient mapped", "ingredient", key, "upc", upc, "product", p.Name)
	return nil
}

// fetched is the outcome of one product lookup.
type fetched struct {
	product *retail.Product
	err     error
}

// BuildCart aggregates the given recipes and resolves a purchase quantity
// for every requirement with a mapped product. Requirements that cannot be
// resolved become review items; only a missing recipe or a store failure
// fails the whole plan.
func (s *PlanService) BuildCart(ctx context.Context, recipeIDs []string) (*models.CartPlan, error) {
	if len(recipeIDs) == 0 {
		return nil, fmt.Errorf("at least one recipe is required")
	}

	recipes := make([]models.Recipe, 0, len(recipeIDs))
	for _, id := range recipeIDs {
		r, err := s.store.GetRecipe(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}

	plan := &models.CartPlan{Requirements: calculator.Aggregate(recipes)}

	upcs := make([]string, len(plan.Requirements))
	var toFetch []string
	seen := make(map[string]bool)
	for i, req := range plan.Requirements {
		upc, err := s.store.GetProductMapping(ctx, req.Key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load product mapping: %w", err)
		}
		upcs[i] = upc
		if !seen[upc] {
			seen[upc] = true
			toFetch = append(toFetch, upc)
		}
	}

	products := s.fetchProducts(ctx, toFetch)

	for i, req := range plan.Requirements {
		upc := upcs[i]
		if upc == "" {
			plan.Review = append(plan.Review, reviewItem(req, "", "no product mapped"))
			continue
		}

		f := products[upc]
		if f.err != nil {
			plan.Review = append(plan.Review, reviewItem(req, upc, fmt.Sprintf("product lookup failed: %v", f.err)))
			continue
		}

		pack := calculator.PackOf(f.product)
		res := s.resolver.Resolve(req, pack)
		s.metrics.ObserveResolution(res.Status.String(), string(pack.SoldBy))
		if res.Status != calculator.Resolved {
			slog.Warn("Requirement needs review",
				"ingredient", req.Key,
				"upc", upc,
				"status", res.Status,
				"reason", res.Reason,
			)
			plan.Review = append(plan.Review, reviewItem(req, upc, res.Reason))
			continue
		}

		plan.Items = append(plan.Items, cartItem(req, f.product, pack.SoldBy, res.Quantity))
	}

	slog.Info("Cart planned",
		"recipes", len(recipes),
		"requirements", len(plan.Requirements),
		"items", len(plan.Items),
		"review", len(plan.Review),
	)
	return plan, nil
}

// fetchProducts looks up every UPC with at most s.concurrency requests in
// flight. A failed lookup is recorded for its UPC and never cancels the others.
func (s *PlanService) fetchProducts(ctx context.Context, upcs []string) map[string]fetched {
	results := make([]fetched, len(upcs))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, upc := range upcs {
		g.Go(func() error {
			p, err := s.products.Product(ctx, upc)
			results[i] = fetched{product: p, err: err}
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]fetched, len(upcs))
	for i, upc := range upcs {
		out[upc] = results[i]
	}
	return out
}

func reviewItem(req models.Requirement, upc, reason string) models.ReviewItem {
	return models.ReviewItem{
		Ingredient: req.Key,
		Name:       req.Name,
		Quantity:   req.Quantity,
		Unit:       req.Unit,
		UPC:        upc,
		Reason:     reason,
		Recipes:    req.Recipes,
	}
}

func cartItem(req models.Requirement, p *retail.Product, soldBy retail.SoldBy, qty int) models.CartItem {
	return models.CartItem{
		Ingredient: req.Key,
		UPC:        p.UPC,
		Quantity:   qty,
		Name:       p.Name,
		Brand:      p.Brand,
		Size:       p.Size,
		SoldBy:     string(soldBy),
		Price:      p.Price(),
		OnSale:     p.OnSale,
		Aisle:      p.Aisle,
		StockLevel: p.StockLevel,
	}
}
