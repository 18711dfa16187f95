// mealcart plans grocery carts from saved recipes.
//
// Usage:
//
//	mealcart import <recipes.json>
//	mealcart recipes
//	mealcart map <ingredient> <upc>
//	mealcart plan <recipe-id>...
//	mealcart search [-limit n] <ingredient>...
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mmynk/mealcart/internal/calculator"
	"github.com/mmynk/mealcart/internal/config"
	"github.com/mmynk/mealcart/internal/grocery"
	"github.com/mmynk/mealcart/internal/metrics"
	"github.com/mmynk/mealcart/internal/middleware"
	"github.com/mmynk/mealcart/internal/models"
	"github.com/mmynk/mealcart/internal/service"
	"github.com/mmynk/mealcart/internal/storage"
	"github.com/mmynk/mealcart/internal/storage/sqlite"
	"github.com/mmynk/mealcart/internal/units"
	"github.com/mmynk/mealcart/pkg/logging"
)

const usage = `usage:
  mealcart import <recipes.json>
  mealcart recipes
  mealcart map <ingredient> <upc>
  mealcart plan <recipe-id>...
  mealcart search [-limit n] <ingredient>...`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	// Load .env before logging so LOG_LEVEL may come from it
	cfg, err := config.Load()
	logging.Setup()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		return 1
	}
	defer store.Close()
	slog.Debug("Storage initialized", "database", cfg.DBPath)

	catalog, err := grocery.LoadFileCatalog(cfg.ProductsPath)
	if err != nil {
		slog.Error("Failed to load product catalog", "error", err)
		return 1
	}

	m := metrics.New()
	defer func() {
		if cfg.MetricsTextfile == "" {
			return
		}
		if err := m.WriteTextfile(cfg.MetricsTextfile); err != nil {
			slog.Warn("Failed to write metrics", "path", cfg.MetricsTextfile, "error", err)
		}
	}()

	var resolverOpts []calculator.Option
	if cfg.DensityBridging {
		resolverOpts = append(resolverOpts, calculator.WithDensity(units.Densities))
	}

	products := grocery.NewCachedSource(middleware.LogProducts(catalog, m), store, cfg.ProductCacheTTL, m)
	svc := service.NewPlanService(store, products, calculator.NewResolver(resolverOpts...),
		service.WithConcurrency(cfg.LookupConcurrency),
		service.WithMetrics(m),
		service.WithSearcher(middleware.LogSearches(catalog, m)),
	)

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "import":
		err = importCmd(ctx, svc, rest)
	case "recipes":
		err = recipesCmd(ctx, store, os.Stdout)
	case "map":
		err = mapCmd(ctx, svc, rest)
	case "plan":
		err = planCmd(ctx, svc, rest, os.Stdout)
	case "search":
		err = searchCmd(ctx, svc, rest, os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n%s\n", cmd, usage)
		return 2
	}
	if err != nil {
		slog.Error("Command failed", "command", cmd, "error", err)
		return 1
	}
	return 0
}

func importCmd(ctx context.Context, svc *service.PlanService, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("import takes one file, got %d arguments", len(args))
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read recipes: %w", err)
	}
	var recipes []*models.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return fmt.Errorf("failed to decode recipes: %w", err)
	}
	if err := svc.ImportRecipes(ctx, recipes); err != nil {
		return err
	}
	for _, r := range recipes {
		fmt.Printf("%s\t%s\n", r.ID, r.Name)
	}
	return nil
}

func recipesCmd(ctx context.Context, store storage.RecipeStore, w io.Writer) error {
	recipes, err := store.ListRecipes(ctx)
	if err != nil {
		return err
	}
	for _, r := range recipes {
		fmt.Fprintf(w, "%s\t%s\n", r.ID, r.Name)
	}
	return nil
}

func mapCmd(ctx context.Context, svc *service.PlanService, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("map takes an ingredient and a UPC")
	}
	ingredient := strings.Join(args[:len(args)-1], " ")
	return svc.MapIngredient(ctx, ingredient, args[len(args)-1])
}

// planOutput is the cart review printed by the plan command.
type planOutput struct {
	*models.CartPlan
	Submission []models.SubmissionLine `json:"submission"`
	Total      string                  `json:"estimated_total"`
	Display    []string                `json:"display"`
}

func planCmd(ctx context.Context, svc *service.PlanService, args []string, w io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("plan needs at least one recipe ID")
	}
	plan, err := svc.BuildCart(ctx, args)
	if err != nil {
		return err
	}

	out := planOutput{
		CartPlan:   plan,
		Submission: plan.Submission(),
		Total:      plan.Total().StringFixed(2),
	}
	for _, req := range plan.Requirements {
		qty, unit := req.Display()
		out.Display = append(out.Display, fmt.Sprintf("%s %s %s", qty.String(), unit, req.Name))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func searchCmd(ctx context.Context, svc *service.PlanService, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	limit := fs.Int("limit", 5, "maximum products per ingredient")
	if err := fs.Parse(args); err != nil {
		return err
	}
	names := fs.Args()
	if len(names) == 0 {
		return fmt.Errorf("search needs at least one ingredient name")
	}

	results, err := svc.SearchIngredients(ctx, names, *limit)
	if err != nil {
		return err
	}
	for _, name := range names {
		res := results[name]
		if res.Err != nil {
			fmt.Fprintf(w, "%s: error: %v\n", name, res.Err)
			continue
		}
		fmt.Fprintf(w, "%s:\n", name)
		for _, p := range res.Products {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", p.UPC, p.Name, p.Size, p.Price().StringFixed(2))
		}
	}
	return nil
}
