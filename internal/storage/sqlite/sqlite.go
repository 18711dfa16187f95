// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/mealcart/internal/models"
	"github.com/mmynk/mealcart/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection, so the pragma below holds for every query
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateRecipe persists a new recipe and its ingredient lines.
func (s *SQLiteStore) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	// Generate ID if not set
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	if recipe.CreatedAt == 0 {
		recipe.CreatedAt = s.now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO recipes (id, name, created_at) VALUES (?, ?, ?)",
		recipe.ID, recipe.Name, recipe.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}

	for i, line := range recipe.Ingredients {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO ingredient_lines (recipe_id, position, ingredient_id, name, quantity, unit) VALUES (?, ?, ?, ?, ?, ?)",
			recipe.ID, i, line.IngredientID, line.Name, line.Quantity.String(), line.Unit,
		)
		if err != nil {
			return fmt.Errorf("failed to insert ingredient line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRecipe retrieves a recipe by ID, including its ingredient lines in order.
func (s *SQLiteStore) GetRecipe(ctx context.Context, recipeID string) (*models.Recipe, error) {
	recipe := &models.Recipe{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM recipes WHERE id = ?",
		recipeID,
	).Scan(&recipe.ID, &recipe.Name, &recipe.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recipe %s: %w", recipeID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT ingredient_id, name, quantity, unit FROM ingredient_lines WHERE recipe_id = ? ORDER BY position",
		recipeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredient lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			line models.IngredientLine
			qty  string
		)
		if err := rows.Scan(&line.IngredientID, &line.Name, &qty, &line.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient line: %w", err)
		}
		line.Quantity, err = decimal.NewFromString(qty)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q for %s: %w", qty, line.Name, err)
		}
		recipe.Ingredients = append(recipe.Ingredients, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ingredient lines: %w", err)
	}

	return recipe, nil
}

// ListRecipes returns every recipe without its ingredient lines, newest first.
func (s *SQLiteStore) ListRecipes(ctx context.Context) ([]*models.Recipe, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM recipes ORDER BY created_at DESC, name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*models.Recipe
	for rows.Next() {
		recipe := &models.Recipe{}
		if err := rows.Scan(&recipe.ID, &recipe.Name, &recipe.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipes: %w", err)
	}

	return recipes, nil
}

// DeleteRecipe removes a recipe. Ingredient lines cascade.
func (s *SQLiteStore) DeleteRecipe(ctx context.Context, recipeID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM recipes WHERE id = ?", recipeID)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("recipe %s: %w", recipeID, storage.ErrNotFound)
	}
	return nil
}
