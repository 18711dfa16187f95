package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/mealcart/internal/storage"
)

// SetProductMapping records the UPC chosen for an ingredient.
func (s *SQLiteStore) SetProductMapping(ctx context.Context, ingredientKey, upc string) error {
	query := `
		INSERT INTO product_mappings (ingredient_key, upc, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(ingredient_key) DO UPDATE SET upc = excluded.upc, updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, ingredientKey, upc, s.now().Unix()); err != nil {
		return fmt.Errorf("failed to set product mapping: %w", err)
	}
	return nil
}

// GetProductMapping returns the UPC chosen for an ingredient.
func (s *SQLiteStore) GetProductMapping(ctx context.Context, ingredientKey string) (string, error) {
	var upc string
	err := s.db.QueryRowContext(ctx,
		"SELECT upc FROM product_mappings WHERE ingredient_key = ?",
		ingredientKey,
	).Scan(&upc)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("mapping for %q: %w", ingredientKey, storage.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get product mapping: %w", err)
	}
	return upc, nil
}
