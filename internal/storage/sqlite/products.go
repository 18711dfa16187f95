package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mmynk/mealcart/internal/retail"
	"github.com/mmynk/mealcart/internal/storage"
)

// productRecord is the msgpack shape of a cached product.
// Prices are kept as decimal strings.
type productRecord struct {
	UPC           string   `msgpack:"upc,omitempty"`
	Name          string   `msgpack:"name,omitempty"`
	Brand         string   `msgpack:"brand,omitempty"`
	Size          string   `msgpack:"size,omitempty"`
	SoldBy        string   `msgpack:"sold_by,omitempty"`
	UnitOfMeasure string   `msgpack:"uom,omitempty"`
	Categories    []string `msgpack:"categories,omitempty"`
	RegularPrice  string   `msgpack:"regular_price,omitempty"`
	PromoPrice    string   `msgpack:"promo_price,omitempty"`
	OnSale        bool     `msgpack:"on_sale,omitempty"`
	StockLevel    string   `msgpack:"stock_level,omitempty"`
	Aisle         string   `msgpack:"aisle,omitempty"`
}

func newProductRecord(p *retail.Product) productRecord {
	rec := productRecord{
		UPC:           p.UPC,
		Name:          p.Name,
		Brand:         p.Brand,
		Size:          p.Size,
		SoldBy:        p.SoldBy,
		UnitOfMeasure: p.UnitOfMeasure,
		Categories:    p.Categories,
		RegularPrice:  p.RegularPrice.String(),
		OnSale:        p.OnSale,
		StockLevel:    p.StockLevel,
		Aisle:         p.Aisle,
	}
	if p.PromoPrice.Valid {
		rec.PromoPrice = p.PromoPrice.Decimal.String()
	}
	return rec
}

func toProduct(rec *productRecord) (*retail.Product, error) {
	p := &retail.Product{
		UPC:           rec.UPC,
		Name:          rec.Name,
		Brand:         rec.Brand,
		Size:          rec.Size,
		SoldBy:        rec.SoldBy,
		UnitOfMeasure: rec.UnitOfMeasure,
		Categories:    rec.Categories,
		OnSale:        rec.OnSale,
		StockLevel:    rec.StockLevel,
		Aisle:         rec.Aisle,
	}
	if rec.RegularPrice != "" {
		price, err := decimal.NewFromString(rec.RegularPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid regular price %q: %w", rec.RegularPrice, err)
		}
		p.RegularPrice = price
	}
	if rec.PromoPrice != "" {
		promo, err := decimal.NewFromString(rec.PromoPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid promo price %q: %w", rec.PromoPrice, err)
		}
		p.PromoPrice = decimal.NewNullDecimal(promo)
	}
	return p, nil
}

// PutProduct caches product details as a msgpack blob.
func (s *SQLiteStore) PutProduct(ctx context.Context, product *retail.Product) error {
	rec := newProductRecord(product)
	data, err := msgpack.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("failed to encode product %s: %w", product.UPC, err)
	}

	query := `
		INSERT INTO product_cache (upc, data, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(upc) DO UPDATE SET data = excluded.data, fetched_at = excluded.fetched_at
	`
	if _, err := s.db.ExecContext(ctx, query, product.UPC, data, s.now().Unix()); err != nil {
		return fmt.Errorf("failed to cache product: %w", err)
	}
	return nil
}

// GetProduct returns cached product details fetched within maxAge.
// A non-positive maxAge accepts any age.
func (s *SQLiteStore) GetProduct(ctx context.Context, upc string, maxAge time.Duration) (*retail.Product, error) {
	var (
		data      []byte
		fetchedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT data, fetched_at FROM product_cache WHERE upc = ?",
		upc,
	).Scan(&data, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %s: %w", upc, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached product: %w", err)
	}

	if maxAge > 0 && s.now().Sub(time.Unix(fetchedAt, 0)) > maxAge {
		return nil, fmt.Errorf("product %s is stale: %w", upc, storage.ErrNotFound)
	}

	var rec productRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode product %s: %w", upc, err)
	}
	return toProduct(&rec)
}
