// Package retail describes grocery-retailer products as they arrive from the
// retailer's product API, and infers how each one is sold.
package retail

import (
	"github.com/shopspring/decimal"
)

// Product is one retailer product as returned by the product API.
type Product struct {
	// UPC is the retailer's product identifier.
	UPC string `json:"upc"`

	Name  string `json:"name"`
	Brand string `json:"brand"`

	// Size is the free-form pack size, e.g. "16.9 fl oz" or "8 ct / 22 oz".
	Size string `json:"size"`

	// SoldBy is the raw sale basis field. Often empty for perishables.
	SoldBy string `json:"sold_by"`

	// UnitOfMeasure is the retailer's raw unit-of-measure field, used when
	// Size is unusable.
	UnitOfMeasure string `json:"unit_of_measure"`

	Categories []string `json:"categories"`

	RegularPrice decimal.Decimal     `json:"regular_price"`
	PromoPrice   decimal.NullDecimal `json:"promo_price"`
	OnSale       bool                `json:"on_sale"`

	// StockLevel is the retailer's stock label, e.g. "HIGH", "LOW", "TEMPORARILY_OUT_OF_STOCK".
	StockLevel string `json:"stock_level"`

	Aisle string `json:"aisle"`
}

// Price returns the promo price when the product is on sale, the regular price otherwise.
func (p *Product) Price() decimal.Decimal {
	if p.OnSale && p.PromoPrice.Valid {
		return p.PromoPrice.Decimal
	}
	return p.RegularPrice
}

// SaleBasis returns the inferred sale basis for the product.
func (p *Product) SaleBasis() SoldBy {
	return InferSoldBy(p.SoldBy, p.Size, p.Categories)
}
