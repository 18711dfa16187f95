package models

import (
	"github.com/shopspring/decimal"
)

// CartItem is one retail product to add to the cart, with enough detail to
// render a pre-submission review.
type CartItem struct {
	// Ingredient is the requirement key this item covers.
	Ingredient string `json:"ingredient"`

	UPC      string `json:"upc"`
	Quantity int    `json:"quantity"`

	Name       string          `json:"name"`
	Brand      string          `json:"brand"`
	Size       string          `json:"size"`
	SoldBy     string          `json:"sold_by"`
	Price      decimal.Decimal `json:"price"`
	OnSale     bool            `json:"on_sale"`
	Aisle      string          `json:"aisle,omitempty"`
	StockLevel string          `json:"stock_level,omitempty"`
}

// ReviewItem is a requirement the planner could not turn into a purchase
// quantity. It keeps the raw data the user needs to fix it by hand.
type ReviewItem struct {
	Ingredient string          `json:"ingredient"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`

	// UPC is the mapped product, if any.
	UPC string `json:"upc,omitempty"`

	Reason  string   `json:"reason"`
	Recipes []string `json:"recipes"`
}

// CartPlan is the result of planning a cart for a set of recipes.
type CartPlan struct {
	Requirements []Requirement `json:"requirements"`
	Items        []CartItem    `json:"items"`
	Review       []ReviewItem  `json:"review"`
}

// SubmissionLine is one (UPC, quantity) pair for the cart-submission workflow.
type SubmissionLine struct {
	UPC      string `json:"upc"`
	Quantity int    `json:"quantity"`
}

// Submission returns the lines to push to the retailer cart. Items sharing a
// UPC are merged; items with a zero quantity are never submitted.
func (p *CartPlan) Submission() []SubmissionLine {
	var lines []SubmissionLine
	index := make(map[string]int)
	for _, item := range p.Items {
		if item.Quantity <= 0 || item.UPC == "" {
			continue
		}
		if i, ok := index[item.UPC]; ok {
			lines[i].Quantity += item.Quantity
			continue
		}
		index[item.UPC] = len(lines)
		lines = append(lines, SubmissionLine{UPC: item.UPC, Quantity: item.Quantity})
	}
	return lines
}

// Total returns the estimated cart total at current prices.
func (p *CartPlan) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
