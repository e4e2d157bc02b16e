package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem holds a denormalized product snapshot taken at the time the
// product was added, so later catalog edits don't change an open cart.
type CartItem struct {
	Product  Product   `json:"product"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

// Cart keeps items in insertion order. At most one item per product id;
// no item is ever stored with a quantity below 1.
type Cart struct {
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalItems is the sum of all quantities.
func (c Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPriceDecimal sums price*quantity with decimal arithmetic so the
// two-decimal display total doesn't accumulate float error.
func (c Cart) TotalPriceDecimal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		price := decimal.NewFromFloat(item.Product.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}

func (c Cart) TotalPrice() float64 {
	f, _ := c.TotalPriceDecimal().Float64()
	return f
}
