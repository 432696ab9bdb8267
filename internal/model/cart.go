package model

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartStore defines persistence operations for a user's cart.
type CartStore interface {
	// Increment adds one unit of productID, creating the line when absent.
	Increment(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	// RemoveOrdered takes the ordered quantities out of the cart and drops
	// lines that reach zero. Units added after the order was built stay.
	RemoveOrdered(ctx context.Context, userID uuid.UUID, lines []OrderLine) error
	// Lines returns cart lines joined with the current product rows.
	Lines(ctx context.Context, userID uuid.UUID) ([]CartLine, error)
}

// CartLine is one product in a cart with the live product data.
type CartLine struct {
	Product  Product
	Quantity int
}

func (l CartLine) UnitPrice() decimal.Decimal { return l.Product.Price }
func (l CartLine) Qty() int                   { return l.Quantity }

// Cart is the resolved content of a user's cart.
type Cart struct {
	UserID uuid.UUID
	Lines  []CartLine
}

// Total is priced at the current catalog prices.
func (c Cart) Total() decimal.Decimal {
	return ComputeTotal(c.Lines)
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// PricedLine is a line that can be totalled.
type PricedLine interface {
	UnitPrice() decimal.Decimal
	Qty() int
}

// ComputeTotal sums quantity times unit price over lines.
func ComputeTotal[L PricedLine](lines []L) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Qty()))))
	}
	return total
}
