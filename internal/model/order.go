package model

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStore defines persistence operations for orders.
type OrderStore interface {
	// Create stores the order with its lines. If the buyer already has an order
	// with the same checkout key, that order is returned unchanged.
	Create(ctx context.Context, order Order) (Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]Order, error)
	MarkPaid(ctx context.Context, id uuid.UUID, chargeID string, paidAt time.Time) error
	MarkExpired(ctx context.Context, id uuid.UUID) error
	ListStale(ctx context.Context, createdBefore time.Time, limit int) ([]Order, error)
}

// OrderStatus is the payment state of an order.
type OrderStatus string

const (
	// OrderStatusCreated is set when the order is stored, before any charge.
	OrderStatusCreated OrderStatus = "created"
	// OrderStatusPaid is set once a charge for the order succeeded.
	OrderStatusPaid OrderStatus = "paid"
	// OrderStatusExpired is set by reconciliation when no charge was found.
	OrderStatusExpired OrderStatus = "expired"
)

// Order is an immutable record of a checkout.
type Order struct {
	ID          uuid.UUID
	BuyerID     uuid.UUID
	BuyerEmail  string
	Status      OrderStatus
	Lines       []OrderLine
	Shipping    Address
	Billing     Address
	Total       decimal.Decimal
	Currency    string
	ChargeID    string
	CheckoutKey uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PaidAt      *time.Time
}

// OrderLine is a snapshot of a product at the time of purchase.
type OrderLine struct {
	ProductID   uuid.UUID
	Title       string
	Description string
	ImageURL    string
	Price       decimal.Decimal
	Quantity    int
}

func (l OrderLine) UnitPrice() decimal.Decimal { return l.Price }
func (l OrderLine) Qty() int                   { return l.Quantity }

// Subtotal is price times quantity for the line.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SnapshotLine copies the product fields an order keeps.
func SnapshotLine(line CartLine) OrderLine {
	return OrderLine{
		ProductID:   line.Product.ID,
		Title:       line.Product.Title,
		Description: line.Product.Description,
		ImageURL:    line.Product.ImageURL,
		Price:       line.Product.Price,
		Quantity:    line.Quantity,
	}
}

// Address is a postal address captured at checkout.
type Address struct {
	Name     string `validate:"required,max=200"`
	Street   string `validate:"required,max=200"`
	City     string `validate:"required,max=100"`
	State    string `validate:"max=100"`
	Postcode string `validate:"required,max=20"`
	Country  string `validate:"required,max=100"`
}

// PlaceOrderParams carries buyer input submitted from the checkout page.
type PlaceOrderParams struct {
	PaymentToken string `validate:"required"`
	PaymentEmail string `validate:"required,email"`
	CheckoutKey  uuid.UUID
	Shipping     Address
	Billing      Address
}

// CheckoutSummary is what the checkout page shows before the order is placed.
type CheckoutSummary struct {
	Cart           Cart
	Total          decimal.Decimal
	Currency       string
	CheckoutKey    uuid.UUID
	PublishableKey string
}

// ReconcileReport summarises one reconciliation pass.
type ReconcileReport struct {
	Checked int
	Paid    int
	Expired int
	Pending int
	Failed  int
}
