package model

import (
	"context"

	"github.com/google/uuid"
)

// PaymentGateway is the payment processor used at checkout.
type PaymentGateway interface {
	CreateCustomer(ctx context.Context, email, source string) (string, error)
	CreateCharge(ctx context.Context, req ChargeRequest) (Charge, error)
	// FindChargeByOrder returns ErrNotFound when no charge references orderID.
	FindChargeByOrder(ctx context.Context, orderID uuid.UUID) (Charge, error)
}

// ChargeRequest describes a charge in minor currency units.
type ChargeRequest struct {
	AmountMinor    int64
	Currency       string
	CustomerID     string
	Description    string
	Metadata       map[string]string
	IdempotencyKey string
}

// Charge is the processor's view of a payment. Pending is set while the
// processor has not settled it yet.
type Charge struct {
	ID        string
	Succeeded bool
	Pending   bool
	Metadata  map[string]string
}
