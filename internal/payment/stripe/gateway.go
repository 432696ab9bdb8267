// Package stripe implements the checkout payment gateway on the Stripe API.
package stripe

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	stripeapi "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/charge"
	"github.com/stripe/stripe-go/v76/customer"

	"github.com/dtroode/storefront/internal/apperror"
	"github.com/dtroode/storefront/internal/model"
)

const orderIDMetadataKey = "order_id"

type customerAPI interface {
	New(params *stripeapi.CustomerParams) (*stripeapi.Customer, error)
}

type chargeAPI interface {
	New(params *stripeapi.ChargeParams) (*stripeapi.Charge, error)
	Search(params *stripeapi.ChargeSearchParams) chargeIter
}

type chargeIter interface {
	Next() bool
	Charge() *stripeapi.Charge
	Err() error
}

type chargeClientWrapper struct{ c *charge.Client }

func (w chargeClientWrapper) New(params *stripeapi.ChargeParams) (*stripeapi.Charge, error) {
	return w.c.New(params)
}

func (w chargeClientWrapper) Search(params *stripeapi.ChargeSearchParams) chargeIter {
	return w.c.Search(params)
}

var _ model.PaymentGateway = (*Gateway)(nil)

// Gateway creates Stripe customers and charges.
type Gateway struct {
	customers customerAPI
	charges   chargeAPI
}

// NewGateway creates a Gateway authenticated with the secret key.
func NewGateway(secretKey string) *Gateway {
	backend := stripeapi.GetBackend(stripeapi.APIBackend)
	return NewGatewayWithAPI(
		&customer.Client{B: backend, Key: secretKey},
		chargeClientWrapper{c: &charge.Client{B: backend, Key: secretKey}},
	)
}

// NewGatewayWithAPI allows injecting fake API clients (used in tests).
func NewGatewayWithAPI(customers customerAPI, charges chargeAPI) *Gateway {
	return &Gateway{customers: customers, charges: charges}
}

func (g *Gateway) CreateCustomer(ctx context.Context, email, source string) (string, error) {
	params := &stripeapi.CustomerParams{
		Email:  stripeapi.String(email),
		Source: stripeapi.String(source),
	}
	params.Context = ctx

	c, err := g.customers.New(params)
	if err != nil {
		return "", paymentError("failed to create payment customer", err)
	}
	return c.ID, nil
}

// CreateCharge charges the customer. The idempotency key makes a repeated
// request return the original charge instead of charging twice.
func (g *Gateway) CreateCharge(ctx context.Context, req model.ChargeRequest) (model.Charge, error) {
	params := &stripeapi.ChargeParams{
		Amount:      stripeapi.Int64(req.AmountMinor),
		Currency:    stripeapi.String(req.Currency),
		Customer:    stripeapi.String(req.CustomerID),
		Description: stripeapi.String(req.Description),
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}
	params.Context = ctx

	ch, err := g.charges.New(params)
	if err != nil {
		return model.Charge{}, paymentError("payment was not accepted", err)
	}
	return toCharge(ch), nil
}

// FindChargeByOrder looks for a charge tagged with orderID, preferring a
// successful one, then a pending one.
func (g *Gateway) FindChargeByOrder(ctx context.Context, orderID uuid.UUID) (model.Charge, error) {
	params := &stripeapi.ChargeSearchParams{}
	params.Query = fmt.Sprintf("metadata['%s']:'%s'", orderIDMetadataKey, orderID)
	params.Context = ctx

	var (
		found model.Charge
		seen  bool
	)
	it := g.charges.Search(params)
	for it.Next() {
		c := toCharge(it.Charge())
		if c.Succeeded {
			return c, nil
		}
		if !seen || (c.Pending && !found.Pending) {
			found, seen = c, true
		}
	}
	if err := it.Err(); err != nil {
		return model.Charge{}, fmt.Errorf("failed to search charges: %w", err)
	}
	if !seen {
		return model.Charge{}, model.ErrNotFound
	}
	return found, nil
}

func toCharge(ch *stripeapi.Charge) model.Charge {
	return model.Charge{
		ID:        ch.ID,
		Succeeded: ch.Paid && ch.Status == stripeapi.ChargeStatusSucceeded,
		Pending:   ch.Status == stripeapi.ChargeStatusPending,
		Metadata:  ch.Metadata,
	}
}

// paymentError tells definite declines from outcomes Stripe may still have
// acted on. Only card and invalid request errors mean nothing was charged.
func paymentError(fallback string, err error) error {
	var stripeErr *stripeapi.Error
	if errors.As(err, &stripeErr) {
		switch stripeErr.Type {
		case stripeapi.ErrorTypeCard:
			if stripeErr.Msg != "" {
				return apperror.NewErrPayment(stripeErr.Msg, err)
			}
			return apperror.NewErrPayment(fallback, err)
		case stripeapi.ErrorTypeInvalidRequest:
			return apperror.NewErrPayment(fallback, err)
		case stripeapi.ErrorTypeIdempotency:
			return apperror.NewErrPaymentUncertain("an earlier payment for this order is still being processed", err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.NewErrPaymentUncertain("payment processor did not respond in time", err)
	}
	return apperror.NewErrPaymentUncertain(apperror.ErrPaymentUncertain.Message, err)
}
