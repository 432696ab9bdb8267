package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dtroode/storefront/internal/apperror"
	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
)

var minorUnitsPerMajor = decimal.NewFromInt(100)

// OrderConfig holds checkout parameters that come from configuration.
type OrderConfig struct {
	Currency       string
	PublishableKey string
	ChargeTimeout  time.Duration
	LockTTL        time.Duration
}

type Order struct {
	orderStore model.OrderStore
	cart       *Cart
	gateway    model.PaymentGateway
	locker     model.Locker
	storage    model.Storage
	invoices   model.InvoiceRenderer
	cfg        OrderConfig
	logger     *logger.Logger
	now        func() time.Time
}

func NewOrder(
	orderStore model.OrderStore,
	cart *Cart,
	gateway model.PaymentGateway,
	locker model.Locker,
	storage model.Storage,
	invoices model.InvoiceRenderer,
	cfg OrderConfig,
	logger *logger.Logger,
) *Order {
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	if cfg.ChargeTimeout <= 0 {
		cfg.ChargeTimeout = 15 * time.Second
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = time.Minute
	}
	return &Order{
		orderStore: orderStore,
		cart:       cart,
		gateway:    gateway,
		locker:     locker,
		storage:    storage,
		invoices:   invoices,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// Checkout prices the cart and hands out a fresh checkout key that makes a
// repeated submission of the same form resolve to one order.
func (s *Order) Checkout(ctx context.Context, userID uuid.UUID) (model.CheckoutSummary, error) {
	cart, err := s.cart.GetCart(ctx, userID)
	if err != nil {
		return model.CheckoutSummary{}, err
	}
	return model.CheckoutSummary{
		Cart:           cart,
		Total:          cart.Total(),
		Currency:       s.cfg.Currency,
		CheckoutKey:    uuid.New(),
		PublishableKey: s.cfg.PublishableKey,
	}, nil
}

// PlaceOrder turns the buyer's cart into an order and charges it.
//
// The order is stored with status created before the processor is called,
// so every charge has an order to reconcile against. A failed charge leaves
// the order created; Reconciler later marks it paid or expired.
func (s *Order) PlaceOrder(ctx context.Context, buyer model.User, params model.PlaceOrderParams) (model.Order, error) {
	if err := validateInput(params); err != nil {
		return model.Order{}, err
	}
	if params.CheckoutKey == uuid.Nil {
		return model.Order{}, apperror.NewErrValidation("checkout form has expired, please try again")
	}

	release, err := s.locker.Acquire(ctx, "checkout:"+buyer.ID.String(), s.cfg.LockTTL)
	if errors.Is(err, model.ErrLocked) {
		return model.Order{}, apperror.NewErrCheckoutInProgress()
	}
	if err != nil {
		return model.Order{}, apperror.NewErrStorage("lock checkout", err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("Order service: failed to release checkout lock", "user_id", buyer.ID, "error", err.Error())
		}
	}()

	cart, err := s.cart.GetCart(ctx, buyer.ID)
	if err != nil {
		return model.Order{}, err
	}
	if cart.IsEmpty() {
		return model.Order{}, apperror.NewErrEmptyCart()
	}

	lines := make([]model.OrderLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, model.SnapshotLine(l))
	}

	now := s.now()
	orderID := uuid.New()
	order, err := s.orderStore.Create(ctx, model.Order{
		ID:          orderID,
		BuyerID:     buyer.ID,
		BuyerEmail:  buyer.Email,
		Status:      model.OrderStatusCreated,
		Lines:       lines,
		Shipping:    params.Shipping,
		Billing:     params.Billing,
		Total:       model.ComputeTotal(lines),
		Currency:    s.cfg.Currency,
		CheckoutKey: params.CheckoutKey,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error("Order service: failed to create order", "user_id", buyer.ID, "error", err.Error())
		return model.Order{}, apperror.NewErrStorage("create order", err)
	}

	switch order.Status {
	case model.OrderStatusPaid:
		s.logger.Info("Order service: checkout resubmitted for paid order", "order_id", order.ID)
		return order, nil
	case model.OrderStatusExpired:
		return model.Order{}, apperror.NewErrValidation("checkout form has expired, please try again")
	}

	if order.ID != orderID {
		// Same checkout key as an earlier attempt whose payment outcome was
		// not confirmed. That attempt may have been charged already.
		s.logger.Info("Order service: checkout resubmitted for unpaid order", "order_id", order.ID)
		if charge, err := s.gateway.FindChargeByOrder(ctx, order.ID); err == nil {
			switch {
			case charge.Succeeded:
				return s.settle(ctx, order, charge), nil
			case charge.Pending:
				return model.Order{}, apperror.NewErrPaymentUncertain("your earlier payment is still being processed", nil)
			}
		} else if !errors.Is(err, model.ErrNotFound) {
			s.logger.Warn("Order service: failed to look up earlier charge",
				"order_id", order.ID,
				"error", err.Error())
		}
	} else {
		s.logger.Info("Order service: order created",
			"order_id", order.ID,
			"user_id", buyer.ID,
			"total", order.Total.StringFixed(2))
	}

	charge, err := s.charge(ctx, order, params)
	if err != nil {
		s.logger.Warn("Order service: charge failed, order left for reconciliation",
			"order_id", order.ID,
			"error", err.Error())
		return model.Order{}, err
	}

	return s.settle(ctx, order, charge), nil
}

// settle records a successful charge and takes the ordered products out of
// the cart.
func (s *Order) settle(ctx context.Context, order model.Order, charge model.Charge) model.Order {
	paidAt := s.now()
	if err := s.orderStore.MarkPaid(ctx, order.ID, charge.ID, paidAt); err != nil && !errors.Is(err, model.ErrNotFound) {
		s.logger.Error("Order service: charge succeeded but order was not marked paid",
			"order_id", order.ID,
			"charge_id", charge.ID,
			"error", err.Error())
	}
	order.Status = model.OrderStatusPaid
	order.ChargeID = charge.ID
	order.PaidAt = &paidAt

	if err := s.cart.ClearCart(ctx, order.BuyerID, order.Lines); err != nil {
		s.logger.Error("Order service: failed to clear cart", "user_id", order.BuyerID, "error", err.Error())
	}

	s.logger.Info("Order service: order paid", "order_id", order.ID, "charge_id", charge.ID)
	return order
}

// charge bills the order total under a deadline. The order id is the
// idempotency key, so a retried request cannot charge twice.
func (s *Order) charge(ctx context.Context, order model.Order, params model.PlaceOrderParams) (model.Charge, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ChargeTimeout)
	defer cancel()

	customerID, err := s.gateway.CreateCustomer(ctx, params.PaymentEmail, params.PaymentToken)
	if err != nil {
		return model.Charge{}, err
	}

	charge, err := s.gateway.CreateCharge(ctx, model.ChargeRequest{
		AmountMinor:    ToMinorUnits(order.Total),
		Currency:       order.Currency,
		CustomerID:     customerID,
		Description:    fmt.Sprintf("Order %s", order.ID),
		Metadata:       map[string]string{"order_id": order.ID.String()},
		IdempotencyKey: order.ID.String(),
	})
	if err != nil {
		return model.Charge{}, err
	}
	if charge.Pending {
		return model.Charge{}, apperror.NewErrPaymentUncertain("your payment is still being processed", nil)
	}
	if !charge.Succeeded {
		return model.Charge{}, apperror.NewErrPayment("payment was not completed", nil)
	}
	return charge, nil
}

// ToMinorUnits converts an amount to cents, rounding half away from zero.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(minorUnitsPerMajor).Round(0).IntPart()
}

// Orders returns the buyer's orders, newest first.
func (s *Order) Orders(ctx context.Context, buyerID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orderStore.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, apperror.NewErrStorage("list orders", err)
	}
	return orders, nil
}

// FindOrder returns any order by id.
func (s *Order) FindOrder(ctx context.Context, id uuid.UUID) (model.Order, error) {
	order, err := s.orderStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Order{}, apperror.NewErrOrderNotFound(id)
	}
	if err != nil {
		return model.Order{}, apperror.NewErrStorage("get order", err)
	}
	return order, nil
}

// GetOrder returns the order only to its buyer.
func (s *Order) GetOrder(ctx context.Context, buyer model.User, id uuid.UUID) (model.Order, error) {
	order, err := s.FindOrder(ctx, id)
	if err != nil {
		return model.Order{}, err
	}
	if order.BuyerID != buyer.ID {
		return model.Order{}, apperror.NewErrNotOwner()
	}
	return order, nil
}

// Invoice writes the order's PDF invoice to w. Rendered invoices are kept in
// object storage and served from there afterwards.
func (s *Order) Invoice(ctx context.Context, buyer model.User, id uuid.UUID, w io.Writer) error {
	order, err := s.GetOrder(ctx, buyer, id)
	if err != nil {
		return err
	}

	key := model.InvoiceKey(order.ID)
	cached, err := s.storage.Download(ctx, key)
	switch {
	case err == nil:
		defer cached.Close()
		if _, err := io.Copy(w, cached); err != nil {
			return fmt.Errorf("failed to write cached invoice: %w", err)
		}
		return nil
	case !errors.Is(err, model.ErrNotFound):
		s.logger.Warn("Order service: failed to read cached invoice", "order_id", order.ID, "error", err.Error())
	}

	var buf bytes.Buffer
	if err := s.invoices.Render(&buf, order); err != nil {
		return fmt.Errorf("failed to render invoice: %w", err)
	}

	if err := s.storage.Upload(ctx, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), "application/pdf"); err != nil {
		s.logger.Warn("Order service: failed to cache invoice", "order_id", order.ID, "error", err.Error())
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write invoice: %w", err)
	}
	return nil
}
