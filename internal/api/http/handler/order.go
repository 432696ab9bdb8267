package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/storefront/internal/apperror"
	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/web"
)

// OrderService runs checkout and reads the buyer's orders.
type OrderService interface {
	Checkout(ctx context.Context, userID uuid.UUID) (model.CheckoutSummary, error)
	PlaceOrder(ctx context.Context, buyer model.User, params model.PlaceOrderParams) (model.Order, error)
	Orders(ctx context.Context, buyerID uuid.UUID) ([]model.Order, error)
	Invoice(ctx context.Context, buyer model.User, id uuid.UUID, w io.Writer) error
}

// Order serves checkout, order history and invoices.
type Order struct {
	*Views
	orders OrderService
}

func NewOrder(views *Views, orders OrderService) *Order {
	return &Order{Views: views, orders: orders}
}

func (h *Order) Checkout(w http.ResponseWriter, r *http.Request) {
	user, _ := h.user(r)
	summary, err := h.orders.Checkout(r.Context(), user.ID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if summary.Cart.IsEmpty() {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "shop/checkout", h.page(r, "Checkout", web.Checkout{
		Summary: summary,
		Form:    model.PlaceOrderParams{PaymentEmail: user.Email},
	}))
}

// CreateOrder places the order from the checkout form. Validation failures
// and card declines re-render the checkout page with a fresh checkout key, so
// a retry is a new order and the failed one is left to reconciliation. When
// the payment outcome is unknown the submitted key is kept: the retry
// resolves to the same order and replays its idempotency key.
func (h *Order) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, _ := h.user(r)
	params := checkoutForm(r)

	_, err := h.orders.PlaceOrder(r.Context(), user, params)
	if err == nil {
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	if !apperror.IsKind(err, apperror.KindValidation) && !apperror.IsKind(err, apperror.KindPayment) {
		h.handleError(w, r, err)
		return
	}

	summary, sumErr := h.orders.Checkout(r.Context(), user.ID)
	if sumErr != nil {
		h.handleError(w, r, sumErr)
		return
	}
	if summary.Cart.IsEmpty() {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	if errors.Is(err, apperror.ErrPaymentUncertain) && params.CheckoutKey != uuid.Nil {
		summary.CheckoutKey = params.CheckoutKey
	}

	apiErr, _ := apperror.As(err)
	params.PaymentToken = ""
	p := h.page(r, "Checkout", web.Checkout{Summary: summary, Form: params})
	p.Error = apiErr.Message
	h.render(w, r, apiErr.HTTPStatus(), "shop/checkout", p)
}

func (h *Order) Orders(w http.ResponseWriter, r *http.Request) {
	user, _ := h.user(r)
	orders, err := h.orders.Orders(r.Context(), user.ID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "shop/orders", h.page(r, "Your Orders", orders))
}

// Invoice sends the order's PDF invoice to its buyer.
func (h *Order) Invoice(w http.ResponseWriter, r *http.Request) {
	user, _ := h.user(r)
	id, ok := urlID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := h.orders.Invoice(r.Context(), user, id, &buf); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="invoice-`+id.String()+`.pdf"`)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("Order handler: failed to send invoice", "order_id", id, "error", err.Error())
	}
}

func checkoutForm(r *http.Request) model.PlaceOrderParams {
	params := model.PlaceOrderParams{
		PaymentToken: r.FormValue("stripeToken"),
		PaymentEmail: strings.TrimSpace(r.FormValue("stripeEmail")),
		Shipping:     addressForm(r, "shipping"),
		Billing:      addressForm(r, "billing"),
	}
	if key, err := uuid.Parse(r.FormValue("checkoutKey")); err == nil {
		params.CheckoutKey = key
	}
	if r.FormValue("billingSameAsShipping") == "on" {
		params.Billing = params.Shipping
	}
	return params
}

func addressForm(r *http.Request, prefix string) model.Address {
	field := func(name string) string {
		return strings.TrimSpace(r.FormValue(prefix + name))
	}
	return model.Address{
		Name:     field("Name"),
		Street:   field("Street"),
		City:     field("City"),
		State:    field("State"),
		Postcode: field("Postcode"),
		Country:  field("Country"),
	}
}
