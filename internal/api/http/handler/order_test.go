package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/storefront/internal/apperror"
	servermocks "github.com/dtroode/storefront/internal/mocks"
	"github.com/dtroode/storefront/internal/model"
)

func checkoutSummary() model.CheckoutSummary {
	cart := model.Cart{
		UserID: testUser.ID,
		Lines:  []model.CartLine{{Product: model.Product{ID: uuid.New(), Title: "Mug", Price: decimal.NewFromInt(10)}, Quantity: 2}},
	}
	return model.CheckoutSummary{
		Cart:           cart,
		Total:          cart.Total(),
		Currency:       "usd",
		CheckoutKey:    uuid.New(),
		PublishableKey: "pk_test_123",
	}
}

func checkoutValues(key uuid.UUID) url.Values {
	return url.Values{
		"checkoutKey":           {key.String()},
		"stripeToken":           {"tok_visa"},
		"stripeEmail":           {"ann@example.com"},
		"shippingName":          {"Ann"},
		"shippingStreet":        {"1 Main St"},
		"shippingCity":          {"Springfield"},
		"shippingPostcode":      {"12345"},
		"shippingCountry":       {"US"},
		"billingSameAsShipping": {"on"},
	}
}

func TestOrder_Checkout(t *testing.T) {
	t.Parallel()

	t.Run("renders summary", func(t *testing.T) {
		t.Parallel()

		orders := servermocks.NewOrderService(t)
		h := NewOrder(newTestViews(t), orders)
		summary := checkoutSummary()
		orders.On("Checkout", mock.Anything, testUser.ID).Return(summary, nil).Once()

		rec := httptest.NewRecorder()
		h.Checkout(rec, asUser(httptest.NewRequest(http.MethodGet, "/checkout", nil), testUser))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), summary.CheckoutKey.String())
		assert.Contains(t, rec.Body.String(), "pk_test_123")
		assert.Contains(t, rec.Body.String(), "Total: $20.00")
	})

	t.Run("empty cart redirects", func(t *testing.T) {
		t.Parallel()

		orders := servermocks.NewOrderService(t)
		h := NewOrder(newTestViews(t), orders)
		orders.On("Checkout", mock.Anything, testUser.ID).Return(model.CheckoutSummary{}, nil).Once()

		rec := httptest.NewRecorder()
		h.Checkout(rec, asUser(httptest.NewRequest(http.MethodGet, "/checkout", nil), testUser))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/cart", rec.Header().Get("Location"))
	})
}

func TestOrder_CreateOrder(t *testing.T) {
	t.Parallel()

	key := uuid.New()

	t.Run("places order with billing copied from shipping", func(t *testing.T) {
		t.Parallel()

		orders := servermocks.NewOrderService(t)
		h := NewOrder(newTestViews(t), orders)

		orders.On("PlaceOrder", mock.Anything, testUser, mock.MatchedBy(func(p model.PlaceOrderParams) bool {
			return p.CheckoutKey == key &&
				p.PaymentToken == "tok_visa" &&
				p.Shipping.City == "Springfield" &&
				p.Billing == p.Shipping
		})).Return(model.Order{ID: uuid.New()}, nil).Once()

		rec := httptest.NewRecorder()
		h.CreateOrder(rec, asUser(formRequest(http.MethodPost, "/create-order", checkoutValues(key)), testUser))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/orders", rec.Header().Get("Location"))
	})

	t.Run("payment failure re-renders checkout", func(t *testing.T) {
		t.Parallel()

		orders := servermocks.NewOrderService(t)
		h := NewOrder(newTestViews(t), orders)
		summary := checkoutSummary()

		orders.On("PlaceOrder", mock.Anything, testUser, mock.Anything).
			Return(model.Order{}, apperror.NewErrPayment("Your card was declined.", errors.New("card_declined"))).Once()
		orders.On("Checkout", mock.Anything, testUser.ID).Return(summary, nil).Once()

		rec := httptest.NewRecorder()
		h.CreateOrder(rec, asUser(formRequest(http.MethodPost, "/create-order", checkoutValues(key)), testUser))

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		assert.Contains(t, rec.Body.String(), "Your card was declined.")
		assert.Contains(t, rec.Body.String(), summary.CheckoutKey.String())
		assert.NotContains(t, rec.Body.String(), key.String())
		assert.NotContains(t, rec.Body.String(), "tok_visa")
		assert.Contains(t, rec.Body.String(), "Springfield")
	})

	t.Run("timeout keeps checkout key for the retry", func(t *testing.T) {
		t.Parallel()

		orders := servermocks.NewOrderService(t)
		h := NewOrder(newTestViews(t), orders)
		summary := checkoutSummary()
		pendingKey := uuid.New()
		sameKey := mock.MatchedBy(func(p model.PlaceOrderParams) bool { return p.CheckoutKey == pendingKey })

		orders.On("PlaceOrder", mock.Anything, testUser, sameKey).
			Return(model.Order{}, apperror.NewErrPaymentUncertain("payment processor did not respond in time", context.DeadlineExceeded)).Once()
		orders.On("Checkout", mock.Anything, testUser.ID).Return(summary, nil).Once()

		rec := httptest.NewRecorder()
		h.CreateOrder(rec, asUser(formRequest(http.MethodPost, "/create-order", checkoutValues(pendingKey)), testUser))

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		assert.Contains(t, rec.Body.String(), "did not respond in time")
		assert.Contains(t, rec.Body.String(), `name="checkoutKey" value="`+pendingKey.String()+`"`)
		assert.NotContains(t, rec.Body.String(), summary.CheckoutKey.String())

		orders.On("PlaceOrder", mock.Anything, testUser, sameKey).Return(model.Order{ID: uuid.New()}, nil).Once()

		rec = httptest.NewRecorder()
		h.CreateOrder(rec, asUser(formRequest(http.MethodPost, "/create-order", checkoutValues(pendingKey)), testUser))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/orders", rec.Header().Get("Location"))
	})

	t.Run("checkout in progress", func(t *testing.T) {
		t.Parallel()

		orders := servermocks.NewOrderService(t)
		h := NewOrder(newTestViews(t), orders)
		orders.On("PlaceOrder", mock.Anything, testUser, mock.Anything).
			Return(model.Order{}, apperror.NewErrCheckoutInProgress()).Once()

		rec := httptest.NewRecorder()
		h.CreateOrder(rec, asUser(formRequest(http.MethodPost, "/create-order", checkoutValues(key)), testUser))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "checkout already in progress")
	})
}

func TestOrder_Orders(t *testing.T) {
	t.Parallel()

	orders := servermocks.NewOrderService(t)
	h := NewOrder(newTestViews(t), orders)

	orderID := uuid.New()
	orders.On("Orders", mock.Anything, testUser.ID).Return([]model.Order{{
		ID:     orderID,
		Status: model.OrderStatusPaid,
		Lines:  []model.OrderLine{{Title: "Mug", Price: decimal.NewFromInt(10), Quantity: 2}},
		Total:  decimal.NewFromInt(20),
	}}, nil).Once()

	rec := httptest.NewRecorder()
	h.Orders(rec, asUser(httptest.NewRequest(http.MethodGet, "/orders", nil), testUser))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/orders/"+orderID.String()+"/invoice")
	assert.Contains(t, rec.Body.String(), "Mug (2 x $10.00)")
}

func TestOrder_Invoice(t *testing.T) {
	t.Parallel()

	orderID := uuid.New()

	t.Run("streams pdf", func(t *testing.T) {
		t.Parallel()

		orders := servermocks.NewOrderService(t)
		h := NewOrder(newTestViews(t), orders)
		orders.On("Invoice", mock.Anything, testUser, orderID, mock.Anything).
			Run(func(args mock.Arguments) {
				_, _ = args.Get(3).(io.Writer).Write([]byte("%PDF-1.3"))
			}).
			Return(nil).Once()

		req := withURLParam(asUser(httptest.NewRequest(http.MethodGet, "/orders/x/invoice", nil), testUser), "id", orderID.String())
		rec := httptest.NewRecorder()
		h.Invoice(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "invoice-"+orderID.String()+".pdf")
		assert.Equal(t, "%PDF-1.3", rec.Body.String())
	})

	t.Run("someone else's order redirects home", func(t *testing.T) {
		t.Parallel()

		orders := servermocks.NewOrderService(t)
		h := NewOrder(newTestViews(t), orders)
		orders.On("Invoice", mock.Anything, testUser, orderID, mock.Anything).Return(apperror.NewErrNotOwner()).Once()

		req := withURLParam(asUser(httptest.NewRequest(http.MethodGet, "/orders/x/invoice", nil), testUser), "id", orderID.String())
		rec := httptest.NewRecorder()
		h.Invoice(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})
}
