package handler

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/storefront/internal/apperror"
	servermocks "github.com/dtroode/storefront/internal/mocks"
	"github.com/dtroode/storefront/internal/model"
)

func TestShop_Index(t *testing.T) {
	t.Parallel()

	catalog := servermocks.NewCatalogService(t)
	h := NewShop(newTestViews(t), catalog, servermocks.NewCartService(t))

	page := model.ProductPage{
		Products: []model.Product{{ID: uuid.New(), Title: "Blue Mug", Price: decimal.RequireFromString("12.5"), OwnerName: "ann"}},
		Page:     model.NewPagination(2, 3, 9),
	}
	catalog.On("ListProducts", mock.Anything, 2).Return(page, nil).Once()

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/?page=2", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Blue Mug")
	assert.Contains(t, rec.Body.String(), "$12.50")
	assert.Contains(t, rec.Body.String(), `href="/?page=3"`)
}

func TestShop_Index_BadPageFallsBackToFirst(t *testing.T) {
	t.Parallel()

	catalog := servermocks.NewCatalogService(t)
	h := NewShop(newTestViews(t), catalog, servermocks.NewCartService(t))
	catalog.On("ListProducts", mock.Anything, 1).Return(model.ProductPage{Page: model.NewPagination(1, 3, 0)}, nil).Once()

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/?page=-4", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No Products Found!")
}

func TestShop_Search(t *testing.T) {
	t.Parallel()

	catalog := servermocks.NewCatalogService(t)
	h := NewShop(newTestViews(t), catalog, servermocks.NewCartService(t))
	catalog.On("SearchProducts", mock.Anything, "mug", 1).Return(model.ProductPage{Page: model.NewPagination(1, 3, 0)}, nil).Once()

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/search?keyword=+mug+", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Results for &#34;mug&#34;")
}

func TestShop_Product(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	tests := []struct {
		name     string
		id       string
		setup    func(c *servermocks.CatalogService)
		wantCode int
		wantBody string
	}{
		{
			name: "found",
			id:   id.String(),
			setup: func(c *servermocks.CatalogService) {
				c.On("GetProduct", mock.Anything, id).Return(model.Product{ID: id, Title: "Blue Mug"}, nil).Once()
			},
			wantCode: http.StatusOK,
			wantBody: "Blue Mug",
		},
		{
			name: "missing",
			id:   id.String(),
			setup: func(c *servermocks.CatalogService) {
				c.On("GetProduct", mock.Anything, id).Return(model.Product{}, apperror.NewErrProductNotFound(id)).Once()
			},
			wantCode: http.StatusNotFound,
			wantBody: "Page Not Found!",
		},
		{
			name:     "malformed id",
			id:       "not-a-uuid",
			wantCode: http.StatusNotFound,
			wantBody: "Page Not Found!",
		},
		{
			name: "storage failure",
			id:   id.String(),
			setup: func(c *servermocks.CatalogService) {
				c.On("GetProduct", mock.Anything, id).Return(model.Product{}, apperror.NewErrStorage("get product", errors.New("db down"))).Once()
			},
			wantCode: http.StatusInternalServerError,
			wantBody: "Some error occurred!",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			catalog := servermocks.NewCatalogService(t)
			if tt.setup != nil {
				tt.setup(catalog)
			}
			h := NewShop(newTestViews(t), catalog, servermocks.NewCartService(t))

			req := withURLParam(httptest.NewRequest(http.MethodGet, "/products/"+tt.id, nil), "id", tt.id)
			rec := httptest.NewRecorder()
			h.Product(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestShop_Seller(t *testing.T) {
	t.Parallel()

	catalog := servermocks.NewCatalogService(t)
	h := NewShop(newTestViews(t), catalog, servermocks.NewCartService(t))

	owner := uuid.New()
	page := model.ProductPage{
		Products: []model.Product{{ID: uuid.New(), OwnerID: owner, OwnerName: "bob", Title: "Lamp"}},
		Page:     model.NewPagination(1, 3, 1),
	}
	catalog.On("SellerProducts", mock.Anything, owner, 1).Return(page, nil).Once()

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/user/"+owner.String(), nil), "id", owner.String())
	rec := httptest.NewRecorder()
	h.Seller(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bob&#39;s Mart")
}

func TestShop_Image(t *testing.T) {
	t.Parallel()

	catalog := servermocks.NewCatalogService(t)
	h := NewShop(newTestViews(t), catalog, servermocks.NewCartService(t))

	catalog.On("OpenImage", mock.Anything, "products/a.png").
		Return(io.NopCloser(strings.NewReader("png-bytes")), nil).Once()
	catalog.On("OpenImage", mock.Anything, "../etc/passwd").
		Return(nil, model.ErrNotFound).Once()

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/images/products/a.png", nil), "*", "products/a.png")
	rec := httptest.NewRecorder()
	h.Image(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", rec.Body.String())

	req = withURLParam(httptest.NewRequest(http.MethodGet, "/images/x", nil), "*", "../etc/passwd")
	rec = httptest.NewRecorder()
	h.Image(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShop_Cart(t *testing.T) {
	t.Parallel()

	cart := servermocks.NewCartService(t)
	h := NewShop(newTestViews(t), servermocks.NewCatalogService(t), cart)

	cart.On("GetCart", mock.Anything, testUser.ID).Return(model.Cart{
		UserID: testUser.ID,
		Lines: []model.CartLine{
			{Product: model.Product{ID: uuid.New(), Title: "A", Price: decimal.NewFromInt(10)}, Quantity: 2},
			{Product: model.Product{ID: uuid.New(), Title: "B", Price: decimal.NewFromInt(5)}, Quantity: 1},
		},
	}, nil).Once()

	rec := httptest.NewRecorder()
	h.Cart(rec, asUser(httptest.NewRequest(http.MethodGet, "/cart", nil), testUser))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Total: $25.00")
	assert.Contains(t, rec.Body.String(), "ann@example.com")
}

func TestShop_AddToCart(t *testing.T) {
	t.Parallel()

	productID := uuid.New()

	t.Run("adds and redirects to cart", func(t *testing.T) {
		t.Parallel()

		cart := servermocks.NewCartService(t)
		h := NewShop(newTestViews(t), servermocks.NewCatalogService(t), cart)
		cart.On("AddToCart", mock.Anything, testUser.ID, productID).Return(model.Cart{}, nil).Once()

		req := asUser(formRequest(http.MethodPost, "/cart", url.Values{"productId": {productID.String()}}), testUser)
		rec := httptest.NewRecorder()
		h.AddToCart(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/cart", rec.Header().Get("Location"))
	})

	t.Run("unknown product", func(t *testing.T) {
		t.Parallel()

		cart := servermocks.NewCartService(t)
		h := NewShop(newTestViews(t), servermocks.NewCatalogService(t), cart)
		cart.On("AddToCart", mock.Anything, testUser.ID, productID).
			Return(model.Cart{}, apperror.NewErrProductNotFound(productID)).Once()

		req := asUser(formRequest(http.MethodPost, "/cart", url.Values{"productId": {productID.String()}}), testUser)
		rec := httptest.NewRecorder()
		h.AddToCart(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestShop_DeleteCartItem(t *testing.T) {
	t.Parallel()

	cart := servermocks.NewCartService(t)
	h := NewShop(newTestViews(t), servermocks.NewCatalogService(t), cart)

	productID := uuid.New()
	cart.On("RemoveFromCart", mock.Anything, testUser.ID, productID).Return(model.Cart{}, nil).Once()

	req := asUser(formRequest(http.MethodPost, "/cart/delete", url.Values{"productId": {productID.String()}}), testUser)
	rec := httptest.NewRecorder()
	h.DeleteCartItem(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/cart", rec.Header().Get("Location"))
}
