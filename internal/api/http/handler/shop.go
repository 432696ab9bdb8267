package handler

import (
	"context"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/web"
)

// CatalogService lists and manages products.
type CatalogService interface {
	ListProducts(ctx context.Context, page int) (model.ProductPage, error)
	SearchProducts(ctx context.Context, keyword string, page int) (model.ProductPage, error)
	SellerProducts(ctx context.Context, ownerID uuid.UUID, page int) (model.ProductPage, error)
	OwnerProducts(ctx context.Context, ownerID uuid.UUID) ([]model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	GetOwnedProduct(ctx context.Context, owner model.User, id uuid.UUID) (model.Product, error)
	CreateProduct(ctx context.Context, owner model.User, input model.ProductInput) (model.Product, error)
	UpdateProduct(ctx context.Context, owner model.User, id uuid.UUID, input model.ProductInput) (model.Product, error)
	DeleteProduct(ctx context.Context, owner model.User, id uuid.UUID) error
	OpenImage(ctx context.Context, key string) (io.ReadCloser, error)
}

// CartService mutates and reads the current user's cart.
type CartService interface {
	AddToCart(ctx context.Context, userID, productID uuid.UUID) (model.Cart, error)
	RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) (model.Cart, error)
	GetCart(ctx context.Context, userID uuid.UUID) (model.Cart, error)
}

// Shop serves the public catalog and the cart.
type Shop struct {
	*Views
	catalog CatalogService
	cart    CartService
}

func NewShop(views *Views, catalog CatalogService, cart CartService) *Shop {
	return &Shop{Views: views, catalog: catalog, cart: cart}
}

func (h *Shop) Index(w http.ResponseWriter, r *http.Request) {
	h.listing(w, r, "Shop", "Shop", "/")
}

func (h *Shop) Products(w http.ResponseWriter, r *http.Request) {
	h.listing(w, r, "All Products", "All Products", "/products")
}

func (h *Shop) listing(w http.ResponseWriter, r *http.Request, title, heading, basePath string) {
	result, err := h.catalog.ListProducts(r.Context(), pageNumber(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "shop/index", h.page(r, title, web.ProductList{
		Heading:  heading,
		BasePath: basePath,
		Result:   result,
	}))
}

func (h *Shop) Search(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	result, err := h.catalog.SearchProducts(r.Context(), keyword, pageNumber(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "shop/index", h.page(r, "Search", web.ProductList{
		Heading:  "Results for \"" + keyword + "\"",
		Keyword:  keyword,
		BasePath: "/search",
		Result:   result,
	}))
}

// Seller lists the products of one seller.
func (h *Shop) Seller(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := urlID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	result, err := h.catalog.SellerProducts(r.Context(), ownerID, pageNumber(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	heading := "Seller's Mart"
	if len(result.Products) > 0 {
		heading = result.Products[0].OwnerName + "'s Mart"
	}
	h.render(w, r, http.StatusOK, "shop/index", h.page(r, heading, web.ProductList{
		Heading:  heading,
		BasePath: "/user/" + ownerID.String(),
		Result:   result,
	}))
}

func (h *Shop) Product(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "shop/product", h.page(r, product.Title, product))
}

// Image streams a product image from object storage.
func (h *Shop) Image(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	rc, err := h.catalog.OpenImage(r.Context(), key)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	defer rc.Close()

	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn("Shop handler: failed to stream image", "key", key, "error", err.Error())
	}
}

func (h *Shop) Cart(w http.ResponseWriter, r *http.Request) {
	user, _ := h.user(r)
	cart, err := h.cart.GetCart(r.Context(), user.ID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "shop/cart", h.page(r, "Your Cart", cart))
}

func (h *Shop) AddToCart(w http.ResponseWriter, r *http.Request) {
	user, _ := h.user(r)
	productID, err := uuid.Parse(r.FormValue("productId"))
	if err != nil {
		h.NotFound(w, r)
		return
	}
	if _, err := h.cart.AddToCart(r.Context(), user.ID, productID); err != nil {
		h.handleError(w, r, err)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *Shop) DeleteCartItem(w http.ResponseWriter, r *http.Request) {
	user, _ := h.user(r)
	productID, err := uuid.Parse(r.FormValue("productId"))
	if err != nil {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	if _, err := h.cart.RemoveFromCart(r.Context(), user.ID, productID); err != nil {
		h.handleError(w, r, err)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func pageNumber(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func urlID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
