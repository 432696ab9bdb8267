package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/storefront/internal/apperror"
	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
)

type Cart struct {
	cartStore    model.CartStore
	productStore model.ProductStore
	logger       *logger.Logger
}

func NewCart(cartStore model.CartStore, productStore model.ProductStore, logger *logger.Logger) *Cart {
	return &Cart{cartStore: cartStore, productStore: productStore, logger: logger}
}

// AddToCart adds one unit of the product. A product already in the cart
// gets its quantity incremented in a single statement.
func (s *Cart) AddToCart(ctx context.Context, userID, productID uuid.UUID) (model.Cart, error) {
	if _, err := s.productStore.GetByID(ctx, productID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Cart{}, apperror.NewErrProductNotFound(productID)
		}
		return model.Cart{}, apperror.NewErrStorage("get product", err)
	}

	if err := s.cartStore.Increment(ctx, userID, productID); err != nil {
		s.logger.Error("Cart service: failed to add product",
			"user_id", userID,
			"product_id", productID,
			"error", err.Error())
		return model.Cart{}, apperror.NewErrStorage("add product to cart", err)
	}

	return s.GetCart(ctx, userID)
}

// RemoveFromCart drops the product line regardless of quantity. Removing a
// product that is not in the cart is not an error.
func (s *Cart) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) (model.Cart, error) {
	if err := s.cartStore.Remove(ctx, userID, productID); err != nil {
		s.logger.Error("Cart service: failed to remove product",
			"user_id", userID,
			"product_id", productID,
			"error", err.Error())
		return model.Cart{}, apperror.NewErrStorage("remove product from cart", err)
	}

	return s.GetCart(ctx, userID)
}

// ClearCart removes what was ordered from the cart. Products added while the
// order was being paid stay for the next checkout.
func (s *Cart) ClearCart(ctx context.Context, userID uuid.UUID, ordered []model.OrderLine) error {
	if err := s.cartStore.RemoveOrdered(ctx, userID, ordered); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// GetCart returns the cart priced at current catalog prices.
func (s *Cart) GetCart(ctx context.Context, userID uuid.UUID) (model.Cart, error) {
	lines, err := s.cartStore.Lines(ctx, userID)
	if err != nil {
		return model.Cart{}, apperror.NewErrStorage("load cart", err)
	}
	return model.Cart{UserID: userID, Lines: lines}, nil
}
