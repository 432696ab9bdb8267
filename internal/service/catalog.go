package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dtroode/storefront/internal/apperror"
	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
)

const (
	imageKeyPrefix = "products/"
	imageURLPrefix = "/images/"
)

// maxPrice is the largest single charge the payment processor accepts.
var maxPrice = decimal.RequireFromString("999999.99")

var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
}

type Catalog struct {
	productStore model.ProductStore
	storage      model.Storage
	pageSize     int
	logger       *logger.Logger
	now          func() time.Time
}

func NewCatalog(productStore model.ProductStore, storage model.Storage, pageSize int, logger *logger.Logger) *Catalog {
	if pageSize <= 0 {
		pageSize = 3
	}
	return &Catalog{
		productStore: productStore,
		storage:      storage,
		pageSize:     pageSize,
		logger:       logger,
		now:          time.Now,
	}
}

// ListProducts returns the given 1-based page of the whole catalog.
func (s *Catalog) ListProducts(ctx context.Context, page int) (model.ProductPage, error) {
	return s.listPage(ctx, model.ProductFilter{}, page)
}

// SearchProducts pages through products whose title contains keyword,
// ignoring case.
func (s *Catalog) SearchProducts(ctx context.Context, keyword string, page int) (model.ProductPage, error) {
	return s.listPage(ctx, model.ProductFilter{Keyword: strings.TrimSpace(keyword)}, page)
}

// SellerProducts pages through the products of one seller.
func (s *Catalog) SellerProducts(ctx context.Context, ownerID uuid.UUID, page int) (model.ProductPage, error) {
	return s.listPage(ctx, model.ProductFilter{OwnerID: ownerID}, page)
}

// OwnerProducts returns every product of the owner for the admin page.
func (s *Catalog) OwnerProducts(ctx context.Context, ownerID uuid.UUID) ([]model.Product, error) {
	products, _, err := s.productStore.List(ctx, model.ProductFilter{OwnerID: ownerID})
	if err != nil {
		return nil, apperror.NewErrStorage("list products", err)
	}
	return products, nil
}

func (s *Catalog) listPage(ctx context.Context, filter model.ProductFilter, page int) (model.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if maxPage := math.MaxInt32 / s.pageSize; page > maxPage {
		page = maxPage
	}
	filter.Offset = (page - 1) * s.pageSize
	filter.Limit = s.pageSize

	products, total, err := s.productStore.List(ctx, filter)
	if err != nil {
		s.logger.Error("Catalog service: failed to list products", "page", page, "error", err.Error())
		return model.ProductPage{}, apperror.NewErrStorage("list products", err)
	}

	return model.ProductPage{
		Products: products,
		Page:     model.NewPagination(page, s.pageSize, total),
	}, nil
}

func (s *Catalog) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	product, err := s.productStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Product{}, apperror.NewErrProductNotFound(id)
	}
	if err != nil {
		return model.Product{}, apperror.NewErrStorage("get product", err)
	}
	return product, nil
}

// GetOwnedProduct returns the product only when owner is its seller.
func (s *Catalog) GetOwnedProduct(ctx context.Context, owner model.User, id uuid.UUID) (model.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return model.Product{}, err
	}
	if product.OwnerID != owner.ID {
		return model.Product{}, apperror.NewErrNotOwner()
	}
	return product, nil
}

func (s *Catalog) CreateProduct(ctx context.Context, owner model.User, input model.ProductInput) (model.Product, error) {
	price, err := parseProductInput(input)
	if err != nil {
		return model.Product{}, err
	}
	if input.Image == nil {
		return model.Product{}, apperror.NewErrValidation("attached file is not an image")
	}

	key, err := s.uploadImage(ctx, input.Image)
	if err != nil {
		return model.Product{}, err
	}

	now := s.now()
	product, err := s.productStore.Create(ctx, model.Product{
		ID:          uuid.New(),
		OwnerID:     owner.ID,
		OwnerName:   owner.DisplayName(),
		Title:       strings.TrimSpace(input.Title),
		Price:       price,
		Description: strings.TrimSpace(input.Description),
		ImageKey:    key,
		ImageURL:    imageURLPrefix + key,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.removeImage(ctx, key)
		return model.Product{}, apperror.NewErrStorage("create product", err)
	}

	s.logger.Info("Catalog service: product created", "product_id", product.ID, "owner_id", owner.ID)
	return product, nil
}

// UpdateProduct edits a product of owner. A new image replaces the old one;
// without an image the current one is kept.
func (s *Catalog) UpdateProduct(ctx context.Context, owner model.User, id uuid.UUID, input model.ProductInput) (model.Product, error) {
	price, err := parseProductInput(input)
	if err != nil {
		return model.Product{}, err
	}

	product, err := s.GetOwnedProduct(ctx, owner, id)
	if err != nil {
		return model.Product{}, err
	}

	oldKey := product.ImageKey
	if input.Image != nil {
		key, err := s.uploadImage(ctx, input.Image)
		if err != nil {
			return model.Product{}, err
		}
		product.ImageKey = key
		product.ImageURL = imageURLPrefix + key
	}

	product.Title = strings.TrimSpace(input.Title)
	product.Price = price
	product.Description = strings.TrimSpace(input.Description)

	updated, err := s.productStore.Update(ctx, product)
	if err != nil {
		if product.ImageKey != oldKey {
			s.removeImage(ctx, product.ImageKey)
		}
		if errors.Is(err, model.ErrNotFound) {
			return model.Product{}, apperror.NewErrNotOwner()
		}
		return model.Product{}, apperror.NewErrStorage("update product", err)
	}

	if updated.ImageKey != oldKey {
		s.removeImage(ctx, oldKey)
	}

	s.logger.Info("Catalog service: product updated", "product_id", id, "owner_id", owner.ID)
	return updated, nil
}

// DeleteProduct removes a product of owner together with its image. Cart
// lines referencing it go away with the row.
func (s *Catalog) DeleteProduct(ctx context.Context, owner model.User, id uuid.UUID) error {
	deleted, err := s.productStore.Delete(ctx, id, owner.ID)
	if errors.Is(err, model.ErrNotFound) {
		if _, getErr := s.GetProduct(ctx, id); getErr != nil {
			return getErr
		}
		return apperror.NewErrNotOwner()
	}
	if err != nil {
		return apperror.NewErrStorage("delete product", err)
	}

	s.removeImage(ctx, deleted.ImageKey)
	s.logger.Info("Catalog service: product deleted", "product_id", id, "owner_id", owner.ID)
	return nil
}

// OpenImage streams a stored product image.
func (s *Catalog) OpenImage(ctx context.Context, key string) (io.ReadCloser, error) {
	key = path.Clean("/" + key)[1:]
	if !strings.HasPrefix(key, imageKeyPrefix) {
		return nil, model.ErrNotFound
	}
	rc, err := s.storage.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	return rc, nil
}

func parseProductInput(input model.ProductInput) (decimal.Decimal, error) {
	if err := validateInput(input); err != nil {
		return decimal.Decimal{}, err
	}
	price, err := decimal.NewFromString(strings.TrimSpace(input.Price))
	if err != nil {
		return decimal.Decimal{}, apperror.NewErrValidation("price must be a number")
	}
	if price.IsNegative() {
		return decimal.Decimal{}, apperror.NewErrValidation("price must not be negative")
	}
	price = price.Round(2)
	if price.GreaterThan(maxPrice) {
		return decimal.Decimal{}, apperror.NewErrValidation("price must not exceed " + maxPrice.StringFixed(2))
	}
	return price, nil
}

func (s *Catalog) uploadImage(ctx context.Context, upload *model.Upload) (string, error) {
	ext, ok := allowedImageTypes[upload.ContentType]
	if !ok {
		return "", apperror.NewErrValidation("attached file is not an image")
	}

	key := fmt.Sprintf("%s%s%s", imageKeyPrefix, uuid.NewString(), ext)
	if err := s.storage.Upload(ctx, key, upload.Reader, upload.Size, upload.ContentType); err != nil {
		s.logger.Error("Catalog service: failed to upload image", "key", key, "error", err.Error())
		return "", apperror.NewErrStorage("upload image", err)
	}
	return key, nil
}

func (s *Catalog) removeImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("Catalog service: failed to delete image", "key", key, "error", err.Error())
	}
}
