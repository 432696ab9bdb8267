package model

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStore defines persistence operations for catalog products.
type ProductStore interface {
	Create(ctx context.Context, product Product) (Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
	// Update modifies the product only if product.OwnerID owns it.
	Update(ctx context.Context, product Product) (Product, error)
	// Delete removes the product only if ownerID owns it and returns the removed row.
	Delete(ctx context.Context, id, ownerID uuid.UUID) (Product, error)
	List(ctx context.Context, filter ProductFilter) ([]Product, int, error)
}

// Product is a catalog item offered by a seller.
type Product struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	OwnerName   string
	Title       string
	Price       decimal.Decimal
	Description string
	ImageURL    string
	ImageKey    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductFilter narrows a product listing. Zero values mean no restriction.
type ProductFilter struct {
	Keyword string
	OwnerID uuid.UUID
	Offset  int
	Limit   int
}

// ProductInput carries seller-provided product fields.
type ProductInput struct {
	Title       string `validate:"required,min=3,max=200"`
	Price       string `validate:"required,numeric"`
	Description string `validate:"required,min=5,max=400"`
	Image       *Upload
}

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products []Product
	Page     Pagination
}

// Pagination describes the position of a page within a listing.
type Pagination struct {
	Current int
	Last    int
	Total   int
}

// NewPagination computes pagination for page (1-based) of total items.
func NewPagination(page, perPage, total int) Pagination {
	last := 1
	if perPage > 0 && total > 0 {
		last = (total + perPage - 1) / perPage
	}
	return Pagination{Current: page, Last: last, Total: total}
}

func (p Pagination) HasPrev() bool { return p.Current > 1 }
func (p Pagination) HasNext() bool { return p.Current < p.Last }
func (p Pagination) Prev() int     { return p.Current - 1 }
func (p Pagination) Next() int     { return p.Current + 1 }
