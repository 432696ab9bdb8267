package model

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// Storage is an object store for product images and invoices.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Locker provides short-lived mutual exclusion keyed by name.
type Locker interface {
	// Acquire returns ErrLocked if key is already held.
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}

// InvoiceRenderer writes an order invoice document.
type InvoiceRenderer interface {
	Render(w io.Writer, order Order) error
}

// InvoiceKey is the object key of an order's cached invoice.
func InvoiceKey(orderID uuid.UUID) string {
	return "invoices/invoice-" + orderID.String() + ".pdf"
}
