package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/storefront/internal/model"
)

var _ model.CartStore = (*CartRepository)(nil)

type CartRepository struct {
	db *Connection
}

func NewCartRepository(db *Connection) *CartRepository {
	return &CartRepository{
		db: db,
	}
}

// Increment inserts a line with quantity 1 or bumps the existing line in a
// single statement, so concurrent adds of the same product never lose an update.
func (r *CartRepository) Increment(ctx context.Context, userID, productID uuid.UUID) error {
	const query = `
		INSERT INTO cart_items (user_id, product_id, quantity, added_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = cart_items.quantity + 1`

	if _, err := r.db.Exec(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("failed to add product to cart: %w", err)
	}
	return nil
}

func (r *CartRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	const query = `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`

	if _, err := r.db.Exec(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("failed to remove product from cart: %w", err)
	}
	return nil
}

// RemoveOrdered subtracts each ordered quantity in one statement. Lines whose
// quantity would drop to zero or below are deleted instead.
func (r *CartRepository) RemoveOrdered(ctx context.Context, userID uuid.UUID, lines []model.OrderLine) error {
	const query = `
		WITH ordered AS (
			SELECT product_id, qty FROM unnest($2::uuid[], $3::int[]) AS o(product_id, qty)
		), removed AS (
			DELETE FROM cart_items c USING ordered o
			WHERE c.user_id = $1 AND c.product_id = o.product_id AND c.quantity <= o.qty
		)
		UPDATE cart_items c SET quantity = c.quantity - o.qty
		FROM ordered o
		WHERE c.user_id = $1 AND c.product_id = o.product_id AND c.quantity > o.qty`

	if len(lines) == 0 {
		return nil
	}

	productIDs := make([]string, 0, len(lines))
	quantities := make([]int32, 0, len(lines))
	for _, l := range lines {
		productIDs = append(productIDs, l.ProductID.String())
		quantities = append(quantities, int32(l.Quantity))
	}

	if _, err := r.db.Exec(ctx, query, userID, productIDs, quantities); err != nil {
		return fmt.Errorf("failed to remove ordered products from cart: %w", err)
	}
	return nil
}

func (r *CartRepository) Lines(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error) {
	const query = `
		SELECT p.id, p.owner_id, p.owner_name, p.title, p.price, p.description, p.image_url, p.image_key,
		       p.created_at, p.updated_at, c.quantity
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.added_at, p.id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart lines: %w", err)
	}
	defer rows.Close()

	lines := make([]model.CartLine, 0)
	for rows.Next() {
		var line model.CartLine
		p := &line.Product
		err := rows.Scan(
			&p.ID, &p.OwnerID, &p.OwnerName, &p.Title, &p.Price, &p.Description, &p.ImageURL, &p.ImageKey,
			&p.CreatedAt, &p.UpdatedAt, &line.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart lines: %w", err)
	}

	return lines, nil
}
