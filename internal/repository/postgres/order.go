package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/storefront/internal/model"
)

var _ model.OrderStore = (*OrderRepository)(nil)

const orderColumns = `id, buyer_id, buyer_email, status, total, currency, COALESCE(charge_id, ''), checkout_key,
	ship_name, ship_street, ship_city, ship_state, ship_postcode, ship_country,
	bill_name, bill_street, bill_city, bill_state, bill_postcode, bill_country,
	created_at, updated_at, paid_at`

type OrderRepository struct {
	db *Connection
}

func NewOrderRepository(db *Connection) *OrderRepository {
	return &OrderRepository{
		db: db,
	}
}

// Create stores the order and its line snapshots in one transaction. A second
// submission with the same (buyer, checkout key) returns the first order.
func (r *OrderRepository) Create(ctx context.Context, order model.Order) (model.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	created, err := r.insert(ctx, order)
	if err != nil {
		return model.Order{}, err
	}
	if !created {
		return r.getByCheckoutKey(ctx, order.BuyerID, order.CheckoutKey)
	}

	return r.GetByID(ctx, order.ID)
}

func (r *OrderRepository) insert(ctx context.Context, order model.Order) (created bool, err error) {
	const insertOrder = `
		INSERT INTO orders (
			id, buyer_id, buyer_email, status, total, currency, checkout_key,
			ship_name, ship_street, ship_city, ship_state, ship_postcode, ship_country,
			bill_name, bill_street, bill_city, bill_state, bill_postcode, bill_country,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,NOW(),NOW())
		ON CONFLICT (buyer_id, checkout_key) DO NOTHING
		RETURNING id`

	const insertLine = `
		INSERT INTO order_lines (order_id, position, product_id, title, description, image_url, price, quantity)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin order transaction: %w", err)
	}
	defer func() {
		if err != nil || !created {
			_ = tx.Rollback(ctx)
		}
	}()

	s, b := order.Shipping, order.Billing
	var id uuid.UUID
	err = tx.QueryRow(ctx, insertOrder,
		order.ID, order.BuyerID, order.BuyerEmail, string(order.Status), order.Total, order.Currency, order.CheckoutKey,
		s.Name, s.Street, s.City, s.State, s.Postcode, s.Country,
		b.Name, b.Street, b.City, b.State, b.Postcode, b.Country,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert order: %w", err)
	}

	for i, line := range order.Lines {
		_, err = tx.Exec(ctx, insertLine,
			id, i, line.ProductID, line.Title, line.Description, line.ImageURL, line.Price, line.Quantity,
		)
		if err != nil {
			return false, fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit order: %w", err)
	}

	return true, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Order, error) {
	orders, err := r.selectOrders(ctx, `WHERE id = $1`, id)
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to get order by id: %w", err)
	}
	if len(orders) == 0 {
		return model.Order{}, model.ErrNotFound
	}
	return orders[0], nil
}

func (r *OrderRepository) getByCheckoutKey(ctx context.Context, buyerID, checkoutKey uuid.UUID) (model.Order, error) {
	orders, err := r.selectOrders(ctx, `WHERE buyer_id = $1 AND checkout_key = $2`, buyerID, checkoutKey)
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to get order by checkout key: %w", err)
	}
	if len(orders) == 0 {
		return model.Order{}, model.ErrNotFound
	}
	return orders[0], nil
}

func (r *OrderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]model.Order, error) {
	orders, err := r.selectOrders(ctx, `WHERE buyer_id = $1 ORDER BY created_at DESC`, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) ListStale(ctx context.Context, createdBefore time.Time, limit int) ([]model.Order, error) {
	orders, err := r.selectOrders(ctx, `WHERE status = $1 AND created_at < $2 ORDER BY created_at LIMIT $3`,
		string(model.OrderStatusCreated), createdBefore, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) MarkPaid(ctx context.Context, id uuid.UUID, chargeID string, paidAt time.Time) error {
	const query = `
		UPDATE orders SET status = $2, charge_id = $3, paid_at = $4, updated_at = NOW()
		WHERE id = $1 AND status <> $2`

	cmd, err := r.db.Exec(ctx, query, id, string(model.OrderStatusPaid), chargeID, paidAt)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) MarkExpired(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE orders SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3`

	cmd, err := r.db.Exec(ctx, query, id, string(model.OrderStatusExpired), string(model.OrderStatusCreated))
	if err != nil {
		return fmt.Errorf("failed to mark order expired: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) selectOrders(ctx context.Context, clause string, args ...any) ([]model.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders `+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			o      model.Order
			status string
		)
		s, b := &o.Shipping, &o.Billing
		err := rows.Scan(
			&o.ID, &o.BuyerID, &o.BuyerEmail, &status, &o.Total, &o.Currency, &o.ChargeID, &o.CheckoutKey,
			&s.Name, &s.Street, &s.City, &s.State, &s.Postcode, &s.Country,
			&b.Name, &b.Street, &b.City, &b.State, &b.Postcode, &b.Country,
			&o.CreatedAt, &o.UpdatedAt, &o.PaidAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		o.Status = model.OrderStatus(status)
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}
	if err := r.attachLines(ctx, orders, index); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrderRepository) attachLines(ctx context.Context, orders []model.Order, index map[uuid.UUID]int) error {
	const query = `
		SELECT order_id, product_id, title, description, image_url, price, quantity
		FROM order_lines WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, position`

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID.String())
	}

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to get order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID uuid.UUID
			line    model.OrderLine
		)
		err := rows.Scan(&orderID, &line.ProductID, &line.Title, &line.Description, &line.ImageURL, &line.Price, &line.Quantity)
		if err != nil {
			return fmt.Errorf("failed to scan order line: %w", err)
		}
		i, ok := index[orderID]
		if !ok {
			continue
		}
		orders[i].Lines = append(orders[i].Lines, line)
	}

	return rows.Err()
}
