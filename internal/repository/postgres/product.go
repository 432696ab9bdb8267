package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/storefront/internal/model"
)

var _ model.ProductStore = (*ProductRepository)(nil)

const productColumns = `id, owner_id, owner_name, title, price, description, image_url, image_key, created_at, updated_at`

type ProductRepository struct {
	db *Connection
}

func NewProductRepository(db *Connection) *ProductRepository {
	return &ProductRepository{
		db: db,
	}
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.OwnerName, &p.Title, &p.Price, &p.Description,
		&p.ImageURL, &p.ImageKey, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *ProductRepository) Create(ctx context.Context, product model.Product) (model.Product, error) {
	query := `INSERT INTO products (id, owner_id, owner_name, title, price, description, image_url, image_key, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
			  RETURNING ` + productColumns

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	saved, err := scanProduct(r.db.QueryRow(ctx, query,
		product.ID, product.OwnerID, product.OwnerName, product.Title, product.Price,
		product.Description, product.ImageURL, product.ImageKey,
	))
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	return saved, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, model.ErrNotFound
		}
		return model.Product{}, fmt.Errorf("failed to get product by id: %w", err)
	}

	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, product model.Product) (model.Product, error) {
	query := `UPDATE products
			  SET title = $3, price = $4, description = $5, image_url = $6, image_key = $7, updated_at = NOW()
			  WHERE id = $1 AND owner_id = $2
			  RETURNING ` + productColumns

	saved, err := scanProduct(r.db.QueryRow(ctx, query,
		product.ID, product.OwnerID, product.Title, product.Price, product.Description,
		product.ImageURL, product.ImageKey,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, model.ErrNotFound
		}
		return model.Product{}, fmt.Errorf("failed to update product: %w", err)
	}

	return saved, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (model.Product, error) {
	query := `DELETE FROM products WHERE id = $1 AND owner_id = $2 RETURNING ` + productColumns

	deleted, err := scanProduct(r.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, model.ErrNotFound
		}
		return model.Product{}, fmt.Errorf("failed to delete product: %w", err)
	}

	return deleted, nil
}

// List returns one window of products ordered by creation time and the total
// number of products matching the filter.
func (r *ProductRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error) {
	where, args := productWhere(filter)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY created_at, id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, total, nil
}

func productWhere(filter model.ProductFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.Keyword != "" {
		args = append(args, "%"+escapeLike(filter.Keyword)+"%")
		conds = append(conds, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if filter.OwnerID != uuid.Nil {
		args = append(args, filter.OwnerID)
		conds = append(conds, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
