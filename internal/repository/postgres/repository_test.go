package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront/internal/model"
)

func newMockConnection(t *testing.T) (*Connection, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewConnectionWithDB(mock), mock
}

func TestCartRepository_Increment_UsesAtomicUpsert(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewCartRepository(conn)
	userID, productID := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = cart_items.quantity + 1`)).
		WithArgs(userID, productID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Increment(context.Background(), userID, productID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_Remove_AbsentIsNoop(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewCartRepository(conn)
	userID, productID := uuid.New(), uuid.New()

	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs(userID, productID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.Remove(context.Background(), userID, productID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_RemoveOrdered(t *testing.T) {
	userID, lampID, mugID := uuid.New(), uuid.New(), uuid.New()
	lines := []model.OrderLine{
		{ProductID: lampID, Quantity: 2},
		{ProductID: mugID, Quantity: 1},
	}

	t.Run("subtracts ordered quantities", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewCartRepository(conn)

		mock.ExpectExec(regexp.QuoteMeta(`SET quantity = c.quantity - o.qty`)).
			WithArgs(userID, []string{lampID.String(), mugID.String()}, []int32{2, 1}).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, repo.RemoveOrdered(context.Background(), userID, lines))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing ordered", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewCartRepository(conn)

		require.NoError(t, repo.RemoveOrdered(context.Background(), userID, nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewCartRepository(conn)

		mock.ExpectExec("UPDATE cart_items").WillReturnError(assert.AnError)

		err := repo.RemoveOrdered(context.Background(), userID, lines)
		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "failed to remove ordered products from cart")
	})
}

func TestCartRepository_Lines(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewCartRepository(conn)
	userID, productID, ownerID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{
		"id", "owner_id", "owner_name", "title", "price", "description", "image_url", "image_key",
		"created_at", "updated_at", "quantity",
	}).AddRow(productID, ownerID, "seller", "Lamp", decimal.NewFromInt(10), "A lamp", "/images/x.png", "products/x.png", now, now, 2)

	mock.ExpectQuery("FROM cart_items c").WithArgs(userID).WillReturnRows(rows)

	lines, err := repo.Lines(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, productID, lines[0].Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, decimal.NewFromInt(10).Equal(lines[0].Product.Price))
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewUserRepository(conn)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	_, err := repo.Create(context.Background(), model.User{Email: "a@b.c", PasswordHash: "hash"})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewUserRepository(conn)

	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("missing@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepository_SetResetToken_UnknownUser(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewUserRepository(conn)
	userID := uuid.New()
	expires := time.Now().Add(time.Hour)

	mock.ExpectExec("UPDATE users SET reset_token_hash").
		WithArgs(userID, []byte("hash"), expires).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SetResetToken(context.Background(), userID, []byte("hash"), expires)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepository_ConsumeResetToken(t *testing.T) {
	now := time.Now()
	hash := []byte("token-hash")

	t.Run("valid token", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewUserRepository(conn)
		userID := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE reset_token_hash = $1 AND reset_token_expires_at > $3`)).
			WithArgs(hash, "new-hash", now).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(userID))

		id, err := repo.ConsumeResetToken(context.Background(), hash, "new-hash", now)
		require.NoError(t, err)
		assert.Equal(t, userID, id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("expired or used token", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewUserRepository(conn)

		mock.ExpectQuery("UPDATE users").
			WithArgs(hash, "new-hash", now).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.ConsumeResetToken(context.Background(), hash, "new-hash", now)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestProductRepository_Delete_NotOwner(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewProductRepository(conn)
	productID, otherUser := uuid.New(), uuid.New()

	mock.ExpectQuery("DELETE FROM products").
		WithArgs(productID, otherUser).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Delete(context.Background(), productID, otherUser)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestProductRepository_List_AppliesFilter(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewProductRepository(conn)
	ownerID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM products WHERE title ILIKE $1 AND owner_id = $2`)).
		WithArgs(`%50\% off%`, ownerID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at, id LIMIT $3 OFFSET $4`)).
		WithArgs(`%50\% off%`, ownerID, 3, 3).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "owner_id", "owner_name", "title", "price", "description", "image_url", "image_key",
			"created_at", "updated_at",
		}))

	products, total, err := repo.List(context.Background(), model.ProductFilter{
		Keyword: "50% off",
		OwnerID: ownerID,
		Offset:  3,
		Limit:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_MarkTransitions(t *testing.T) {
	orderID := uuid.New()
	paidAt := time.Now()

	t.Run("mark paid", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewOrderRepository(conn)

		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(orderID, "paid", "ch_1", paidAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.MarkPaid(context.Background(), orderID, "ch_1", paidAt))
	})

	t.Run("mark expired only from created", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewOrderRepository(conn)

		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(orderID, "expired", "created").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.ErrorIs(t, repo.MarkExpired(context.Background(), orderID), model.ErrNotFound)
	})
}

func orderRows(o model.Order) *pgxmock.Rows {
	s, b := o.Shipping, o.Billing
	return pgxmock.NewRows([]string{
		"id", "buyer_id", "buyer_email", "status", "total", "currency", "charge_id", "checkout_key",
		"ship_name", "ship_street", "ship_city", "ship_state", "ship_postcode", "ship_country",
		"bill_name", "bill_street", "bill_city", "bill_state", "bill_postcode", "bill_country",
		"created_at", "updated_at", "paid_at",
	}).AddRow(
		o.ID, o.BuyerID, o.BuyerEmail, string(o.Status), o.Total, o.Currency, o.ChargeID, o.CheckoutKey,
		s.Name, s.Street, s.City, s.State, s.Postcode, s.Country,
		b.Name, b.Street, b.City, b.State, b.Postcode, b.Country,
		o.CreatedAt, o.UpdatedAt, (*time.Time)(nil),
	)
}

func lineRows(orderID uuid.UUID, lines ...model.OrderLine) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"order_id", "product_id", "title", "description", "image_url", "price", "quantity"})
	for _, l := range lines {
		rows.AddRow(orderID, l.ProductID, l.Title, l.Description, l.ImageURL, l.Price, l.Quantity)
	}
	return rows
}

func sampleOrder() model.Order {
	addr := model.Address{Name: "Jane", Street: "1 Main St", City: "Springfield", State: "IL", Postcode: "62701", Country: "US"}
	now := time.Now()
	return model.Order{
		ID:          uuid.New(),
		BuyerID:     uuid.New(),
		BuyerEmail:  "jane@example.com",
		Status:      model.OrderStatusCreated,
		Total:       decimal.NewFromInt(25),
		Currency:    "usd",
		CheckoutKey: uuid.New(),
		Shipping:    addr,
		Billing:     addr,
		CreatedAt:   now,
		UpdatedAt:   now,
		Lines: []model.OrderLine{
			{ProductID: uuid.New(), Title: "Lamp", Price: decimal.NewFromInt(10), Quantity: 2},
			{ProductID: uuid.New(), Title: "Mug", Price: decimal.NewFromInt(5), Quantity: 1},
		},
	}
}

func TestOrderRepository_Create(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewOrderRepository(conn)
	order := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(order.ID))
	for i, l := range order.Lines {
		mock.ExpectExec("INSERT INTO order_lines").
			WithArgs(order.ID, i, l.ProductID, l.Title, l.Description, l.ImageURL, l.Price, l.Quantity).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()
	mock.ExpectQuery("FROM orders WHERE id").WithArgs(order.ID).WillReturnRows(orderRows(order))
	mock.ExpectQuery("FROM order_lines").WithArgs(pgxmock.AnyArg()).WillReturnRows(lineRows(order.ID, order.Lines...))

	saved, err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, order.ID, saved.ID)
	assert.Equal(t, model.OrderStatusCreated, saved.Status)
	require.Len(t, saved.Lines, 2)
	assert.Equal(t, "Lamp", saved.Lines[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_DuplicateCheckoutKeyReturnsExisting(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewOrderRepository(conn)
	existing := sampleOrder()

	resubmitted := existing
	resubmitted.ID = uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()
	mock.ExpectQuery("WHERE buyer_id = \\$1 AND checkout_key = \\$2").
		WithArgs(existing.BuyerID, existing.CheckoutKey).
		WillReturnRows(orderRows(existing))
	mock.ExpectQuery("FROM order_lines").WithArgs(pgxmock.AnyArg()).WillReturnRows(lineRows(existing.ID, existing.Lines...))

	saved, err := repo.Create(context.Background(), resubmitted)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_GetByJTI_NotFound(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewSessionRepository(conn)

	mock.ExpectQuery("FROM sessions WHERE jti").WithArgs("jti").WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByJTI(context.Background(), "jti")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSessionRepository_RevokeAllByUser(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewSessionRepository(conn)
	userID := uuid.New()

	mock.ExpectExec("UPDATE sessions SET revoked_at").WithArgs(userID).WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	assert.NoError(t, repo.RevokeAllByUser(context.Background(), userID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnection_PingNil(t *testing.T) {
	c := &Connection{}
	assert.Error(t, c.Ping(context.Background()))
	assert.NoError(t, c.Close())
}
