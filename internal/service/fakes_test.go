package service

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/storefront/internal/model"
)

// memUserStore keeps users in memory with the same reset-token semantics as
// the postgres repository.
type memUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uuid.UUID]model.User)}
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (s *memUserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return model.User{}, model.ErrAlreadyExists
		}
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *memUserStore) SetResetToken(_ context.Context, userID uuid.UUID, tokenHash []byte, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return model.ErrNotFound
	}
	u.ResetTokenHash = tokenHash
	u.ResetTokenExpiresAt = &expiresAt
	s.users[userID] = u
	return nil
}

func (s *memUserStore) findByToken(tokenHash []byte, now time.Time) (model.User, bool) {
	for _, u := range s.users {
		if u.ResetTokenHash != nil && bytes.Equal(u.ResetTokenHash, tokenHash) &&
			u.ResetTokenExpiresAt != nil && u.ResetTokenExpiresAt.After(now) {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *memUserStore) GetByResetToken(_ context.Context, tokenHash []byte, now time.Time) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.findByToken(tokenHash, now)
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (s *memUserStore) ConsumeResetToken(_ context.Context, tokenHash []byte, passwordHash string, now time.Time) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.findByToken(tokenHash, now)
	if !ok {
		return uuid.Nil, model.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetTokenHash = nil
	u.ResetTokenExpiresAt = nil
	s.users[u.ID] = u
	return u.ID, nil
}

type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]model.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]model.Session)}
}

func (s *memSessionStore) Create(_ context.Context, session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.JTI] = session
	return nil
}

func (s *memSessionStore) GetByJTI(_ context.Context, jti string) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[jti]
	if !ok {
		return model.Session{}, model.ErrNotFound
	}
	return session, nil
}

func (s *memSessionStore) RevokeByJTI(_ context.Context, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[jti]
	if !ok {
		return nil
	}
	now := time.Now()
	session.RevokedAt = &now
	s.sessions[jti] = session
	return nil
}

func (s *memSessionStore) RevokeAllByUser(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for jti, session := range s.sessions {
		if session.UserID == userID && session.RevokedAt == nil {
			session.RevokedAt = &now
			s.sessions[jti] = session
		}
	}
	return nil
}

// memShop holds products, carts and orders in memory.
type memShop struct {
	mu       sync.Mutex
	products map[uuid.UUID]model.Product
	carts    map[uuid.UUID][]cartEntry
	orders   map[uuid.UUID]model.Order
}

type cartEntry struct {
	productID uuid.UUID
	quantity  int
}

func newMemShop() *memShop {
	return &memShop{
		products: make(map[uuid.UUID]model.Product),
		carts:    make(map[uuid.UUID][]cartEntry),
		orders:   make(map[uuid.UUID]model.Order),
	}
}

func (s *memShop) addProduct(p model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.products[p.ID] = p
	return p
}

func (s *memShop) productStore() model.ProductStore { return memProductStore{s} }
func (s *memShop) cartStore() model.CartStore       { return memCartStore{s} }
func (s *memShop) orderStore() model.OrderStore     { return memOrderStore{s} }

type memProductStore struct{ s *memShop }

func (m memProductStore) Create(_ context.Context, p model.Product) (model.Product, error) {
	return m.s.addProduct(p), nil
}

func (m memProductStore) GetByID(_ context.Context, id uuid.UUID) (model.Product, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	p, ok := m.s.products[id]
	if !ok {
		return model.Product{}, model.ErrNotFound
	}
	return p, nil
}

func (m memProductStore) Update(_ context.Context, p model.Product) (model.Product, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	cur, ok := m.s.products[p.ID]
	if !ok || cur.OwnerID != p.OwnerID {
		return model.Product{}, model.ErrNotFound
	}
	m.s.products[p.ID] = p
	return p, nil
}

func (m memProductStore) Delete(_ context.Context, id, ownerID uuid.UUID) (model.Product, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	cur, ok := m.s.products[id]
	if !ok || cur.OwnerID != ownerID {
		return model.Product{}, model.ErrNotFound
	}
	delete(m.s.products, id)
	return cur, nil
}

func (m memProductStore) List(_ context.Context, _ model.ProductFilter) ([]model.Product, int, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]model.Product, 0, len(m.s.products))
	for _, p := range m.s.products {
		out = append(out, p)
	}
	return out, len(out), nil
}

type memCartStore struct{ s *memShop }

func (m memCartStore) Increment(_ context.Context, userID, productID uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	entries := m.s.carts[userID]
	for i := range entries {
		if entries[i].productID == productID {
			entries[i].quantity++
			return nil
		}
	}
	m.s.carts[userID] = append(entries, cartEntry{productID: productID, quantity: 1})
	return nil
}

func (m memCartStore) Remove(_ context.Context, userID, productID uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	entries := m.s.carts[userID]
	kept := entries[:0]
	for _, e := range entries {
		if e.productID != productID {
			kept = append(kept, e)
		}
	}
	m.s.carts[userID] = kept
	return nil
}

func (m memCartStore) RemoveOrdered(_ context.Context, userID uuid.UUID, lines []model.OrderLine) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	ordered := make(map[uuid.UUID]int, len(lines))
	for _, l := range lines {
		ordered[l.ProductID] += l.Quantity
	}
	entries := m.s.carts[userID]
	kept := entries[:0]
	for _, e := range entries {
		e.quantity -= ordered[e.productID]
		if e.quantity > 0 {
			kept = append(kept, e)
		}
	}
	m.s.carts[userID] = kept
	return nil
}

func (m memCartStore) Lines(_ context.Context, userID uuid.UUID) ([]model.CartLine, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var lines []model.CartLine
	for _, e := range m.s.carts[userID] {
		p, ok := m.s.products[e.productID]
		if !ok {
			continue
		}
		lines = append(lines, model.CartLine{Product: p, Quantity: e.quantity})
	}
	return lines, nil
}

type memOrderStore struct{ s *memShop }

func (m memOrderStore) Create(_ context.Context, o model.Order) (model.Order, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.orders {
		if existing.BuyerID == o.BuyerID && existing.CheckoutKey == o.CheckoutKey {
			return existing, nil
		}
	}
	o.Lines = append([]model.OrderLine(nil), o.Lines...)
	m.s.orders[o.ID] = o
	return o, nil
}

func (m memOrderStore) GetByID(_ context.Context, id uuid.UUID) (model.Order, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	o, ok := m.s.orders[id]
	if !ok {
		return model.Order{}, model.ErrNotFound
	}
	return o, nil
}

func (m memOrderStore) ListByBuyer(_ context.Context, buyerID uuid.UUID) ([]model.Order, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []model.Order
	for _, o := range m.s.orders {
		if o.BuyerID == buyerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m memOrderStore) MarkPaid(_ context.Context, id uuid.UUID, chargeID string, paidAt time.Time) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	o, ok := m.s.orders[id]
	if !ok || o.Status == model.OrderStatusPaid {
		return model.ErrNotFound
	}
	o.Status = model.OrderStatusPaid
	o.ChargeID = chargeID
	o.PaidAt = &paidAt
	m.s.orders[id] = o
	return nil
}

func (m memOrderStore) MarkExpired(_ context.Context, id uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	o, ok := m.s.orders[id]
	if !ok || o.Status != model.OrderStatusCreated {
		return model.ErrNotFound
	}
	o.Status = model.OrderStatusExpired
	m.s.orders[id] = o
	return nil
}

func (m memOrderStore) ListStale(_ context.Context, createdBefore time.Time, limit int) ([]model.Order, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []model.Order
	for _, o := range m.s.orders {
		if o.Status == model.OrderStatusCreated && o.CreatedAt.Before(createdBefore) && len(out) < limit {
			out = append(out, o)
		}
	}
	return out, nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []model.Message
}

func (n *recordingNotifier) Dispatch(msg model.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

func (n *recordingNotifier) sent() []model.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.Message(nil), n.messages...)
}

type noopLocker struct{}

func (noopLocker) Acquire(context.Context, string, time.Duration) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}
