package model

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionRevoked  = errors.New("session revoked")
	ErrSessionExpired  = errors.New("session expired")
	ErrSessionMismatch = errors.New("session token mismatch")
)

// SessionStore persists login sessions.
type SessionStore interface {
	Create(ctx context.Context, session Session) error
	GetByJTI(ctx context.Context, jti string) (Session, error)
	RevokeByJTI(ctx context.Context, jti string) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
}

// Session is a server-side record of an issued session token.
type Session struct {
	ID        uuid.UUID
	JTI       string
	UserID    uuid.UUID
	TokenHash []byte
	IssuedAt  time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TokenManager signs and validates session tokens.
type TokenManager interface {
	GenerateSessionToken(userID uuid.UUID, ttl time.Duration) (token string, jti string, err error)
	ParseSessionToken(token string) (userID uuid.UUID, jti string, err error)
}

// IssuedSession is the result of a successful login.
type IssuedSession struct {
	Token     string
	ExpiresAt time.Time
	User      User
}
