package model

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResetTokenTTL is how long a password reset link stays valid.
const ResetTokenTTL = time.Hour

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash []byte, expiresAt time.Time) error
	GetByResetToken(ctx context.Context, tokenHash []byte, now time.Time) (User, error)
	// ConsumeResetToken replaces the password hash and clears the reset token
	// if tokenHash matches a token that has not expired at now.
	ConsumeResetToken(ctx context.Context, tokenHash []byte, passwordHash string, now time.Time) (uuid.UUID, error)
}

// SignupParams carries the signup form.
type SignupParams struct {
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=5,alphanum"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// User represents a registered shopper or seller.
type User struct {
	ID                  uuid.UUID
	Email               string
	PasswordHash        string
	ResetTokenHash      []byte
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DisplayName is the part of the email before "@", shown as the seller name.
func (u User) DisplayName() string {
	name, _, _ := strings.Cut(u.Email, "@")
	return name
}
