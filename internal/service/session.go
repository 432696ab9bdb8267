package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
)

// SessionService issues, resolves and revokes login sessions. It composes
// the TokenManager with the SessionStore.
type SessionService struct {
	manager model.TokenManager
	store   model.SessionStore
	ttl     time.Duration
	logger  *logger.Logger
	now     func() time.Time
}

func NewSessionService(manager model.TokenManager, store model.SessionStore, ttl time.Duration, logger *logger.Logger) *SessionService {
	return &SessionService{manager: manager, store: store, ttl: ttl, logger: logger, now: time.Now}
}

// Issue creates a session for userID and returns its token.
func (s *SessionService) Issue(ctx context.Context, userID uuid.UUID) (token string, expiresAt time.Time, err error) {
	token, jti, err := s.manager.GenerateSessionToken(userID, s.ttl)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue session token: %w", err)
	}

	now := s.now()
	session := model.Session{
		ID:        uuid.New(),
		JTI:       jti,
		UserID:    userID,
		TokenHash: hashToken(token),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Create(ctx, session); err != nil {
		return "", time.Time{}, fmt.Errorf("persist session: %w", err)
	}

	return token, session.ExpiresAt, nil
}

// Resolve returns the user the token was issued to if its session is live.
func (s *SessionService) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	userID, jti, err := s.manager.ParseSessionToken(token)
	if err != nil {
		return uuid.Nil, err
	}

	session, err := s.store.GetByJTI(ctx, jti)
	if err != nil {
		return uuid.Nil, err
	}

	if err := validateSession(session, hashToken(token), s.now()); err != nil {
		return uuid.Nil, err
	}
	if session.UserID != userID {
		return uuid.Nil, model.ErrSessionMismatch
	}

	return userID, nil
}

// Revoke ends the session behind token. Unknown tokens are ignored.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	_, jti, err := s.manager.ParseSessionToken(token)
	if err != nil {
		s.logger.Debug("Session service: ignoring revoke of unparsable token", "error", err.Error())
		return nil
	}
	if err := s.store.RevokeByJTI(ctx, jti); err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *SessionService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.RevokeAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke user sessions: %w", err)
	}
	return nil
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

func hashToken(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateSession(session model.Session, presentedHash []byte, now time.Time) error {
	if session.RevokedAt != nil {
		return model.ErrSessionRevoked
	}
	if now.After(session.ExpiresAt) {
		return model.ErrSessionExpired
	}
	if !equalBytes(session.TokenHash, presentedHash) {
		return model.ErrSessionMismatch
	}
	return nil
}

func equalBytes(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
