package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	servermocks "github.com/dtroode/storefront/internal/mocks"
	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/testutil"
)

func TestSessionService_Issue(t *testing.T) {
	manager := servermocks.NewTokenManager(t)
	store := servermocks.NewSessionStore(t)
	userID := uuid.New()

	manager.On("GenerateSessionToken", userID, time.Hour).Return("tok", "jti-1", nil)
	store.On("Create", mock.Anything, mock.MatchedBy(func(s model.Session) bool {
		return s.JTI == "jti-1" && s.UserID == userID && string(s.TokenHash) == string(hashToken("tok")) &&
			s.ExpiresAt.Sub(s.IssuedAt) == time.Hour
	})).Return(nil)

	s := NewSessionService(manager, store, time.Hour, testutil.MakeNoopLogger())
	tok, expiresAt, err := s.Issue(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
	assert.False(t, expiresAt.IsZero())
}

func TestSessionService_Issue_StoreError(t *testing.T) {
	manager := servermocks.NewTokenManager(t)
	store := servermocks.NewSessionStore(t)
	userID := uuid.New()

	manager.On("GenerateSessionToken", userID, time.Hour).Return("tok", "jti-1", nil)
	store.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	s := NewSessionService(manager, store, time.Hour, testutil.MakeNoopLogger())
	_, _, err := s.Issue(context.Background(), userID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist session")
}

func TestSessionService_Resolve(t *testing.T) {
	userID := uuid.New()
	now := time.Now()
	revokedAt := now.Add(-time.Minute)

	tests := []struct {
		name    string
		session model.Session
		wantErr error
	}{
		{
			name:    "live session",
			session: model.Session{JTI: "j", UserID: userID, TokenHash: hashToken("tok"), ExpiresAt: now.Add(time.Hour)},
		},
		{
			name:    "revoked",
			session: model.Session{JTI: "j", UserID: userID, TokenHash: hashToken("tok"), ExpiresAt: now.Add(time.Hour), RevokedAt: &revokedAt},
			wantErr: model.ErrSessionRevoked,
		},
		{
			name:    "expired",
			session: model.Session{JTI: "j", UserID: userID, TokenHash: hashToken("tok"), ExpiresAt: now.Add(-time.Second)},
			wantErr: model.ErrSessionExpired,
		},
		{
			name:    "hash mismatch",
			session: model.Session{JTI: "j", UserID: userID, TokenHash: hashToken("other"), ExpiresAt: now.Add(time.Hour)},
			wantErr: model.ErrSessionMismatch,
		},
		{
			name:    "other user",
			session: model.Session{JTI: "j", UserID: uuid.New(), TokenHash: hashToken("tok"), ExpiresAt: now.Add(time.Hour)},
			wantErr: model.ErrSessionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := servermocks.NewTokenManager(t)
			store := servermocks.NewSessionStore(t)
			manager.On("ParseSessionToken", "tok").Return(userID, "j", nil)
			store.On("GetByJTI", mock.Anything, "j").Return(tt.session, nil)

			s := NewSessionService(manager, store, time.Hour, testutil.MakeNoopLogger())
			s.now = func() time.Time { return now }

			got, err := s.Resolve(context.Background(), "tok")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, got)
		})
	}
}

func TestSessionService_Revoke_IgnoresGarbage(t *testing.T) {
	manager := servermocks.NewTokenManager(t)
	store := servermocks.NewSessionStore(t)
	manager.On("ParseSessionToken", "garbage").Return(uuid.Nil, "", errors.New("malformed"))

	s := NewSessionService(manager, store, time.Hour, testutil.MakeNoopLogger())
	assert.NoError(t, s.Revoke(context.Background(), "garbage"))
	store.AssertNotCalled(t, "RevokeByJTI", mock.Anything, mock.Anything)
}

func TestSessionService_RevokeAllForUser(t *testing.T) {
	store := servermocks.NewSessionStore(t)
	userID := uuid.New()
	store.On("RevokeAllByUser", mock.Anything, userID).Return(nil)

	s := NewSessionService(servermocks.NewTokenManager(t), store, time.Hour, testutil.MakeNoopLogger())
	assert.NoError(t, s.RevokeAllForUser(context.Background(), userID))
}
