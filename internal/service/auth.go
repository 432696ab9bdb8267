package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/storefront/internal/apperror"
	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
)

const resetTokenBytes = 32

// AuthConfig holds auth parameters that come from configuration.
type AuthConfig struct {
	BcryptCost int
	BaseURL    string
	MailFrom   string
}

type Auth struct {
	userStore model.UserStore
	sessions  *SessionService
	notifier  model.Notifier
	cfg       AuthConfig
	logger    *logger.Logger
	now       func() time.Time
}

func NewAuth(
	userStore model.UserStore,
	sessions *SessionService,
	notifier model.Notifier,
	cfg AuthConfig,
	logger *logger.Logger,
) *Auth {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &Auth{
		userStore: userStore,
		sessions:  sessions,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *Auth) Signup(ctx context.Context, params model.SignupParams) (model.User, error) {
	params.Email = normalizeEmail(params.Email)
	a.logger.Debug("Auth service: starting user signup", "email", params.Email)

	if err := validateInput(params); err != nil {
		return model.User{}, err
	}

	existingUser, err := a.userStore.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if existingUser.ID != uuid.Nil {
		a.logger.Info("Auth service: user already exists", "email", params.Email)
		return model.User{}, apperror.NewErrEmailIsTaken(params.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), a.cfg.BcryptCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := a.now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        params.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, model.ErrAlreadyExists) {
		return model.User{}, apperror.NewErrEmailIsTaken(params.Email)
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.notifier.Dispatch(model.Message{
		To:       user.Email,
		From:     a.cfg.MailFrom,
		Subject:  "Signup succeeded!",
		HTMLBody: "<h1>You successfully signed up!</h1>",
	})

	a.logger.Info("Auth service: user signed up", "user_id", user.ID)
	return user, nil
}

// Login checks the credentials and opens a session. Unknown email and wrong
// password produce the same error.
func (a *Auth) Login(ctx context.Context, email, password string) (model.IssuedSession, error) {
	email = normalizeEmail(email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: login for unknown email", "email", email)
		return model.IssuedSession{}, apperror.NewErrInvalidCredentials()
	}
	if err != nil {
		return model.IssuedSession{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		a.logger.Info("Auth service: login with wrong password", "user_id", user.ID)
		return model.IssuedSession{}, apperror.NewErrInvalidCredentials()
	}

	token, expiresAt, err := a.sessions.Issue(ctx, user.ID)
	if err != nil {
		return model.IssuedSession{}, fmt.Errorf("failed to issue session: %w", err)
	}

	a.logger.Info("Auth service: user logged in", "user_id", user.ID)
	return model.IssuedSession{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (a *Auth) Logout(ctx context.Context, token string) error {
	return a.sessions.Revoke(ctx, token)
}

// CurrentUser resolves the session token to a user. It returns
// model.ErrNotFound when the request should be treated as anonymous.
func (a *Auth) CurrentUser(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, model.ErrNotFound
	}

	userID, err := a.sessions.Resolve(ctx, token)
	if err != nil {
		a.logger.Debug("Auth service: session not usable", "error", err.Error())
		return model.User{}, model.ErrNotFound
	}

	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// RequestReset mails a reset link when the email belongs to a user. The
// result is the same whether or not it does.
func (a *Auth) RequestReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: reset requested for unknown email", "email", email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	token, err := newResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiresAt := a.now().Add(model.ResetTokenTTL)
	if err := a.userStore.SetResetToken(ctx, user.ID, hashToken(token), expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	link := strings.TrimRight(a.cfg.BaseURL, "/") + "/reset/" + token
	a.notifier.Dispatch(model.Message{
		To:      user.Email,
		From:    a.cfg.MailFrom,
		Subject: "Password reset",
		HTMLBody: fmt.Sprintf(
			"<p>You requested a password reset</p><p>Click this <a href=\"%s\">link</a> to set a new password.</p>",
			template.HTMLEscapeString(link)),
	})

	a.logger.Info("Auth service: reset link issued", "user_id", user.ID)
	return nil
}

// ValidateResetToken returns the user a live reset token belongs to.
func (a *Auth) ValidateResetToken(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, apperror.ErrTokenInvalidOrExpired
	}
	user, err := a.userStore.GetByResetToken(ctx, hashToken(token), a.now())
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apperror.ErrTokenInvalidOrExpired
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by reset token: %w", err)
	}
	return user, nil
}

// ConsumeReset sets a new password if token is live, clears the token and
// ends every session of the user.
func (a *Auth) ConsumeReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return apperror.ErrTokenInvalidOrExpired
	}
	if err := validateInput(struct {
		Password string `validate:"required,min=5,alphanum"`
	}{Password: newPassword}); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), a.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := a.userStore.ConsumeResetToken(ctx, hashToken(token), string(hash), a.now())
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: reset with invalid or expired token")
		return apperror.ErrTokenInvalidOrExpired
	}
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	if err := a.sessions.RevokeAllForUser(ctx, userID); err != nil {
		a.logger.Error("Auth service: failed to revoke sessions after reset",
			"user_id", userID,
			"error", err.Error())
	}

	a.logger.Info("Auth service: password reset", "user_id", userID)
	return nil
}

func newResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
