package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/storefront/internal/apperror"
	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/web"
)

// AuthService handles signup, login sessions and password resets.
type AuthService interface {
	Signup(ctx context.Context, params model.SignupParams) (model.User, error)
	Login(ctx context.Context, email, password string) (model.IssuedSession, error)
	Logout(ctx context.Context, token string) error
	RequestReset(ctx context.Context, email string) error
	ValidateResetToken(ctx context.Context, token string) (model.User, error)
	ConsumeReset(ctx context.Context, token, newPassword string) error
}

// SessionCookie describes the cookie carrying the session token.
type SessionCookie struct {
	Name   string
	Secure bool
}

const resetRequestedNotice = "If an account exists for that email, a link to reset the password is on its way."

// Auth serves the login, signup and password reset pages.
type Auth struct {
	*Views
	auth   AuthService
	cookie SessionCookie
}

func NewAuth(views *Views, auth AuthService, cookie SessionCookie) *Auth {
	return &Auth{Views: views, auth: auth, cookie: cookie}
}

func (h *Auth) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "auth/login", h.page(r, "Login", web.AuthForm{}))
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	session, err := h.auth.Login(r.Context(), email, r.FormValue("password"))
	if err != nil {
		h.formError(w, r, "auth/login", "Login", web.AuthForm{Email: email}, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookie.Name); err == nil {
		if err := h.auth.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.Error("Auth handler: failed to revoke session", "error", err.Error())
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Auth) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "auth/signup", h.page(r, "Signup", web.AuthForm{}))
}

func (h *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	params := model.SignupParams{
		Email:           strings.TrimSpace(r.FormValue("email")),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirmPassword"),
	}
	if _, err := h.auth.Signup(r.Context(), params); err != nil {
		h.formError(w, r, "auth/signup", "Signup", web.AuthForm{Email: params.Email}, err)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Auth) ResetForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "auth/reset", h.page(r, "Reset Password", nil))
}

func (h *Auth) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.RequestReset(r.Context(), r.FormValue("email")); err != nil {
		h.handleError(w, r, err)
		return
	}
	p := h.page(r, "Reset Password", nil)
	p.Notice = resetRequestedNotice
	h.render(w, r, http.StatusOK, "auth/reset", p)
}

func (h *Auth) NewPasswordForm(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if _, err := h.auth.ValidateResetToken(r.Context(), token); err != nil {
		h.formError(w, r, "auth/reset", "Reset Password", nil, err)
		return
	}
	h.render(w, r, http.StatusOK, "auth/new-password", h.page(r, "New Password", web.AuthForm{Token: token}))
}

func (h *Auth) NewPassword(w http.ResponseWriter, r *http.Request) {
	token := r.FormValue("passwordToken")
	err := h.auth.ConsumeReset(r.Context(), token, r.FormValue("password"))
	switch {
	case err == nil:
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.Is(err, apperror.ErrTokenInvalidOrExpired):
		h.formError(w, r, "auth/reset", "Reset Password", nil, err)
	default:
		h.formError(w, r, "auth/new-password", "New Password", web.AuthForm{Token: token}, err)
	}
}

// formError re-renders a form with the validation message. Other errors go
// through handleError.
func (h *Auth) formError(w http.ResponseWriter, r *http.Request, view, title string, data any, err error) {
	if !apperror.IsKind(err, apperror.KindValidation) {
		h.handleError(w, r, err)
		return
	}
	apiErr, _ := apperror.As(err)
	p := h.page(r, title, data)
	p.Error = apiErr.Message
	h.render(w, r, apiErr.HTTPStatus(), view, p)
}
