package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
)

// Authenticator resolves a session token to the current user.
type Authenticator interface {
	CurrentUser(ctx context.Context, token string) (model.User, error)
}

// Authenticate attaches the session user to every request. The user is
// loaded from the store on each request so a deleted account stops being
// authenticated immediately.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	cookieName     string
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(
	authenticator Authenticator,
	contextManager model.ContextManager,
	cookieName string,
	logger *logger.Logger,
) *Authenticate {
	return &Authenticate{
		authenticator:  authenticator,
		contextManager: contextManager,
		cookieName:     cookieName,
		logger:         logger,
	}
}

// Handle never rejects a request. Requests without a usable session go on
// as anonymous.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.authenticator.CurrentUser(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				m.logger.Error("Authenticate middleware: failed to resolve user",
					"path", r.URL.Path,
					"error", err.Error())
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetUserToContext(r.Context(), user)))
	})
}

// RequireUser redirects anonymous requests to the login page.
func RequireUser(contextManager model.ContextManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := contextManager.GetUserFromContext(r.Context()); !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
