package handler

import (
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/web"
)

// Views renders pages with the request user and CSRF field filled in.
type Views struct {
	renderer       *web.Renderer
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewViews(renderer *web.Renderer, contextManager model.ContextManager, logger *logger.Logger) *Views {
	return &Views{renderer: renderer, contextManager: contextManager, logger: logger}
}

func (v *Views) page(r *http.Request, title string, data any) web.Page {
	p := web.Page{
		Title:     title,
		Path:      r.URL.Path,
		CSRFField: csrf.TemplateField(r),
		Data:      data,
	}
	if user, ok := v.contextManager.GetUserFromContext(r.Context()); ok {
		p.User = &user
	}
	return p
}

func (v *Views) render(w http.ResponseWriter, r *http.Request, status int, view string, page web.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := v.renderer.Render(w, view, page); err != nil {
		v.logger.Error("HTTP handler: failed to render view",
			"view", view,
			"path", r.URL.Path,
			"error", err.Error())
	}
}

func (v *Views) user(r *http.Request) (model.User, bool) {
	return v.contextManager.GetUserFromContext(r.Context())
}

// NotFound renders the 404 page.
func (v *Views) NotFound(w http.ResponseWriter, r *http.Request) {
	v.render(w, r, http.StatusNotFound, "errors/404", v.page(r, "Page Not Found", nil))
}

// Forbidden renders the rejection of a request that failed the CSRF check.
func (v *Views) Forbidden(w http.ResponseWriter, r *http.Request) {
	v.logger.Warn("HTTP handler: request rejected by CSRF check",
		"method", r.Method,
		"path", r.URL.Path,
		"reason", csrf.FailureReason(r))
	p := v.page(r, "Forbidden", nil)
	p.Error = "Your session form has expired, please reload the page and try again."
	v.render(w, r, http.StatusForbidden, "errors/500", p)
}
