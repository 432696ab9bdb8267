package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/storefront/internal/apperror"
	"github.com/dtroode/storefront/internal/model"
)

// handleError maps a service error to one user-facing outcome.
func (v *Views) handleError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr, ok := apperror.As(err)
	if !ok {
		if errors.Is(err, model.ErrNotFound) {
			v.NotFound(w, r)
			return
		}
		v.logger.Error("HTTP handler: request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error())
		v.render(w, r, http.StatusInternalServerError, "errors/500", v.page(r, "Error!", nil))
		return
	}

	switch apiErr.Kind {
	case apperror.KindNotFound:
		v.NotFound(w, r)
	case apperror.KindUnauthorized:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case apperror.KindStorage, apperror.KindInternal:
		v.logger.Error("HTTP handler: request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"code", apiErr.Code,
			"error", err.Error())
		v.render(w, r, http.StatusInternalServerError, "errors/500", v.page(r, "Error!", nil))
	default:
		v.logger.Warn("HTTP handler: request rejected",
			"method", r.Method,
			"path", r.URL.Path,
			"code", apiErr.Code,
			"error", err.Error())
		p := v.page(r, "Error!", nil)
		p.Error = apiErr.Message
		v.render(w, r, apiErr.HTTPStatus(), "errors/500", p)
	}
}
