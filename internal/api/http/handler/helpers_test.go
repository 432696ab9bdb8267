package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	ctxmanager "github.com/dtroode/storefront/internal/api/http/context"
	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/testutil"
	"github.com/dtroode/storefront/internal/web"
)

var testUser = model.User{ID: uuid.MustParse("6f1c2a8e-0b5d-4c1e-9a57-3d2f4b6c8e10"), Email: "ann@example.com"}

func newTestViews(t *testing.T) *Views {
	t.Helper()

	renderer, err := web.NewRenderer()
	require.NoError(t, err)
	return NewViews(renderer, ctxmanager.NewManager(), testutil.MakeNoopLogger())
}

func asUser(r *http.Request, user model.User) *http.Request {
	return r.WithContext(ctxmanager.NewManager().SetUserToContext(r.Context(), user))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func formRequest(method, target string, form url.Values) *http.Request {
	req, _ := http.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
