package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// withChiParam seeds a chi route parameter for handlers invoked outside a
// router.
func withChiParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
