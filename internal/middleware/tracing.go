package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// RouteSpanName renames the request's span to "METHOD /route/{pattern}" once
// chi has matched a route.
//
// WHY AFTER next?
// otelhttp starts the span outside the router, before any route is known, and
// chi only fills in the full pattern while it walks its subrouters. Reading it
// after the handler returns gives "/users/{id}/edit" rather than the raw path,
// so span names stay as bounded as the metric labels. Unmatched requests keep
// the name the span was started with.
func RouteSpanName(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		if pattern := routePattern(r); pattern != "" {
			trace.SpanFromContext(r.Context()).SetName(r.Method + " " + pattern)
		}
	})
}

// routePattern returns the chi pattern that matched r, or "" when no route did.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}
	return rctx.RoutePattern()
}
