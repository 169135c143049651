package middleware

import (
	"context"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/xid"
)

// RequestIDHeader carries the request ID in and out. Header names are case
// insensitive, so this is the same header chi's RequestID reads.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen caps how much of an incoming header we are willing to trust
// and echo back.
const maxRequestIDLen = 64

// RequestID stands in for chi's middleware.RequestID with two differences:
//
//  1. New IDs are xids (20 sortable characters) instead of chi's
//     "host/random-counter" form, so they match the IDs in our logs.
//  2. The ID is echoed in the X-Request-ID response header, so a user who
//     reports an error page can quote it.
//
// The ID is stored under chi's context key, so chimiddleware.GetReqID and
// anything else built on chi's middleware sees the same value.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = xid.New().String()
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), chimiddleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the ID stored by RequestID, or "" outside of it.
func GetRequestID(ctx context.Context) string {
	return chimiddleware.GetReqID(ctx)
}
