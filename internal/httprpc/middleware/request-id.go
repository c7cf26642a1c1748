package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/behzade/storefront/internal/httprpc"
)

type ctxKey int

const requestIDKey ctxKey = iota

const maxRequestIDLength = 128

// RequestID injects a request ID into the context and response headers.
// If headerName is empty, "X-Request-ID" is used. An incoming ID is propagated
// unless it is empty or longer than 128 bytes, in which case a UUID is generated.
func RequestID(headerName string) httprpc.Middleware {
	if headerName == "" {
		headerName = "X-Request-ID"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(headerName)
			if id == "" || len(id) > maxRequestIDLength {
				id = uuid.NewString()
			}
			ctx := context.WithValue(r.Context(), requestIDKey, id)
			w.Header().Set(headerName, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext returns the request ID set by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
