package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/behzade/storefront/internal/httprpc"
)

// ErrRequestTimeout is the context cause set when a request exceeds its deadline.
var ErrRequestTimeout = errors.New("request timed out")

// Timeout bounds each request's context to d. If d is zero or negative, it is a no-op.
func Timeout(d time.Duration) httprpc.Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeoutCause(r.Context(), d, ErrRequestTimeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
