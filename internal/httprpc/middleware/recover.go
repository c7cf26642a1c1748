package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/behzade/storefront/internal/httprpc"
)

// Recover returns middleware that recovers from panics and writes a 500 JSON error.
// If logger is nil, zap.L() is used.
func Recover(logger *zap.Logger) httprpc.Middleware {
	if logger == nil {
		logger = zap.L()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("request_id", RequestIDFromContext(r.Context())),
					zap.Stack("stack"),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(httprpc.ErrorBody{Error: http.StatusText(http.StatusInternalServerError)})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
