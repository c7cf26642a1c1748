package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/behzade/storefront/internal/httprpc"
)

// RequestSizeLimit limits request bodies to maxBytes. A declared Content-Length over the
// limit is rejected with 413 before the handler runs; other bodies are wrapped in
// http.MaxBytesReader so the codec reports 413 when it reads past the limit.
func RequestSizeLimit(maxBytes int64) httprpc.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes <= 0 || r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}
			if r.ContentLength > maxBytes {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_ = json.NewEncoder(w).Encode(httprpc.ErrorBody{Error: "request body too large"})
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
