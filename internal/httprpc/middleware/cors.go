// Package middleware provides the HTTP middleware the storefront API runs behind.
package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/behzade/storefront/internal/httprpc"
)

// CORSConfig configures CORS behavior. An empty AllowedOrigins, or one containing "*",
// allows every origin.
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAgeSeconds    int
}

// CORS returns middleware applying the provided CORSConfig. Requests from an origin
// that is not allowed get no CORS headers, and preflights from it get 403.
func CORS(cfg CORSConfig) httprpc.Middleware {
	origins := defaultIfEmpty(cfg.AllowedOrigins, []string{"*"})
	anyOrigin := slices.Contains(origins, "*")
	allowMethods := strings.Join(defaultIfEmpty(cfg.AllowedMethods, []string{http.MethodGet, http.MethodPost, http.MethodOptions}), ", ")
	allowHeaders := strings.Join(defaultIfEmpty(cfg.AllowedHeaders, []string{"Content-Type", "X-Request-ID"}), ", ")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""

			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")
			if !anyOrigin && !slices.Contains(origins, origin) {
				if preflight {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			if anyOrigin && !cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
			}
			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if exposeHeaders != "" {
				h.Set("Access-Control-Expose-Headers", exposeHeaders)
			}

			if preflight {
				h.Set("Access-Control-Allow-Methods", allowMethods)
				h.Set("Access-Control-Allow-Headers", allowHeaders)
				if cfg.MaxAgeSeconds > 0 {
					h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAgeSeconds))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func defaultIfEmpty(in, fallback []string) []string {
	if len(in) == 0 {
		return fallback
	}
	return in
}
