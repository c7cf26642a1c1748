package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/behzade/storefront/internal/httprpc"
	"github.com/behzade/storefront/internal/metrics"
)

const unmatchedPath = "unmatched"

// Metrics records request counts and latency. Paths outside known are labelled
// "unmatched" to keep label cardinality bounded.
func Metrics(known ...string) httprpc.Middleware {
	paths := make(map[string]struct{}, len(known))
	for _, p := range known {
		paths[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &responseRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			path := r.URL.Path
			if _, ok := paths[path]; !ok {
				path = unmatchedPath
			}
			metrics.RequestTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.statusCode())).Inc()
			metrics.RequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}
