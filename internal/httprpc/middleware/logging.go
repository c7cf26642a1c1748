package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/behzade/storefront/internal/httprpc"
)

// Logging logs one line per request. Server errors log at error level, client errors at warn.
// If logger is nil, zap.L() is used.
func Logging(logger *zap.Logger) httprpc.Middleware {
	if logger == nil {
		logger = zap.L()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &responseRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			status := rec.statusCode()
			level := zapcore.InfoLevel
			switch {
			case status >= http.StatusInternalServerError:
				level = zapcore.ErrorLevel
			case status >= http.StatusBadRequest:
				level = zapcore.WarnLevel
			}

			logger.Log(level, "http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", status),
				zap.Duration("duration", time.Since(start)),
				zap.Int("bytes_written", rec.bytes),
				zap.String("request_id", RequestIDFromContext(r.Context())),
			)
		})
	}
}
