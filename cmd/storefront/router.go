package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httprpcadapter "github.com/behzade/storefront/internal/adapter/httprpc"
	"github.com/behzade/storefront/internal/config"
	"github.com/behzade/storefront/internal/core/catalog"
	"github.com/behzade/storefront/internal/core/checkout"
	"github.com/behzade/storefront/internal/httprpc"
	"github.com/behzade/storefront/internal/httprpc/middleware"
)

// newRouter mounts the API on a router with the standard middleware stack.
func newRouter(cfg *config.Config, src catalog.Source, logger *zap.Logger) *httprpc.Router {
	router := httprpc.New()

	router.Use(middleware.Recover(logger), httprpc.Priority(100))
	router.Use(middleware.RequestID(""), httprpc.Priority(90))
	router.Use(middleware.Logging(logger), httprpc.Priority(70))
	router.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAgeSeconds:    cfg.CORS.MaxAgeSeconds,
	}), httprpc.Priority(60))

	catalogModule := catalog.New(src, catalog.NewEngine(cfg.Catalog.LocaleTag()), logger)
	checkoutModule := checkout.New(catalogModule)

	apiGroup := router.Group(cfg.API.Prefix)
	if cfg.API.RateLimit.RPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.API.RateLimit.RPS, cfg.API.RateLimit.Burst)
		apiGroup.Use(limiter.Middleware(), httprpc.Priority(50))
	}
	apiGroup.Use(middleware.RequestSizeLimit(cfg.API.MaxBodyBytes))
	apiGroup.Use(middleware.Timeout(cfg.API.RequestTimeout))

	httprpcadapter.NewCatalogHandlers(catalogModule).Register(apiGroup)
	httprpcadapter.NewCheckoutHandlers(checkoutModule).Register(apiGroup)

	known := make([]string, 0, len(router.Describe())+1)
	for _, d := range router.Describe() {
		known = append(known, d.Path)
	}

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = promhttp.Handler()
		known = append(known, cfg.Metrics.Path)
	}
	router.Use(middleware.Metrics(known...), httprpc.Priority(80))

	apiPrefix := cfg.API.Prefix
	router.SetFallback(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case metricsHandler != nil && r.URL.Path == cfg.Metrics.Path:
			metricsHandler.ServeHTTP(w, r)
		case r.URL.Path == apiPrefix || strings.HasPrefix(r.URL.Path, apiPrefix+"/"):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(httprpc.ErrorBody{Error: "no such endpoint: " + r.URL.Path})
		default:
			http.NotFound(w, r)
		}
	}))

	return router
}
