package httprpc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const (
	defaultReadHeaderTimeout = 5 * time.Second
	defaultReadTimeout       = 30 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 60 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

// ServerOption configures server options.
type ServerOption interface {
	apply(*http.Server)
}

// ReadHeaderTimeout sets the ReadHeaderTimeout for the server.
func ReadHeaderTimeout(d time.Duration) ServerOption {
	return serverOptionFunc(func(s *http.Server) { s.ReadHeaderTimeout = d })
}

// ReadTimeout sets the ReadTimeout for the server.
func ReadTimeout(d time.Duration) ServerOption {
	return serverOptionFunc(func(s *http.Server) { s.ReadTimeout = d })
}

// WriteTimeout sets the WriteTimeout for the server.
func WriteTimeout(d time.Duration) ServerOption {
	return serverOptionFunc(func(s *http.Server) { s.WriteTimeout = d })
}

// IdleTimeout sets the IdleTimeout for the server.
func IdleTimeout(d time.Duration) ServerOption {
	return serverOptionFunc(func(s *http.Server) { s.IdleTimeout = d })
}

// MaxHeaderBytes sets the MaxHeaderBytes for the server.
func MaxHeaderBytes(n int) ServerOption {
	return serverOptionFunc(func(s *http.Server) { s.MaxHeaderBytes = n })
}

type serverOptionFunc func(*http.Server)

func (f serverOptionFunc) apply(s *http.Server) { f(s) }

// Server returns a configured http.Server using Router.Handler().
func (r *Router) Server(addr string, opts ...ServerOption) *http.Server {
	s := &http.Server{
		Addr:              addr,
		Handler:           r.HandlerMust(),
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(s)
		}
	}
	return s
}

// RunServerOption configures RunServer behavior.
type RunServerOption interface {
	apply(*runServerConfig)
}

type runServerConfig struct {
	gracefulShutdown bool
	shutdownTimeout  time.Duration
	logger           *zap.Logger
	serverOpts       []ServerOption
}

func (c *runServerConfig) withDefaults() {
	if c.logger == nil {
		c.logger = zap.L()
	}
	if c.shutdownTimeout <= 0 {
		c.shutdownTimeout = defaultShutdownTimeout
	}
}

type runServerOptionFunc func(*runServerConfig)

func (f runServerOptionFunc) apply(c *runServerConfig) { f(c) }

// WithGracefulShutdown enables graceful shutdown on SIGINT/SIGTERM signals and sets
// how long in-flight requests get to finish. Graceful shutdown is on by default.
func WithGracefulShutdown(timeout time.Duration) RunServerOption {
	return runServerOptionFunc(func(c *runServerConfig) {
		c.gracefulShutdown = true
		c.shutdownTimeout = timeout
	})
}

// WithoutGracefulShutdown makes RunServer return only when ListenAndServe does.
func WithoutGracefulShutdown() RunServerOption {
	return runServerOptionFunc(func(c *runServerConfig) {
		c.gracefulShutdown = false
	})
}

// WithLogger sets the logger for server lifecycle events. Defaults to zap.L().
func WithLogger(logger *zap.Logger) RunServerOption {
	return runServerOptionFunc(func(c *runServerConfig) {
		c.logger = logger
	})
}

// WithServerOptions applies ServerOptions to the server RunServer builds.
func WithServerOptions(opts ...ServerOption) RunServerOption {
	return runServerOptionFunc(func(c *runServerConfig) {
		c.serverOpts = append(c.serverOpts, opts...)
	})
}

// RunServer runs the HTTP server and blocks until it is shut down. By default it
// shuts down gracefully on SIGINT/SIGTERM with a 30-second timeout.
//
//	r.RunServer(":8080")
//	r.RunServer(":8080", httprpc.WithGracefulShutdown(60*time.Second), httprpc.WithLogger(logger))
func (r *Router) RunServer(addr string, opts ...RunServerOption) error {
	cfg := runServerConfig{gracefulShutdown: true}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}
	cfg.withDefaults()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	return r.runServer(addr, cfg, quit)
}

func (r *Router) runServer(addr string, cfg runServerConfig, signals <-chan os.Signal) error {
	server := r.Server(addr, cfg.serverOpts...)

	if !cfg.gracefulShutdown {
		cfg.logger.Info("starting http server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	}

	serverErrors := make(chan error, 1)
	go func() {
		cfg.logger.Info("starting http server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-signals:
		cfg.logger.Info("received shutdown signal", zap.Stringer("signal", sig))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer cancel()

	cfg.logger.Info("shutting down server gracefully", zap.Duration("timeout", cfg.shutdownTimeout))
	if err := server.Shutdown(ctx); err != nil {
		cfg.logger.Error("server shutdown failed", zap.Error(err))
		return fmt.Errorf("server shutdown: %w", err)
	}

	cfg.logger.Info("server stopped")
	return nil
}
