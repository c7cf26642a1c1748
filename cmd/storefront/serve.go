package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/behzade/storefront/internal/httprpc"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				a.cfg.Server.Addr = addr
			}

			src, closeSource, err := openSource(a.cfg.Catalog)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeSource(); err != nil {
					a.logger.Warn("closing product source failed", zap.Error(err))
				}
			}()

			a.logger.Info("catalog source ready",
				zap.String("source", src.Name()),
				zap.String("locale", a.cfg.Catalog.Locale),
			)

			s := a.cfg.Server
			return newRouter(a.cfg, src, a.logger).RunServer(s.Addr,
				httprpc.WithGracefulShutdown(s.ShutdownTimeout),
				httprpc.WithLogger(a.logger),
				httprpc.WithServerOptions(
					httprpc.ReadHeaderTimeout(s.ReadHeaderTimeout),
					httprpc.ReadTimeout(s.ReadTimeout),
					httprpc.WriteTimeout(s.WriteTimeout),
					httprpc.IdleTimeout(s.IdleTimeout),
				),
			)
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	return cmd
}
