package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/behzade/storefront/internal/adapter/source"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Export and load catalog documents",
	}
	cmd.AddCommand(newCatalogExportCmd(a), newCatalogLoadCmd(a))
	return cmd
}

func newCatalogExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the configured source's catalog as a JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, closeSource, err := openSource(a.cfg.Catalog)
			if err != nil {
				return err
			}
			defer func() { _ = closeSource() }()

			products, err := src.Products(cmd.Context())
			if err != nil {
				return fmt.Errorf("read %s source: %w", src.Name(), err)
			}
			data, err := source.EncodeCatalog(products)
			if err != nil {
				return err
			}
			data = append(data, '\n')

			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			a.logger.Info("catalog exported", zap.String("path", out), zap.Int("products", len(products)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newCatalogLoadCmd(a *app) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load a catalog document into the sql or redis source",
		Long: `Validates a JSON or YAML catalog document and writes it to the database or
redis key configured under catalog.sql / catalog.redis. The products table is created
when missing and its contents are replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if from == "" {
				return errors.New("--from is required")
			}
			data, err := os.ReadFile(from)
			if err != nil {
				return fmt.Errorf("read %s: %w", from, err)
			}
			products, err := source.DecodeCatalog(data, source.FormatForPath(from))
			if err != nil {
				return fmt.Errorf("%s: %w", from, err)
			}

			ctx := cmd.Context()
			switch to {
			case "sql":
				db, err := openDB(a.cfg.Catalog.SQL)
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()
				if err := source.CreateSchema(ctx, db); err != nil {
					return err
				}
				if err := source.ReplaceProducts(ctx, db, products); err != nil {
					return err
				}
			case "redis":
				client := newRedisClient(a.cfg.Catalog.Redis)
				defer func() { _ = client.Close() }()
				if err := source.NewRedis(client, a.cfg.Catalog.Redis.Key).Publish(ctx, products); err != nil {
					return err
				}
			default:
				return fmt.Errorf("--to must be sql or redis, got %q", to)
			}

			a.logger.Info("catalog loaded", zap.String("from", from), zap.String("to", to), zap.Int("products", len(products)))
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d products into %s\n", len(products), to)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "catalog document (.json, .yaml or .yml)")
	cmd.Flags().StringVar(&to, "to", "sql", "destination: sql or redis")
	return cmd
}
