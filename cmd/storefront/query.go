package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/behzade/storefront/internal/adapter/source"
	"github.com/behzade/storefront/internal/config"
	"github.com/behzade/storefront/internal/core/catalog"
	"github.com/behzade/storefront/internal/domain"
)

type queryOptions struct {
	term    string
	price   string
	sort    string
	page    int
	perPage int
	output  string
	watch   bool
}

func newQueryCmd(a *app) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Search the catalog",
		Long: `Runs a catalog query against the configured source and prints the result.

Price buckets: all, under-100, 100-500, 500-1000, 1000-3000, over-3000.
Sort keys: relevance, price-low, price-high, name.

With --watch (file source only) the query re-runs whenever the catalog file changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.output != "table" && opts.output != "json" {
				return fmt.Errorf("--output must be table or json, got %q", opts.output)
			}

			src, closeSource, err := openSource(a.cfg.Catalog)
			if err != nil {
				return err
			}
			defer func() { _ = closeSource() }()

			module := catalog.New(src, catalog.NewEngine(a.cfg.Catalog.LocaleTag()), a.logger)
			in := domain.SearchInput{
				Query: domain.Query{
					Term:   opts.term,
					Bucket: domain.ParsePriceBucket(opts.price),
					Sort:   domain.ParseSortKey(opts.sort),
				},
				Page:    opts.page,
				PerPage: opts.perPage,
			}

			out := cmd.OutOrStdout()
			if !opts.watch {
				return printResult(out, module.Search(cmd.Context(), in), opts.output)
			}
			if a.cfg.Catalog.Source != config.SourceFile {
				return errors.New("--watch needs the file catalog source")
			}
			return watchQuery(cmd.Context(), out, module, in, a.cfg.Catalog.File.Path, opts.output, a.logger)
		},
	}

	cmd.Flags().StringVarP(&opts.term, "q", "q", "", "search term")
	cmd.Flags().StringVar(&opts.price, "price", "all", "price bucket")
	cmd.Flags().StringVar(&opts.sort, "sort", "relevance", "sort key")
	cmd.Flags().IntVar(&opts.page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.perPage, "per-page", 0, "results per page (0 for all)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "output format: table or json")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-run the query when the catalog file changes")
	return cmd
}

func watchQuery(ctx context.Context, out io.Writer, module *catalog.Module, in domain.SearchInput, path, format string, logger *zap.Logger) error {
	changes, err := source.NewWatcher(path, 0, logger).Watch(ctx)
	if err != nil {
		return err
	}
	if err := printResult(out, module.Search(ctx, in), format); err != nil {
		return err
	}
	for range changes {
		logger.Debug("catalog file changed, re-running query", zap.String("path", path))
		if err := printResult(out, module.Search(ctx, in), format); err != nil {
			return err
		}
	}
	return nil
}

func printResult(out io.Writer, res domain.SearchResult, format string) error {
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(queryJSON(res))
	}

	if res.Notice != domain.NoticeNone {
		_, err := fmt.Fprintln(out, noticeText(res))
		return err
	}

	rows := make([][]string, 0, len(res.Items))
	for _, p := range res.Items {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.SKU(),
			p.Name,
			domain.FormatPrice(p.PriceInCents),
		})
	}
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("ID", "SKU", "NAME", "PRICE").
		Rows(rows...)

	_, err := fmt.Fprintf(out, "%s\n%d of %d products (price: %s, sort: %s)\n",
		t.Render(), len(res.Items), res.Total, res.Query.Bucket, res.Query.Sort)
	return err
}

func noticeText(res domain.SearchResult) string {
	switch res.Notice {
	case domain.NoticeCatalogEmpty:
		return "There are no products currently available."
	case domain.NoticeNoResults:
		return fmt.Sprintf("No products match %q.", res.Query.Term)
	default:
		return "No products match the current filters."
	}
}

type queryResultJSON struct {
	Items  []productJSON `json:"items"`
	Total  int           `json:"total"`
	Notice domain.Notice `json:"notice"`
}

type productJSON struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	PriceInCents int64  `json:"price_in_cents"`
	PriceDisplay string `json:"price_display"`
}

func queryJSON(res domain.SearchResult) queryResultJSON {
	items := make([]productJSON, 0, len(res.Items))
	for _, p := range res.Items {
		items = append(items, productJSON{
			ID:           p.ID,
			Name:         p.Name,
			PriceInCents: p.PriceInCents,
			PriceDisplay: domain.FormatPrice(p.PriceInCents),
		})
	}
	return queryResultJSON{Items: items, Total: res.Total, Notice: res.Notice}
}
