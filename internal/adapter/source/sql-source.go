package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/behzade/storefront/internal/domain"
)

const selectProducts = `SELECT id, name, price_in_cents, image_url FROM products ORDER BY id`

// SQL reads the catalog from a products table. It works with any database/sql driver;
// the binary registers "sqlite" and "postgres".
type SQL struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

func (s *SQL) Name() string { return "sql" }

func (s *SQL) Products(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, selectProducts)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	products := []domain.Product{}
	for rows.Next() {
		var (
			p        domain.Product
			imageURL sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceInCents, &imageURL); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.ImageURL = imageURL.String
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	if err := domain.ValidateCatalog(products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateSchema creates the products table if it does not exist. Only used to bootstrap
// development databases; the service itself never writes.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `CREATE TABLE IF NOT EXISTS products (
	id BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	price_in_cents BIGINT NOT NULL CHECK (price_in_cents >= 0),
	image_url TEXT
)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create products table: %w", err)
	}
	return nil
}

// ReplaceProducts replaces the products table contents with products in one transaction.
// Bootstrap only, like CreateSchema.
func ReplaceProducts(ctx context.Context, db *sql.DB, products []domain.Product) (err error) {
	if err := domain.ValidateCatalog(products); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}
	for _, p := range products {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO products (id, name, price_in_cents, image_url) VALUES ($1, $2, $3, $4)`,
			p.ID, p.Name, p.PriceInCents, p.ImageURL,
		); err != nil {
			return fmt.Errorf("insert product %d: %w", p.ID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
