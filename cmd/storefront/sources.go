package main

import (
	"database/sql"
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"github.com/behzade/storefront/internal/adapter/source"
	"github.com/behzade/storefront/internal/config"
	"github.com/behzade/storefront/internal/core/catalog"
)

// openSource builds the configured product source. The returned close func releases
// the connection pools the sql and redis sources hold.
func openSource(cfg config.CatalogConfig) (catalog.Source, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Source {
	case config.SourceSeed:
		return source.NewSeed(), noop, nil
	case config.SourceFile:
		return source.NewFile(cfg.File.Path), noop, nil
	case config.SourceHTTP:
		return source.NewHTTP(cfg.HTTP.URL, &http.Client{Timeout: cfg.HTTP.Timeout}), noop, nil
	case config.SourceSQL:
		db, err := openDB(cfg.SQL)
		if err != nil {
			return nil, nil, err
		}
		return source.NewSQL(db), db.Close, nil
	case config.SourceRedis:
		client := newRedisClient(cfg.Redis)
		return source.NewRedis(client, cfg.Redis.Key), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}

func openDB(cfg config.SQLSourceConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}
	if cfg.Driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

func newRedisClient(cfg config.RedisSourceConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
