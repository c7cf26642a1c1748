package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/behzade/storefront/internal/domain"
)

// DefaultRedisKey holds the JSON catalog document.
const DefaultRedisKey = "storefront:catalog"

// Redis reads a JSON catalog document stored at a single key.
type Redis struct {
	client redis.UniversalClient
	key    string
}

func NewRedis(client redis.UniversalClient, key string) *Redis {
	if key == "" {
		key = DefaultRedisKey
	}
	return &Redis{client: client, key: key}
}

func (r *Redis) Name() string { return "redis" }

func (r *Redis) Products(ctx context.Context) ([]domain.Product, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("catalog key %q does not exist", r.key)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog key %q: %w", r.key, err)
	}
	products, err := DecodeCatalog(data, FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("catalog key %q: %w", r.key, err)
	}
	return products, nil
}

// Publish stores products as the catalog document at the source's key.
func (r *Redis) Publish(ctx context.Context, products []domain.Product) error {
	if err := domain.ValidateCatalog(products); err != nil {
		return err
	}
	data, err := EncodeCatalog(products)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("write catalog key %q: %w", r.key, err)
	}
	return nil
}
