package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/junaidrashid-git/trendy-shop/models"
	"github.com/redis/go-redis/v9"
)

const (
	productsAllKey    = "products:all"
	productKeyPrefix  = "products:"
	DefaultProductTTL = 5 * time.Minute
)

// Cached is a read-through redis cache in front of the catalog reads of another
// Store. Everything else passes straight through to the wrapped Store.
type Cached struct {
	Store
	redis *redis.Client
	ttl   time.Duration
}

func NewCached(next Store, rdb *redis.Client, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = DefaultProductTTL
	}
	return &Cached{Store: next, redis: rdb, ttl: ttl}
}

func (c *Cached) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if c.get(ctx, productsAllKey, &products) {
		return products, nil
	}
	products, err := c.Store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, productsAllKey, products)
	return products, nil
}

func (c *Cached) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	key := productKeyPrefix + id
	var product models.Product
	if c.get(ctx, key, &product) {
		return &product, nil
	}
	p, err := c.Store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, p)
	return p, nil
}

func (c *Cached) InsertProducts(ctx context.Context, products []models.Product) error {
	if err := c.Store.InsertProducts(ctx, products); err != nil {
		return err
	}
	keys := []string{productsAllKey}
	for _, p := range products {
		keys = append(keys, productKeyPrefix+p.ID)
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache: failed to invalidate products: %v", err)
	}
	return nil
}

// get reports a hit. Redis failures are logged and treated as a miss.
func (c *Cached) get(ctx context.Context, key string, dst interface{}) bool {
	raw, err := c.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		log.Printf("cache: get %s: %v", key, err)
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Printf("cache: corrupt entry %s: %v", key, err)
		return false
	}
	return true
}

func (c *Cached) set(ctx context.Context, key string, v interface{}) {
	js, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, js, c.ttl).Err(); err != nil {
		log.Printf("cache: set %s: %v", key, err)
	}
}
