// Package cache provides an optional Redis-backed cache for day-grid
// responses, layered in front of a fare source as a decorator.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/tripfinder/internal/fares"
	"github.com/dharmasatrya/tripfinder/internal/models"
)

type GridCache interface {
	Get(ctx context.Context, key string) (fares.DayGrid, bool)
	Set(ctx context.Context, key string, grid fares.DayGrid) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		TTL:  10 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (fares.DayGrid, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return fares.DayGrid{}, false
	}

	var grid fares.DayGrid
	if err := json.Unmarshal(data, &grid); err != nil {
		return fares.DayGrid{}, false
	}
	return grid, true
}

func (c *RedisCache) Set(ctx context.Context, key string, grid fares.DayGrid) error {
	data, err := json.Marshal(grid)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, key string) (fares.DayGrid, bool) {
	return fares.DayGrid{}, false
}

func (c *NoOpCache) Set(ctx context.Context, key string, grid fares.DayGrid) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

// CachedSource wraps a fare source and caches day-grid lookups. The coarse
// cheapest-fare queries pass through untouched; their windows vary per
// search and rarely repeat.
type CachedSource struct {
	next     fares.Source
	cache    GridCache
	currency string
}

func NewCachedSource(next fares.Source, c GridCache, currency string) *CachedSource {
	return &CachedSource{
		next:     next,
		cache:    c,
		currency: currency,
	}
}

func (s *CachedSource) CheapestFares(ctx context.Context, q fares.Query) ([]models.Leg, error) {
	return s.next.CheapestFares(ctx, q)
}

func (s *CachedSource) CheapestPerDay(ctx context.Context, homeIATA, destIATA string, month time.Time) (fares.DayGrid, error) {
	key := gridKey(s.currency, homeIATA, destIATA, month)
	if grid, found := s.cache.Get(ctx, key); found {
		return grid, nil
	}

	grid, err := s.next.CheapestPerDay(ctx, homeIATA, destIATA, month)
	if err != nil {
		return fares.DayGrid{}, err
	}

	_ = s.cache.Set(ctx, key, grid)
	return grid, nil
}

func gridKey(currency, homeIATA, destIATA string, month time.Time) string {
	raw := fmt.Sprintf("%s:%s:%s:%s", currency, homeIATA, destIATA, month.Format("2006-01"))
	hash := sha256.Sum256([]byte(raw))
	return "grid:" + hex.EncodeToString(hash[:])
}
