// Package cache stores short-lived JSON values, backed by Redis or by nothing at all.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrMiss is returned by Get when the key is absent
var ErrMiss = errors.New("cache: miss")

// Cache defines the operations the services need
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Config holds the redis connection settings
type Config struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
	KeyPrefix   string
}

type redisCache struct {
	rdb    *goredis.Client
	prefix string
	logger zerolog.Logger
}

// NewRedisCache connects to redis and pings it before returning
func NewRedisCache(cfg Config, logger zerolog.Logger) (Cache, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "skillswap:"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisCache{
		rdb:    rdb,
		prefix: cfg.KeyPrefix,
		logger: logger.With().Str("component", "cache").Logger(),
	}, nil
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) error {
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.prefix+key, raw, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	return c.rdb.Del(ctx, full...).Err()
}

func (c *redisCache) Close() error {
	return c.rdb.Close()
}

type noopCache struct{}

// NewNoop returns a cache that never stores anything
func NewNoop() Cache { return noopCache{} }

func (noopCache) Get(context.Context, string, any) error { return ErrMiss }
func (noopCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (noopCache) Delete(context.Context, ...string) error { return nil }
func (noopCache) Close() error { return nil }
