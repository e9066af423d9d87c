// Package cache provides the Redis-backed cache-aside layer used for public
// catalog reads, and a no-op implementation for deployments without Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// Cache stores JSON-encoded values by key.
type Cache interface {
	// Get decodes the value under key into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set stores value under key. A zero ttl uses the cache default.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Connect creates a Redis client and verifies the connection with a ping.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	slog.Info("redis connected", "addr", addr)
	return client, nil
}

// Redis is a Cache on a go-redis client. All keys are namespaced by prefix.
type Redis struct {
	client  *redis.Client
	prefix  string
	ttl     time.Duration
	lookups *prometheus.CounterVec
}

// NewRedis wraps client. lookups, if non-nil, counts hits and misses under
// the "result" label.
func NewRedis(client *redis.Client, prefix string, ttl time.Duration, lookups *prometheus.CounterVec) *Redis {
	return &Redis{client: client, prefix: prefix, ttl: ttl, lookups: lookups}
}

func (c *Redis) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.observe("miss")
			return false, nil
		}
		c.observe("error")
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.observe("error")
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	c.observe("hit")
	return true, nil
}

func (c *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *Redis) observe(result string) {
	if c.lookups != nil {
		c.lookups.WithLabelValues(result).Inc()
	}
}

// Noop never stores anything; every Get is a miss.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error)            { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error     { return nil }
func (Noop) Delete(context.Context, ...string) error                   { return nil }
