// Package lock provides a Redis-backed per-order lock closing the
// search-then-create race between overlapping sync runs.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainsync "github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/domain/sync"
)

const defaultKeyPrefix = "woosync:order:"

// RedisLocker implements OrderLocker with SET NX and a TTL. The TTL
// bounds lock leakage when a run dies without releasing; it must exceed
// the worst-case duration of one order's import.
type RedisLocker struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// Config holds Redis connection settings for the locker.
type Config struct {
	Addr     string
	Password string
	DB       int
	// TTL is the lock lifetime. Defaults to 2 minutes.
	TTL time.Duration
}

// NewRedisLocker connects to Redis and verifies the connection.
func NewRedisLocker(cfg Config) (*RedisLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("lock: failed to connect to Redis: %w", err)
	}

	return NewRedisLockerWithClient(client, "", cfg.TTL), nil
}

// NewRedisLockerWithClient wraps an existing Redis client. Useful for
// sharing a client across components.
func NewRedisLockerWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisLocker {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &RedisLocker{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Acquire takes the lock for key. Returns false without error when
// another run already holds it.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.keyPrefix+key, "1", l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("lock: failed to acquire %s: %w", key, err)
	}
	return ok, nil
}

// Release drops the lock for key.
func (l *RedisLocker) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("lock: failed to release %s: %w", key, err)
	}
	return nil
}

// Ensure RedisLocker implements the domain port
var _ domainsync.OrderLocker = (*RedisLocker)(nil)
