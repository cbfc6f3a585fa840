package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
)

var _ driven.TransientCache = (*Redis)(nil)

// DefaultPrefix namespaces the keys written to a shared redis.
const DefaultPrefix = "eddkit:"

// Redis is a transient cache stored in redis. Keys are prefixed so Clear
// only removes entries written through this cache.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis connects to redis and checks the connection.
func NewRedis(ctx context.Context, options *redis.Options, prefix string) (*Redis, error) {
	client := redis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", options.Addr, err)
	}
	return NewRedisWithClient(client, prefix), nil
}

// NewRedisWithClient wraps an existing client. An empty prefix uses
// DefaultPrefix.
func NewRedisWithClient(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

// Get implements driven.TransientCache.
func (r *Redis) Get(ctx context.Context, key string, target any) (bool, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s from redis: %w", key, err)
	}
	if err := msgpack.Unmarshal(val, target); err != nil {
		return false, err
	}
	return true, nil
}

// Set implements driven.TransientCache. A zero ttl never expires.
func (r *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, r.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("writing %s to redis: %w", key, err)
	}
	return nil
}

// Delete implements driven.TransientCache.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Unlink(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("deleting %s from redis: %w", key, err)
	}
	return nil
}

// Clear implements driven.TransientCache. Keys are scanned and unlinked in
// batches.
func (r *Redis) Clear(ctx context.Context) error {
	const batchSize = 500
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	keys := make([]string, 0, batchSize)

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= batchSize {
			if err := r.client.Unlink(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("clearing redis: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scanning redis: %w", err)
	}
	if len(keys) > 0 {
		if err := r.client.Unlink(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("clearing redis: %w", err)
		}
	}
	return nil
}

// Close closes the redis client.
func (r *Redis) Close() error {
	return r.client.Close()
}
