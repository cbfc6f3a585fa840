package cache

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
)

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Options selects and configures a cache backend.
type Options struct {
	Backend    string
	RedisAddr  string
	RedisDB    int
	Prefix     string
	DefaultTTL time.Duration
}

// New creates the configured cache. The returned closer releases the
// backend's resources. An empty backend selects the in-process cache.
func New(ctx context.Context, opts Options) (driven.TransientCache, io.Closer, error) {
	switch opts.Backend {
	case "", BackendMemory:
		m := NewMemory(opts.DefaultTTL)
		return m, m, nil
	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, nil, fmt.Errorf("redis cache without an address: %w", domain.ErrInvalidInput)
		}
		r, err := NewRedis(ctx, &redis.Options{Addr: opts.RedisAddr, DB: opts.RedisDB}, opts.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return r, r, nil
	case BackendNone:
		return Noop{}, Noop{}, nil
	default:
		return nil, nil, fmt.Errorf("cache backend %q: %w", opts.Backend, domain.ErrInvalidInput)
	}
}
