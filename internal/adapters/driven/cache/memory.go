package cache

import (
	"context"
	"errors"
	"time"

	"github.com/TwiN/gocache/v2"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
	"github.com/custodia-labs/eddkit/internal/logger"
)

var _ driven.TransientCache = (*Memory)(nil)

// errEntryType is returned when a stored entry was not written by Set.
var errEntryType = errors.New("invalid cache entry type")

// Memory is an in-process transient cache.
type Memory struct {
	c *gocache.Cache
}

// NewMemory creates an in-process cache. Entries set without a TTL expire
// after defaultTTL; a zero defaultTTL keeps them until deleted.
func NewMemory(defaultTTL time.Duration) *Memory {
	if defaultTTL <= 0 {
		defaultTTL = gocache.NoExpiration
	}
	c := gocache.NewCache().WithDefaultTTL(defaultTTL)
	if err := c.StartJanitor(); err != nil {
		logger.Warn("cache janitor not started, expired entries are dropped on read: %v", err)
	}
	return &Memory{c: c}
}

// Get implements driven.TransientCache.
func (m *Memory) Get(_ context.Context, key string, target any) (bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return false, nil
	}
	data, ok := v.([]byte)
	if !ok {
		return false, errEntryType
	}
	if err := msgpack.Unmarshal(data, target); err != nil {
		return false, err
	}
	return true, nil
}

// Set implements driven.TransientCache.
func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	m.c.SetWithTTL(key, data, ttl)
	return nil
}

// Delete implements driven.TransientCache.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

// Clear implements driven.TransientCache.
func (m *Memory) Clear(_ context.Context) error {
	m.c.Clear()
	return nil
}

// Close stops the background janitor.
func (m *Memory) Close() error {
	m.c.StopJanitor()
	return nil
}
