package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
)

var errHostDown = errors.New("database is locked")

// recordingStore records query arguments and returns a canned result.
// It satisfies CustomerStore, AdjustmentStore and DownloadStore.
type recordingStore[T any] struct {
	mu     sync.Mutex
	calls  []domain.QueryArgs
	result []T
	err    error
}

func (s *recordingStore[T]) Get(_ context.Context, _ int64) (*T, error) {
	if s.err != nil {
		return nil, s.err
	}
	return nil, domain.ErrNotFound
}

func (s *recordingStore[T]) Query(_ context.Context, args domain.QueryArgs) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, args)
	return s.result, s.err
}

func (s *recordingStore[T]) ByCode(_ context.Context, _ string) (*T, error) {
	if s.err != nil {
		return nil, s.err
	}
	return nil, domain.ErrNotFound
}

func (s *recordingStore[T]) last() domain.QueryArgs {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return nil
	}
	return s.calls[len(s.calls)-1]
}

func (s *recordingStore[T]) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

var (
	_ driven.CustomerStore   = (*recordingStore[domain.Customer])(nil)
	_ driven.AdjustmentStore = (*recordingStore[domain.Adjustment])(nil)
	_ driven.DownloadStore   = (*recordingStore[domain.Download])(nil)
)

// failingHost fails every host call.
type failingHost struct{}

func (failingHost) Record(context.Context, domain.EntityType, int64) (domain.Record, error) {
	return nil, errHostDown
}

func (failingHost) GetMeta(context.Context, domain.EntityType, int64, string) (string, error) {
	return "", errHostDown
}

func (failingHost) RowExists(context.Context, string, string, int64) (bool, error) {
	return false, errHostDown
}

func (failingHost) IsActive(context.Context, string) (bool, error) {
	return false, errHostDown
}

func (failingHost) Contents(context.Context) ([]domain.CartItem, error) {
	return nil, errHostDown
}

func (failingHost) Import(context.Context, *domain.Dataset) error {
	return errHostDown
}

var (
	_ driven.RecordStore     = failingHost{}
	_ driven.MetaStore       = failingHost{}
	_ driven.RowStore        = failingHost{}
	_ driven.ExtensionProbe  = failingHost{}
	_ driven.CartStore       = failingHost{}
	_ driven.DatasetImporter = failingHost{}
)

// countingOrders wraps an OrderStore and counts Distinct calls.
type countingOrders struct {
	driven.OrderStore
	mu       sync.Mutex
	distinct int
}

func (c *countingOrders) Distinct(ctx context.Context, column string) ([]string, error) {
	c.mu.Lock()
	c.distinct++
	c.mu.Unlock()
	return c.OrderStore.Distinct(ctx, column)
}

func (c *countingOrders) distinctCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.distinct
}

// mapCache is a TransientCache holding string slices.
type mapCache struct {
	mu     sync.Mutex
	values map[string][]string
	ttls   map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{
		values: make(map[string][]string),
		ttls:   make(map[string]time.Duration),
	}
}

func (c *mapCache) Get(_ context.Context, key string, target any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	ptr, ok := target.(*[]string)
	if !ok {
		return false, domain.ErrInvalidInput
	}
	*ptr = append([]string(nil), v...)
	return true, nil
}

func (c *mapCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := value.([]string)
	if !ok {
		return domain.ErrInvalidInput
	}
	c.values[key] = append([]string(nil), v...)
	c.ttls[key] = ttl
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *mapCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = make(map[string][]string)
	return nil
}

var _ driven.TransientCache = (*mapCache)(nil)
