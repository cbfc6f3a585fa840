package cache

import (
	"context"
	"time"

	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
)

var _ driven.TransientCache = Noop{}

// Noop performs no caching: Get always misses and writes are dropped.
type Noop struct{}

// Get implements driven.TransientCache and always misses.
func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }

// Set implements driven.TransientCache and does nothing.
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }

// Delete implements driven.TransientCache and does nothing.
func (Noop) Delete(context.Context, string) error { return nil }

// Clear implements driven.TransientCache and does nothing.
func (Noop) Clear(context.Context) error { return nil }

// Close implements io.Closer and does nothing.
func (Noop) Close() error { return nil }
