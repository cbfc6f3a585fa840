package driven

import (
	"context"
	"time"
)

// TransientCache is the host's expiring key/value cache.
// Values are serialised by the implementation; Get decodes into target,
// which must be a pointer.
type TransientCache interface {
	// Get loads the value stored under key into target.
	// Returns false if the key is absent or expired.
	Get(ctx context.Context, key string, target any) (bool, error)

	// Set stores value under key for ttl. A zero ttl never expires.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every key.
	Clear(ctx context.Context) error
}
