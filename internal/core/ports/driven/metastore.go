package driven

import (
	"context"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// MetaStore reads the per-entity key/value metadata tables.
type MetaStore interface {
	// GetMeta returns the single value stored under key for the entity.
	// Returns domain.ErrNotFound if no value is stored.
	GetMeta(ctx context.Context, entity domain.EntityType, id int64, key string) (string, error)
}

// RecordStore returns the attribute view of any entity.
type RecordStore interface {
	// Record returns the entity's own attributes keyed by column name.
	// Returns domain.ErrNotFound if the entity does not exist and
	// domain.ErrUnsupportedType for unknown entity types.
	Record(ctx context.Context, entity domain.EntityType, id int64) (domain.Record, error)
}

// RowStore performs single-row existence checks.
type RowStore interface {
	// RowExists reports whether table has a row whose column equals id.
	// Table and column names outside the host schema return
	// domain.ErrInvalidArgument without querying.
	RowExists(ctx context.Context, table, column string, id int64) (bool, error)
}
