package driving

import (
	"context"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// FieldService reads single fields of any entity.
type FieldService interface {
	// Get returns a field value, looking at the entity's own attributes
	// first and its metadata second. Returns (nil, false) when neither
	// holds a value.
	Get(ctx context.Context, entity domain.EntityType, id int64, field string) (any, bool)

	// Exists reports whether the entity row exists.
	Exists(ctx context.Context, entity domain.EntityType, id int64) bool
}
