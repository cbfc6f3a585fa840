package driven

import (
	"context"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// NoteStore is the host's note data access.
type NoteStore interface {
	// Get retrieves a note by ID.
	// Returns domain.ErrNotFound if the note does not exist.
	Get(ctx context.Context, id int64) (*domain.Note, error)

	// Query returns notes matching the argument mapping.
	// Recognised keys: number, offset, orderby, order, object_id, object_type, search.
	Query(ctx context.Context, args domain.QueryArgs) ([]domain.Note, error)
}

// LogStore is the host's log data access.
type LogStore interface {
	// Get retrieves a log entry by ID.
	// Returns domain.ErrNotFound if the entry does not exist.
	Get(ctx context.Context, id int64) (*domain.Log, error)

	// Query returns log entries matching the argument mapping.
	// Recognised keys: number, offset, orderby, order, object_id, object_type, type, search.
	Query(ctx context.Context, args domain.QueryArgs) ([]domain.Log, error)
}
