package services

import (
	"context"

	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
	"github.com/custodia-labs/eddkit/internal/core/ports/driving"
	"github.com/custodia-labs/eddkit/internal/logger"
)

// Ensure the note and log helpers implement the interfaces.
var (
	_ driving.NoteService = (*Notes)(nil)
	_ driving.LogService  = (*Logs)(nil)
)

// objectArgs selects every record attached to an object, oldest first.
func objectArgs(objectType string, objectID int64) domain.QueryArgs {
	return domain.QueryArgs{
		domain.ArgObjectType: {objectType},
		domain.ArgObjectID:   {formatID(objectID)},
		domain.ArgOrderBy:    {"date_created"},
		domain.ArgOrder:      {string(domain.SortAsc)},
	}
}

// Notes provides note helpers.
type Notes struct {
	store  driven.NoteStore
	fields *FieldAccessor
}

// NewNotes creates the note helpers.
func NewNotes(store driven.NoteStore, fields *FieldAccessor) *Notes {
	return &Notes{store: store, fields: fields}
}

// Exists reports whether the note exists.
func (n *Notes) Exists(ctx context.Context, id int64) bool {
	return n.fields.Exists(ctx, domain.EntityNote, id)
}

// Get returns the note.
func (n *Notes) Get(ctx context.Context, id int64) (*domain.Note, bool) {
	return lookup(ctx, "note", id, n.store.Get)
}

// Field returns a note field or metadata value.
func (n *Notes) Field(ctx context.Context, id int64, field string) (any, bool) {
	return n.fields.Get(ctx, domain.EntityNote, id, field)
}

// ForObject returns the notes attached to an object, oldest first.
func (n *Notes) ForObject(ctx context.Context, objectType string, objectID int64) []domain.Note {
	if objectType == "" || objectID <= 0 {
		return []domain.Note{}
	}
	notes, err := n.store.Query(ctx, objectArgs(objectType, objectID))
	if err != nil {
		logger.Warn("reading notes of %s %d: %v", objectType, objectID, err)
		return []domain.Note{}
	}
	if notes == nil {
		return []domain.Note{}
	}
	return notes
}

// Logs provides log entry helpers.
type Logs struct {
	store  driven.LogStore
	fields *FieldAccessor
}

// NewLogs creates the log helpers.
func NewLogs(store driven.LogStore, fields *FieldAccessor) *Logs {
	return &Logs{store: store, fields: fields}
}

// Exists reports whether the log entry exists.
func (l *Logs) Exists(ctx context.Context, id int64) bool {
	return l.fields.Exists(ctx, domain.EntityLog, id)
}

// Get returns the log entry.
func (l *Logs) Get(ctx context.Context, id int64) (*domain.Log, bool) {
	return lookup(ctx, "log", id, l.store.Get)
}

// Field returns a log field or metadata value.
func (l *Logs) Field(ctx context.Context, id int64, field string) (any, bool) {
	return l.fields.Get(ctx, domain.EntityLog, id, field)
}

// ForObject returns the log entries attached to an object, oldest first.
func (l *Logs) ForObject(ctx context.Context, objectType string, objectID int64) []domain.Log {
	if objectType == "" || objectID <= 0 {
		return []domain.Log{}
	}
	logs, err := l.store.Query(ctx, objectArgs(objectType, objectID))
	if err != nil {
		logger.Warn("reading logs of %s %d: %v", objectType, objectID, err)
		return []domain.Log{}
	}
	if logs == nil {
		return []domain.Log{}
	}
	return logs
}
