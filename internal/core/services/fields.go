package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
	"github.com/custodia-labs/eddkit/internal/core/ports/driving"
	"github.com/custodia-labs/eddkit/internal/logger"
)

// Ensure FieldAccessor implements the interface.
var _ driving.FieldService = (*FieldAccessor)(nil)

// FieldAccessor reads entity fields with a two-tier lookup: the entity's own
// attributes, then its metadata table.
type FieldAccessor struct {
	records driven.RecordStore
	meta    driven.MetaStore
	rows    driven.RowStore
}

// NewFieldAccessor creates a field accessor. Any store may be nil, in which
// case its tier is skipped.
func NewFieldAccessor(records driven.RecordStore, meta driven.MetaStore, rows driven.RowStore) *FieldAccessor {
	return &FieldAccessor{
		records: records,
		meta:    meta,
		rows:    rows,
	}
}

// Get returns a field value. An attribute that is present and non-nil wins
// even when it is falsy; a metadata value is only used when non-empty.
func (f *FieldAccessor) Get(ctx context.Context, entity domain.EntityType, id int64, field string) (any, bool) {
	if !entity.IsValid() || field == "" {
		logger.Debug("Field lookup rejected: entity=%q field=%q", entity, field)
		return nil, false
	}

	if f.records != nil {
		rec, err := f.records.Record(ctx, entity, id)
		switch {
		case err == nil:
			if v, ok := rec.Lookup(field); ok {
				return v, true
			}
		case !errors.Is(err, domain.ErrNotFound):
			logger.Warn("reading %s %d: %v", entity, id, err)
		}
	}

	if f.meta != nil {
		v, err := f.meta.GetMeta(ctx, entity, id, field)
		switch {
		case err == nil:
			if !emptyMeta(v) {
				return v, true
			}
		case !errors.Is(err, domain.ErrNotFound):
			logger.Warn("reading %s %d meta %q: %v", entity, id, field, err)
		}
	}

	return nil, false
}

// Exists reports whether the entity row exists.
func (f *FieldAccessor) Exists(ctx context.Context, entity domain.EntityType, id int64) bool {
	table := entity.Table()
	if table == "" || f.rows == nil {
		return false
	}
	ok, err := f.rows.RowExists(ctx, table, "id", id)
	if err != nil {
		logger.Warn("checking %s %d: %v", entity, id, err)
		return false
	}
	return ok
}

// emptyMeta treats "" and "0" as no value, matching how the host reads
// single metadata values.
func emptyMeta(v string) bool {
	return v == "" || v == "0"
}
