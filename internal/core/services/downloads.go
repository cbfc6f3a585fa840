package services

import (
	"context"
	"errors"
	"slices"

	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
	"github.com/custodia-labs/eddkit/internal/core/ports/driving"
	"github.com/custodia-labs/eddkit/internal/logger"
)

// Ensure Downloads implements the interface.
var _ driving.DownloadService = (*Downloads)(nil)

// Downloads provides product helpers.
type Downloads struct {
	store  driven.DownloadStore
	meta   driven.MetaStore
	fields *FieldAccessor
}

// NewDownloads creates the download helpers. The meta store backs
// PriceMeta and may be nil.
func NewDownloads(store driven.DownloadStore, meta driven.MetaStore, fields *FieldAccessor) *Downloads {
	return &Downloads{
		store:  store,
		meta:   meta,
		fields: fields,
	}
}

// Exists reports whether the download exists.
func (d *Downloads) Exists(ctx context.Context, id int64) bool {
	return d.fields.Exists(ctx, domain.EntityDownload, id)
}

// Get returns the download with its prices and bundled products.
func (d *Downloads) Get(ctx context.Context, id int64) (*domain.Download, bool) {
	return lookup(ctx, "download", id, d.store.Get)
}

// Field returns a download field or metadata value.
func (d *Downloads) Field(ctx context.Context, id int64, field string) (any, bool) {
	return d.fields.Get(ctx, domain.EntityDownload, id, field)
}

// IsBundle reports whether the download is a bundle.
func (d *Downloads) IsBundle(ctx context.Context, id int64) bool {
	download, ok := d.Get(ctx, id)
	return ok && download.IsBundle()
}

// HasVariablePrices reports whether the download sells price options.
func (d *Downloads) HasVariablePrices(ctx context.Context, id int64) bool {
	download, ok := d.Get(ctx, id)
	return ok && download.HasVariablePrices()
}

// Price returns the price of a download. With a price ID, the matching
// variable price is returned, or 0 when the download has no such option.
func (d *Downloads) Price(ctx context.Context, id int64, priceID *int64) float64 {
	download, ok := d.Get(ctx, id)
	if !ok {
		return 0
	}
	if priceID == nil || !download.HasVariablePrices() {
		return download.Price
	}
	price, ok := download.PriceOption(*priceID)
	if !ok {
		return 0
	}
	return price.Amount
}

// PriceName returns the name of a variable price, or "" when there is none.
func (d *Downloads) PriceName(ctx context.Context, id int64, priceID *int64) string {
	if priceID == nil {
		return ""
	}
	download, ok := d.Get(ctx, id)
	if !ok {
		return ""
	}
	price, ok := download.PriceOption(*priceID)
	if !ok {
		return ""
	}
	return price.Name
}

// BundledProducts returns the IDs of the downloads in a bundle.
func (d *Downloads) BundledProducts(ctx context.Context, id int64) []int64 {
	download, ok := d.Get(ctx, id)
	if !ok || !download.IsBundle() {
		return []int64{}
	}
	return slices.Clone(download.BundledProducts)
}

// PriceMeta returns a download metadata value, scoped to one variable price
// when priceID is set.
func (d *Downloads) PriceMeta(ctx context.Context, id int64, key string, priceID *int64) (string, bool) {
	if d.meta == nil || id <= 0 || key == "" {
		return "", false
	}
	v, err := d.meta.GetMeta(ctx, domain.EntityDownload, id, domain.ProductMetaKey(key, priceID))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("reading download %d meta %q: %v", id, key, err)
		}
		return "", false
	}
	if emptyMeta(v) {
		return "", false
	}
	return v, true
}
