package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
	"github.com/custodia-labs/eddkit/internal/core/ports/driving"
	"github.com/custodia-labs/eddkit/internal/logger"
)

// Ensure Adjustments implements the interface.
var _ driving.AdjustmentService = (*Adjustments)(nil)

// AmountTypeLabels maps discount amount types to their display labels.
var AmountTypeLabels = map[string]string{
	domain.AmountTypePercent: "Percentage",
	domain.AmountTypeFlat:    "Flat amount",
}

// Adjustments provides adjustment and discount helpers.
type Adjustments struct {
	store      driven.AdjustmentStore
	fields     *FieldAccessor
	currencies *Currencies
	now        func() time.Time
}

// NewAdjustments creates the adjustment helpers.
func NewAdjustments(store driven.AdjustmentStore, fields *FieldAccessor, currencies *Currencies) *Adjustments {
	return &Adjustments{
		store:      store,
		fields:     fields,
		currencies: currencies,
		now:        time.Now,
	}
}

// Exists reports whether the adjustment exists.
func (a *Adjustments) Exists(ctx context.Context, id int64) bool {
	return a.fields.Exists(ctx, domain.EntityAdjustment, id)
}

// Get returns the adjustment.
func (a *Adjustments) Get(ctx context.Context, id int64) (*domain.Adjustment, bool) {
	return lookup(ctx, "adjustment", id, a.store.Get)
}

// Field returns an adjustment field or metadata value.
func (a *Adjustments) Field(ctx context.Context, id int64, field string) (any, bool) {
	return a.fields.Get(ctx, domain.EntityAdjustment, id, field)
}

// ByCode returns the discount with the given code.
func (a *Adjustments) ByCode(ctx context.Context, code string) (*domain.Adjustment, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, false
	}
	adj, err := a.store.ByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("reading discount %q: %v", code, err)
		}
		return nil, false
	}
	return adj, adj != nil
}

// IsActive reports whether the adjustment can be used right now: its status
// is active, it has started, it has not expired and uses remain.
func (a *Adjustments) IsActive(ctx context.Context, id int64) bool {
	adj, ok := a.Get(ctx, id)
	if !ok {
		return false
	}
	now := a.now()
	return adj.Status == domain.AdjustmentStatusActive &&
		adj.IsStarted(now) &&
		!adj.IsExpired(now) &&
		!adj.IsMaxedOut()
}

// FormattedAmount returns "10%" for percentage discounts and the amount in
// the store currency otherwise.
func (a *Adjustments) FormattedAmount(ctx context.Context, id int64) string {
	adj, ok := a.Get(ctx, id)
	if !ok {
		return ""
	}
	if adj.IsPercent() {
		return strconv.FormatFloat(adj.Amount, 'f', -1, 64) + "%"
	}
	return a.currencies.Format(adj.Amount, a.currencies.Default())
}

// TypeOptions returns the discount amount types as option pairs.
func (a *Adjustments) TypeOptions(sorted bool) []domain.OptionPair {
	return domain.KeyedOptions(AmountTypeLabels, sorted)
}
