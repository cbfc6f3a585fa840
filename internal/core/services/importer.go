package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
	"github.com/custodia-labs/eddkit/internal/core/ports/driving"
	"github.com/custodia-labs/eddkit/internal/logger"
)

// Ensure Importer implements the interface.
var _ driving.ImportService = (*Importer)(nil)

// Importer seeds the host store from a dataset.
type Importer struct {
	store      driven.DatasetImporter
	currencies *Currencies
}

// NewImporter creates an importer. Currencies may be nil; when set its
// cached aggregates are flushed after a successful import.
func NewImporter(store driven.DatasetImporter, currencies *Currencies) *Importer {
	return &Importer{store: store, currencies: currencies}
}

// Import validates the dataset, fills in generated values and writes it.
// Orders without a payment key get a random one, and order items inherit
// their order's ID.
func (i *Importer) Import(ctx context.Context, data *domain.Dataset) (driving.ImportSummary, error) {
	if data == nil {
		return driving.ImportSummary{}, fmt.Errorf("empty dataset: %w", domain.ErrInvalidInput)
	}
	if err := validateDataset(data); err != nil {
		return driving.ImportSummary{}, err
	}

	logger.Section("Import")
	for idx := range data.Orders {
		o := &data.Orders[idx]
		if o.PaymentKey == "" {
			o.PaymentKey = strings.ReplaceAll(uuid.NewString(), "-", "")
			logger.Debug("Generated payment key for order %d", o.ID)
		}
		for j := range o.Items {
			o.Items[j].OrderID = o.ID
		}
	}

	if err := i.store.Import(ctx, data); err != nil {
		return driving.ImportSummary{}, fmt.Errorf("importing dataset: %w", err)
	}
	if i.currencies != nil {
		i.currencies.Flush(ctx)
	}

	return driving.ImportSummary{
		Customers:   len(data.Customers),
		Orders:      len(data.Orders),
		Adjustments: len(data.Adjustments),
		Notes:       len(data.Notes),
		Logs:        len(data.Logs),
		Downloads:   len(data.Downloads),
		Meta:        len(data.Meta),
	}, nil
}

// validateDataset rejects records without a positive ID and metadata for
// unknown entity types.
func validateDataset(data *domain.Dataset) error {
	check := func(kind string, id int64) error {
		if id <= 0 {
			return fmt.Errorf("%s with id %d: %w", kind, id, domain.ErrInvalidInput)
		}
		return nil
	}
	for _, c := range data.Customers {
		if err := check("customer", c.ID); err != nil {
			return err
		}
	}
	for _, o := range data.Orders {
		if err := check("order", o.ID); err != nil {
			return err
		}
		for _, item := range o.Items {
			if err := check("order item", item.ID); err != nil {
				return err
			}
		}
	}
	for _, a := range data.Adjustments {
		if err := check("adjustment", a.ID); err != nil {
			return err
		}
	}
	for _, n := range data.Notes {
		if err := check("note", n.ID); err != nil {
			return err
		}
	}
	for _, l := range data.Logs {
		if err := check("log", l.ID); err != nil {
			return err
		}
	}
	for _, d := range data.Downloads {
		if err := check("download", d.ID); err != nil {
			return err
		}
	}
	for _, m := range data.Meta {
		if !m.Entity.IsValid() {
			return fmt.Errorf("meta %q for %q: %w", m.Key, m.Entity, domain.ErrUnsupportedType)
		}
		if err := check("meta "+m.Key, m.ID); err != nil {
			return err
		}
	}
	return nil
}
