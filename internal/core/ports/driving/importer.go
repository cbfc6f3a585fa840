package driving

import (
	"context"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// ImportSummary counts the records written by an import.
type ImportSummary struct {
	Customers   int `json:"customers" yaml:"customers"`
	Orders      int `json:"orders" yaml:"orders"`
	Adjustments int `json:"adjustments" yaml:"adjustments"`
	Notes       int `json:"notes" yaml:"notes"`
	Logs        int `json:"logs" yaml:"logs"`
	Downloads   int `json:"downloads" yaml:"downloads"`
	Meta        int `json:"meta" yaml:"meta"`
}

// ImportService seeds the host store from a dataset.
type ImportService interface {
	// Import validates and writes the dataset. Unlike lookups, import
	// failures are returned to the caller.
	Import(ctx context.Context, data *domain.Dataset) (ImportSummary, error)
}
