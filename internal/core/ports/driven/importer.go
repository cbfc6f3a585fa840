package driven

import (
	"context"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// DatasetImporter seeds a host store from a bulk snapshot.
type DatasetImporter interface {
	// Import writes every record of the dataset, replacing rows with the
	// same ID.
	Import(ctx context.Context, data *domain.Dataset) error
}
