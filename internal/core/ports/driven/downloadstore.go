package driven

import (
	"context"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// DownloadStore is the host's product data access.
type DownloadStore interface {
	// Get retrieves a download by ID, including variable prices and
	// bundled products.
	// Returns domain.ErrNotFound if the download does not exist.
	Get(ctx context.Context, id int64) (*domain.Download, error)

	// Query returns downloads matching the argument mapping.
	// Recognised keys: status, number, offset, orderby, order, search,
	// search_terms, id, author, exclude_bundles.
	Query(ctx context.Context, args domain.QueryArgs) ([]domain.Download, error)
}
