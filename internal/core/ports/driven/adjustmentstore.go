package driven

import (
	"context"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// AdjustmentStore is the host's adjustment (discount, fee, tax rate) data access.
type AdjustmentStore interface {
	// Get retrieves an adjustment by ID.
	// Returns domain.ErrNotFound if the adjustment does not exist.
	Get(ctx context.Context, id int64) (*domain.Adjustment, error)

	// Query returns adjustments matching the argument mapping.
	// Recognised keys: status, number, offset, orderby, order, search, type, code.
	Query(ctx context.Context, args domain.QueryArgs) ([]domain.Adjustment, error)

	// ByCode retrieves a discount by its code, case-insensitively.
	// Returns domain.ErrNotFound if no discount has the code.
	ByCode(ctx context.Context, code string) (*domain.Adjustment, error)
}
