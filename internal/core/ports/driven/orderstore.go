package driven

import (
	"context"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// OrderStore is the host's order and order item data access.
type OrderStore interface {
	// Get retrieves an order by ID, without its items.
	// Returns domain.ErrNotFound if the order does not exist.
	Get(ctx context.Context, id int64) (*domain.Order, error)

	// Query returns orders matching the argument mapping.
	// Recognised keys: status, number, offset, orderby, order, id,
	// customer_id, user_id, email, type.
	Query(ctx context.Context, args domain.QueryArgs) ([]domain.Order, error)

	// Items returns the items of an order ordered by cart index.
	Items(ctx context.Context, orderID int64) ([]domain.OrderItem, error)

	// GetItem retrieves a single order item by ID.
	// Returns domain.ErrNotFound if the item does not exist.
	GetItem(ctx context.Context, id int64) (*domain.OrderItem, error)

	// Distinct returns the distinct non-empty values of an order column,
	// sorted. Only whitelisted columns (currency, gateway, mode, status)
	// are accepted; others return domain.ErrInvalidArgument.
	Distinct(ctx context.Context, column string) ([]string, error)
}
