package driven

import (
	"context"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// CartStore returns the contents of the current shopping session's cart.
type CartStore interface {
	// Contents returns the cart items in insertion order.
	Contents(ctx context.Context) ([]domain.CartItem, error)
}
