package driven

import (
	"context"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// CustomerStore is the host's customer data access.
type CustomerStore interface {
	// Get retrieves a customer by ID.
	// Returns domain.ErrNotFound if the customer does not exist.
	Get(ctx context.Context, id int64) (*domain.Customer, error)

	// Query returns customers matching the argument mapping, in host order.
	// Recognised keys: status, number, offset, orderby, order, search,
	// search_terms, id, user_id, email.
	Query(ctx context.Context, args domain.QueryArgs) ([]domain.Customer, error)
}
