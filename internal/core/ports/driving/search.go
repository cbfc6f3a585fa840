package driving

import (
	"context"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// SearchQuery is a search box helper for one entity type.
// Setters change the defaults applied to subsequent calls.
type SearchQuery[T any] interface {
	// SetStatus replaces the status filter. Duplicates are dropped.
	SetStatus(statuses []string)

	// SetNumber sets the page size.
	SetNumber(n int)

	// SetOrderBy sets the sort field.
	SetOrderBy(field string)

	// SetOrder sets the sort direction.
	SetOrder(order domain.SortOrder)

	// Config returns a copy of the current defaults.
	Config() domain.SearchConfig

	// Results runs the search and formats the records as option pairs.
	Results(ctx context.Context, search string, extra domain.QueryArgs) []domain.OptionPair

	// RawResults runs the search and returns the host records unchanged.
	RawResults(ctx context.Context, search string, extra domain.QueryArgs) []T
}

// DiscountSearch searches discount codes.
type DiscountSearch interface {
	SearchQuery[domain.Adjustment]
}

// CustomerSearch searches customers by ID, user, email or name.
type CustomerSearch interface {
	SearchQuery[domain.Customer]
}

// DownloadSearch searches downloads by ID, author or title.
type DownloadSearch interface {
	SearchQuery[domain.Download]

	// SetExcludeBundles excludes bundle products from results.
	SetExcludeBundles(exclude bool)
}
