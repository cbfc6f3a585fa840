// Package tui provides an autocomplete picker over the search helpers:
// the user types a term, matching {value, label} options are listed, and
// the chosen option is returned to the caller.
package tui

import (
	"context"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// Searcher is the part of a search helper the picker uses. The customer,
// discount and download helpers all satisfy it.
type Searcher interface {
	Results(ctx context.Context, search string, extra domain.QueryArgs) []domain.OptionPair
}

// Ports holds what the picker searches and how it is labelled.
type Ports struct {
	Search Searcher

	// Label names the entity, e.g. "Customer".
	Label string

	// Placeholder hints at accepted terms.
	Placeholder string

	// Extra is passed to every search.
	Extra domain.QueryArgs
}

// Validate ensures the searcher is set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearcher
	}
	return nil
}
