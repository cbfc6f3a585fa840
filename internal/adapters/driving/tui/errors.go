package tui

import "errors"

// ErrMissingSearcher is returned when the picker has nothing to search.
var ErrMissingSearcher = errors.New("tui: searcher is required")
