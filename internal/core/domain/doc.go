// Package domain defines the core types for eddkit.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - Customer, Order, OrderItem, Adjustment, Note, Log, Download: host entity records
//   - OptionPair: a display-ready {value, label} pair for selection widgets
//   - ParsedTerm: the classification of a free-text search box entry
//   - QueryArgs: the argument mapping handed to the host's "get many" queries
//   - Countries: ISO 3166 country lookups backed by CLDR data
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library and golang.org/x/text. All other packages
// depend on domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, golang.org/x/text
//   - Cannot Import: Any internal/ package, any external dependency
package domain
