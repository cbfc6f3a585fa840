// Package messages defines Bubbletea message types for the option picker.
package messages

import (
	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// SearchDue fires when the input has been idle for the debounce delay.
// Seq identifies the keystroke that scheduled it; stale ticks are ignored.
type SearchDue struct {
	Seq int
}

// OptionsLoaded carries the options found for Term.
type OptionsLoaded struct {
	Seq     int
	Term    string
	Options []domain.OptionPair
}
