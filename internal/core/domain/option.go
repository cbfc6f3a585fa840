package domain

import (
	"html"
	"sort"
	"strconv"
	"strings"
)

// OptionPair is a display-ready {value, label} pair consumed by dropdown and
// autocomplete widgets. Both fields are safe to render verbatim in HTML.
type OptionPair struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// NewOption builds an option from a record ID and an unescaped label.
func NewOption(id int64, label string) OptionPair {
	return OptionPair{
		Value: SanitizeNumeric(strconv.FormatInt(id, 10)),
		Label: html.EscapeString(label),
	}
}

// SanitizeNumeric strips every non-digit character from s.
func SanitizeNumeric(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatOptions maps records to option pairs in input order.
// An empty input yields an empty, non-nil slice.
func FormatOptions[T any](records []T, pair func(T) (int64, string)) []OptionPair {
	options := make([]OptionPair, 0, len(records))
	for _, r := range records {
		id, label := pair(r)
		options = append(options, NewOption(id, label))
	}
	return options
}

// CustomerOptions formats customers as "Name (email)".
func CustomerOptions(customers []Customer) []OptionPair {
	return FormatOptions(customers, func(c Customer) (int64, string) {
		return c.ID, c.Label()
	})
}

// DiscountOptions formats discounts as "Name (CODE)".
func DiscountOptions(adjustments []Adjustment) []OptionPair {
	return FormatOptions(adjustments, func(a Adjustment) (int64, string) {
		return a.ID, a.Label()
	})
}

// DownloadOptions formats downloads by title.
func DownloadOptions(downloads []Download) []OptionPair {
	return FormatOptions(downloads, func(d Download) (int64, string) {
		return d.ID, d.Title
	})
}

// KeyedOptions builds options from a key to label map. Keys are used verbatim
// as values (escaped), which suits status and type lists.
// When sorted is true the options are ordered by label, then value; otherwise
// they are ordered by value so the output is still deterministic.
func KeyedOptions(labels map[string]string, sorted bool) []OptionPair {
	options := make([]OptionPair, 0, len(labels))
	for key, label := range labels {
		options = append(options, OptionPair{
			Value: html.EscapeString(key),
			Label: html.EscapeString(label),
		})
	}
	sort.SliceStable(options, func(i, j int) bool {
		if sorted && options[i].Label != options[j].Label {
			return options[i].Label < options[j].Label
		}
		return options[i].Value < options[j].Value
	})
	return options
}
