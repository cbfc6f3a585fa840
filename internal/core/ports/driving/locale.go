package driving

import (
	"context"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// CountryService resolves ISO 3166 country codes.
// Every accessor returns a zero value for unknown codes.
type CountryService interface {
	IsValid(code string) bool
	Name(code string) string
	Flag(code string) string
	Format(code string) string
	Details(code string) (domain.Country, bool)
	Options(sorted bool) []domain.OptionPair
}

// CurrencyService resolves ISO 4217 currency codes and formats amounts.
type CurrencyService interface {
	// IsValid reports whether code is a known currency.
	IsValid(code string) bool

	// Symbol returns the display symbol, or "" for unknown codes.
	Symbol(code string) string

	// Decimals returns the number of minor unit digits, or 0 for unknown codes.
	Decimals(code string) int

	// Format renders amount in the currency, or "" for unknown codes.
	Format(amount float64, code string) string

	// Default returns the store's default currency code.
	Default() string

	// Used returns the distinct currencies of recorded orders.
	Used(ctx context.Context) []string

	// UsedGateways returns the distinct gateways of recorded orders.
	UsedGateways(ctx context.Context) []string

	// Flush drops the cached aggregates.
	Flush(ctx context.Context)
}
