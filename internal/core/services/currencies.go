package services

import (
	"context"
	"math"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
	"github.com/custodia-labs/eddkit/internal/core/ports/driving"
	"github.com/custodia-labs/eddkit/internal/logger"
)

// Ensure Currencies implements the interface.
var _ driving.CurrencyService = (*Currencies)(nil)

// Transient keys of the cached order aggregates.
const (
	UsedCurrenciesKey = "eddkit_used_currencies"
	UsedGatewaysKey   = "eddkit_used_gateways"
)

// AggregateTTL is how long cached order aggregates live.
const AggregateTTL = time.Hour

// DefaultCurrency is used when no valid store currency is configured.
const DefaultCurrency = "USD"

// Currencies resolves currency codes and formats amounts. Distinct order
// currencies and gateways are cached in the host's transient cache.
type Currencies struct {
	orders   driven.OrderStore
	cache    driven.TransientCache
	printer  *message.Printer
	fallback string
}

// NewCurrencies creates the currency helpers. Amounts are formatted for
// locale; storeCurrency is the default for amounts without a currency.
// The cache may be nil, in which case aggregates are recomputed every call.
func NewCurrencies(orders driven.OrderStore, cache driven.TransientCache, locale language.Tag, storeCurrency string) *Currencies {
	c := &Currencies{
		orders:   orders,
		cache:    cache,
		printer:  message.NewPrinter(locale),
		fallback: DefaultCurrency,
	}
	if u, ok := parseCurrency(storeCurrency); ok {
		c.fallback = u.String()
	}
	return c
}

func parseCurrency(code string) (currency.Unit, bool) {
	var none currency.Unit
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return none, false
	}
	u, err := currency.ParseISO(code)
	if err != nil {
		return none, false
	}
	return u, true
}

// IsValid reports whether code is a known ISO 4217 currency.
func (c *Currencies) IsValid(code string) bool {
	_, ok := parseCurrency(code)
	return ok
}

// Symbol returns the currency symbol for the configured locale.
func (c *Currencies) Symbol(code string) string {
	u, ok := parseCurrency(code)
	if !ok {
		return ""
	}
	return strings.TrimSpace(c.printer.Sprint(currency.Symbol(u)))
}

// Decimals returns the standard number of minor unit digits.
func (c *Currencies) Decimals(code string) int {
	u, ok := parseCurrency(code)
	if !ok {
		return 0
	}
	scale, _ := currency.Standard.Rounding(u)
	return scale
}

// Format renders amount with the currency symbol and the currency's
// standard precision, grouped for the configured locale.
func (c *Currencies) Format(amount float64, code string) string {
	u, ok := parseCurrency(code)
	if !ok {
		return ""
	}
	scale, _ := currency.Standard.Rounding(u)
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = math.Abs(amount)
	}
	symbol := strings.TrimSpace(c.printer.Sprint(currency.Symbol(u)))
	return sign + symbol + c.printer.Sprint(number.Decimal(amount, number.Scale(scale)))
}

// Default returns the store currency.
func (c *Currencies) Default() string {
	return c.fallback
}

// Used returns the distinct currencies of recorded orders.
func (c *Currencies) Used(ctx context.Context) []string {
	return c.aggregate(ctx, UsedCurrenciesKey, "currency")
}

// UsedGateways returns the distinct payment gateways of recorded orders.
func (c *Currencies) UsedGateways(ctx context.Context) []string {
	return c.aggregate(ctx, UsedGatewaysKey, "gateway")
}

// Flush drops the cached aggregates.
func (c *Currencies) Flush(ctx context.Context) {
	if c.cache == nil {
		return
	}
	for _, key := range []string{UsedCurrenciesKey, UsedGatewaysKey} {
		if err := c.cache.Delete(ctx, key); err != nil {
			logger.Warn("deleting transient %s: %v", key, err)
		}
	}
}

// aggregate reads a cached distinct-values list, recomputing it when the
// entry is missing or empty. Concurrent callers may both recompute; the
// result is the same.
func (c *Currencies) aggregate(ctx context.Context, key, column string) []string {
	if c.cache != nil {
		var cached []string
		ok, err := c.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("reading transient %s: %v", key, err)
		}
		if ok && len(cached) > 0 {
			logger.Debug("Transient %s hit (%d values)", key, len(cached))
			return cached
		}
	}

	if c.orders == nil {
		return []string{}
	}
	values, err := c.orders.Distinct(ctx, column)
	if err != nil {
		logger.Warn("computing distinct order %s: %v", column, err)
		return []string{}
	}
	if values == nil {
		values = []string{}
	}

	if c.cache != nil && len(values) > 0 {
		if err := c.cache.Set(ctx, key, values, AggregateTTL); err != nil {
			logger.Warn("writing transient %s: %v", key, err)
		}
	}
	return values
}
