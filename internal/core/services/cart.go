package services

import (
	"context"

	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
	"github.com/custodia-labs/eddkit/internal/core/ports/driving"
	"github.com/custodia-labs/eddkit/internal/logger"
)

// Ensure Cart implements the interface.
var _ driving.CartService = (*Cart)(nil)

// Cart provides helpers over the current session's cart.
type Cart struct {
	store      driven.CartStore
	currencies *Currencies
}

// NewCart creates the cart helpers. A nil store behaves as an empty cart.
func NewCart(store driven.CartStore, currencies *Currencies) *Cart {
	return &Cart{store: store, currencies: currencies}
}

// Contents returns the cart items.
func (c *Cart) Contents(ctx context.Context) []domain.CartItem {
	if c.store == nil {
		return []domain.CartItem{}
	}
	items, err := c.store.Contents(ctx)
	if err != nil {
		logger.Warn("reading cart: %v", err)
		return []domain.CartItem{}
	}
	if items == nil {
		return []domain.CartItem{}
	}
	return items
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty(ctx context.Context) bool {
	return len(c.Contents(ctx)) == 0
}

// Quantity returns the total quantity of every item.
func (c *Cart) Quantity(ctx context.Context) int {
	total := 0
	for _, item := range c.Contents(ctx) {
		total += quantity(item)
	}
	return total
}

// ItemQuantity returns the quantity of a download in the cart. With a nil
// price ID every price option of the download is counted.
func (c *Cart) ItemQuantity(ctx context.Context, downloadID int64, priceID *int64) int {
	total := 0
	for _, item := range c.Contents(ctx) {
		if item.Matches(downloadID, priceID) {
			total += quantity(item)
		}
	}
	return total
}

// Contains reports whether a download is in the cart.
func (c *Cart) Contains(ctx context.Context, downloadID int64, priceID *int64) bool {
	for _, item := range c.Contents(ctx) {
		if item.Matches(downloadID, priceID) {
			return true
		}
	}
	return false
}

// DownloadIDs returns the distinct download IDs in cart order.
func (c *Cart) DownloadIDs(ctx context.Context) []int64 {
	ids := []int64{}
	seen := make(map[int64]bool)
	for _, item := range c.Contents(ctx) {
		if seen[item.DownloadID] {
			continue
		}
		seen[item.DownloadID] = true
		ids = append(ids, item.DownloadID)
	}
	return ids
}

// Subtotal returns the sum of every item's price times quantity.
func (c *Cart) Subtotal(ctx context.Context) float64 {
	var total float64
	for _, item := range c.Contents(ctx) {
		total += item.Subtotal()
	}
	return total
}

// Total returns the cart subtotal in the store currency.
func (c *Cart) Total(ctx context.Context) string {
	return c.currencies.Format(c.Subtotal(ctx), c.currencies.Default())
}

func quantity(item domain.CartItem) int {
	if item.Quantity <= 0 {
		return 1
	}
	return item.Quantity
}
