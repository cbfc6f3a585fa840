package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
	"github.com/custodia-labs/eddkit/internal/core/ports/driving"
	"github.com/custodia-labs/eddkit/internal/logger"
)

// Ensure the order helpers implement the interfaces.
var (
	_ driving.OrderService     = (*Orders)(nil)
	_ driving.OrderItemService = (*OrderItems)(nil)
)

// Orders provides order helpers.
type Orders struct {
	store      driven.OrderStore
	fields     *FieldAccessor
	currencies *Currencies
}

// NewOrders creates the order helpers.
func NewOrders(store driven.OrderStore, fields *FieldAccessor, currencies *Currencies) *Orders {
	return &Orders{
		store:      store,
		fields:     fields,
		currencies: currencies,
	}
}

// Exists reports whether the order exists.
func (o *Orders) Exists(ctx context.Context, id int64) bool {
	return o.fields.Exists(ctx, domain.EntityOrder, id)
}

// Get returns the order, without items.
func (o *Orders) Get(ctx context.Context, id int64) (*domain.Order, bool) {
	return lookup(ctx, "order", id, o.store.Get)
}

// Field returns an order field or metadata value.
func (o *Orders) Field(ctx context.Context, id int64, field string) (any, bool) {
	return o.fields.Get(ctx, domain.EntityOrder, id, field)
}

// Items returns the order's items in cart order.
func (o *Orders) Items(ctx context.Context, id int64) []domain.OrderItem {
	if id <= 0 {
		return []domain.OrderItem{}
	}
	items, err := o.store.Items(ctx, id)
	if err != nil {
		logger.Warn("reading items of order %d: %v", id, err)
		return []domain.OrderItem{}
	}
	if items == nil {
		return []domain.OrderItem{}
	}
	return items
}

// ItemCount returns the number of items in the order.
func (o *Orders) ItemCount(ctx context.Context, id int64) int {
	return len(o.Items(ctx, id))
}

// IsComplete reports whether the order status counts as paid.
func (o *Orders) IsComplete(ctx context.Context, id int64) bool {
	order, ok := o.Get(ctx, id)
	return ok && order.IsComplete()
}

// FormattedTotal returns the order total in the order's currency.
func (o *Orders) FormattedTotal(ctx context.Context, id int64) string {
	order, ok := o.Get(ctx, id)
	if !ok {
		return ""
	}
	code := order.Currency
	if code == "" {
		code = o.currencies.Default()
	}
	return o.currencies.Format(order.Total, code)
}

// StatusLabel returns the display label of the order status, falling back
// to the raw status for statuses without a label.
func (o *Orders) StatusLabel(ctx context.Context, id int64) string {
	order, ok := o.Get(ctx, id)
	if !ok {
		return ""
	}
	if label, ok := domain.OrderStatusLabels[order.Status]; ok {
		return label
	}
	return order.Status
}

// StatusOptions returns every order status as an option pair.
func (o *Orders) StatusOptions(sorted bool) []domain.OptionPair {
	return domain.KeyedOptions(domain.OrderStatusLabels, sorted)
}

// OrderItems provides order item helpers.
type OrderItems struct {
	store     driven.OrderStore
	downloads driven.DownloadStore
	fields    *FieldAccessor
}

// NewOrderItems creates the order item helpers. The download store is used
// to resolve price option names and may be nil.
func NewOrderItems(store driven.OrderStore, downloads driven.DownloadStore, fields *FieldAccessor) *OrderItems {
	return &OrderItems{
		store:     store,
		downloads: downloads,
		fields:    fields,
	}
}

// Exists reports whether the order item exists.
func (i *OrderItems) Exists(ctx context.Context, id int64) bool {
	return i.fields.Exists(ctx, domain.EntityOrderItem, id)
}

// Get returns the order item.
func (i *OrderItems) Get(ctx context.Context, id int64) (*domain.OrderItem, bool) {
	return lookup(ctx, "order item", id, i.store.GetItem)
}

// Field returns an order item field or metadata value.
func (i *OrderItems) Field(ctx context.Context, id int64, field string) (any, bool) {
	return i.fields.Get(ctx, domain.EntityOrderItem, id, field)
}

// Label returns the product name, followed by the price option name when
// the item was bought at a variable price.
func (i *OrderItems) Label(ctx context.Context, id int64) string {
	item, ok := i.Get(ctx, id)
	if !ok {
		return ""
	}
	if item.PriceID == nil || i.downloads == nil {
		return item.ProductName
	}
	download, ok := lookup(ctx, "download", item.ProductID, i.downloads.Get)
	if !ok {
		return item.ProductName
	}
	price, ok := download.PriceOption(*item.PriceID)
	if !ok || price.Name == "" {
		return item.ProductName
	}
	return fmt.Sprintf("%s - %s", item.ProductName, price.Name)
}
