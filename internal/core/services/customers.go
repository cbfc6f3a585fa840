package services

import (
	"context"
	"errors"
	"strings"

	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
	"github.com/custodia-labs/eddkit/internal/core/ports/driving"
	"github.com/custodia-labs/eddkit/internal/logger"
)

// Ensure Customers implements the interface.
var _ driving.CustomerService = (*Customers)(nil)

// Customers provides customer helpers.
type Customers struct {
	store      driven.CustomerStore
	fields     *FieldAccessor
	currencies *Currencies
}

// NewCustomers creates the customer helpers.
func NewCustomers(store driven.CustomerStore, fields *FieldAccessor, currencies *Currencies) *Customers {
	return &Customers{
		store:      store,
		fields:     fields,
		currencies: currencies,
	}
}

// Exists reports whether the customer exists.
func (c *Customers) Exists(ctx context.Context, id int64) bool {
	return c.fields.Exists(ctx, domain.EntityCustomer, id)
}

// Get returns the customer.
func (c *Customers) Get(ctx context.Context, id int64) (*domain.Customer, bool) {
	return lookup(ctx, "customer", id, c.store.Get)
}

// Field returns a customer field or metadata value.
func (c *Customers) Field(ctx context.Context, id int64, field string) (any, bool) {
	return c.fields.Get(ctx, domain.EntityCustomer, id, field)
}

// ByEmail returns the customer with the given email address.
func (c *Customers) ByEmail(ctx context.Context, email string) (*domain.Customer, bool) {
	email = strings.TrimSpace(email)
	if !domain.IsEmail(email) {
		return nil, false
	}
	return c.first(ctx, domain.QueryArgs{domain.ArgEmail: {email}})
}

// ByUserID returns the customer linked to a user account.
func (c *Customers) ByUserID(ctx context.Context, userID int64) (*domain.Customer, bool) {
	if userID <= 0 {
		return nil, false
	}
	return c.first(ctx, domain.QueryArgs{domain.ArgUserID: {formatID(userID)}})
}

func (c *Customers) first(ctx context.Context, args domain.QueryArgs) (*domain.Customer, bool) {
	args.Set(domain.ArgNumber, "1")
	customers, err := c.store.Query(ctx, args)
	if err != nil {
		logger.Warn("customer lookup %s: %v", args.Encode(), err)
		return nil, false
	}
	if len(customers) == 0 {
		return nil, false
	}
	return &customers[0], true
}

// Name returns the customer's display name.
func (c *Customers) Name(ctx context.Context, id int64) string {
	customer, ok := c.Get(ctx, id)
	if !ok {
		return ""
	}
	return customer.DisplayName()
}

// Email returns the customer's email address.
func (c *Customers) Email(ctx context.Context, id int64) string {
	customer, ok := c.Get(ctx, id)
	if !ok {
		return ""
	}
	return customer.Email
}

// LifetimeValue returns the customer's purchase value in the store currency.
func (c *Customers) LifetimeValue(ctx context.Context, id int64) string {
	customer, ok := c.Get(ctx, id)
	if !ok {
		return ""
	}
	return c.currencies.Format(customer.PurchaseValue, c.currencies.Default())
}

// OrderCount returns the number of purchases recorded for the customer.
func (c *Customers) OrderCount(ctx context.Context, id int64) int {
	customer, ok := c.Get(ctx, id)
	if !ok {
		return 0
	}
	return customer.PurchaseCount
}

// lookup calls a store getter and folds its error into a boolean.
// Not-found is silent; any other error is logged.
func lookup[T any](ctx context.Context, what string, id int64, get func(context.Context, int64) (*T, error)) (*T, bool) {
	if id <= 0 {
		return nil, false
	}
	v, err := get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("reading %s %d: %v", what, id, err)
		}
		return nil, false
	}
	return v, v != nil
}
