package driving

import (
	"context"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// CustomerService provides customer helpers.
type CustomerService interface {
	Exists(ctx context.Context, id int64) bool
	Get(ctx context.Context, id int64) (*domain.Customer, bool)
	Field(ctx context.Context, id int64, field string) (any, bool)
	ByEmail(ctx context.Context, email string) (*domain.Customer, bool)
	ByUserID(ctx context.Context, userID int64) (*domain.Customer, bool)
	Name(ctx context.Context, id int64) string
	Email(ctx context.Context, id int64) string
	LifetimeValue(ctx context.Context, id int64) string
	OrderCount(ctx context.Context, id int64) int
}

// OrderService provides order helpers.
type OrderService interface {
	Exists(ctx context.Context, id int64) bool
	Get(ctx context.Context, id int64) (*domain.Order, bool)
	Field(ctx context.Context, id int64, field string) (any, bool)
	Items(ctx context.Context, id int64) []domain.OrderItem
	ItemCount(ctx context.Context, id int64) int
	IsComplete(ctx context.Context, id int64) bool
	FormattedTotal(ctx context.Context, id int64) string
	StatusLabel(ctx context.Context, id int64) string
	StatusOptions(sorted bool) []domain.OptionPair
}

// OrderItemService provides order item helpers.
type OrderItemService interface {
	Exists(ctx context.Context, id int64) bool
	Get(ctx context.Context, id int64) (*domain.OrderItem, bool)
	Field(ctx context.Context, id int64, field string) (any, bool)
	Label(ctx context.Context, id int64) string
}

// AdjustmentService provides adjustment and discount helpers.
type AdjustmentService interface {
	Exists(ctx context.Context, id int64) bool
	Get(ctx context.Context, id int64) (*domain.Adjustment, bool)
	Field(ctx context.Context, id int64, field string) (any, bool)
	ByCode(ctx context.Context, code string) (*domain.Adjustment, bool)
	IsActive(ctx context.Context, id int64) bool
	FormattedAmount(ctx context.Context, id int64) string
	TypeOptions(sorted bool) []domain.OptionPair
}

// NoteService provides note helpers.
type NoteService interface {
	Exists(ctx context.Context, id int64) bool
	Get(ctx context.Context, id int64) (*domain.Note, bool)
	Field(ctx context.Context, id int64, field string) (any, bool)
	ForObject(ctx context.Context, objectType string, objectID int64) []domain.Note
}

// LogService provides log entry helpers.
type LogService interface {
	Exists(ctx context.Context, id int64) bool
	Get(ctx context.Context, id int64) (*domain.Log, bool)
	Field(ctx context.Context, id int64, field string) (any, bool)
	ForObject(ctx context.Context, objectType string, objectID int64) []domain.Log
}

// DownloadService provides product helpers.
type DownloadService interface {
	Exists(ctx context.Context, id int64) bool
	Get(ctx context.Context, id int64) (*domain.Download, bool)
	Field(ctx context.Context, id int64, field string) (any, bool)
	IsBundle(ctx context.Context, id int64) bool
	HasVariablePrices(ctx context.Context, id int64) bool
	Price(ctx context.Context, id int64, priceID *int64) float64
	PriceName(ctx context.Context, id int64, priceID *int64) string
	BundledProducts(ctx context.Context, id int64) []int64
	PriceMeta(ctx context.Context, id int64, key string, priceID *int64) (string, bool)
}

// CartService provides helpers over the current session's cart.
type CartService interface {
	Contents(ctx context.Context) []domain.CartItem
	IsEmpty(ctx context.Context) bool
	Quantity(ctx context.Context) int
	ItemQuantity(ctx context.Context, downloadID int64, priceID *int64) int
	Contains(ctx context.Context, downloadID int64, priceID *int64) bool
	DownloadIDs(ctx context.Context) []int64
	Total(ctx context.Context) string
}
