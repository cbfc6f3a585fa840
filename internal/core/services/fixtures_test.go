package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/custodia-labs/eddkit/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// newTestHost returns an in-memory host seeded with a small store.
func newTestHost(t *testing.T) *memory.Host {
	t.Helper()
	one, three := int64(1), int64(3)
	host := memory.NewHost()
	err := host.Import(context.Background(), &domain.Dataset{
		Customers: []domain.Customer{
			{ID: 1, UserID: 10, Name: "John Smith", Email: "john@example.com", Status: "active",
				PurchaseValue: 1234.5, PurchaseCount: 3},
			{ID: 2, UserID: 20, Name: "Jane Doe", Email: "jane@example.com", Status: "active"},
			{ID: 3, Name: "Old Account", Email: "old@example.com", Status: "inactive"},
			{ID: 4, Email: "nobody@example.com", Status: "active", PurchaseCount: 0},
		},
		Orders: []domain.Order{
			{ID: 100, CustomerID: 1, Status: "complete", Currency: "USD", Gateway: "stripe", Total: 20,
				Items: []domain.OrderItem{
					{ID: 1000, ProductID: 51, ProductName: "Plugin", PriceID: &one, CartIndex: 0, Quantity: 1},
					{ID: 1001, ProductID: 50, ProductName: "Theme", CartIndex: 1, Quantity: 1},
				}},
			{ID: 101, CustomerID: 2, Status: "paid", Currency: "EUR", Gateway: "paypal", Total: 9.5},
			{ID: 102, CustomerID: 2, Status: "pending", Gateway: "manual"},
		},
		Adjustments: []domain.Adjustment{
			{ID: 7, Name: "Spring Sale", Code: "SPRING", Status: "active", Type: domain.AdjustmentTypeDiscount,
				AmountType: domain.AmountTypePercent, Amount: 10},
			{ID: 8, Name: "Five Off", Code: "FIVE", Status: "active", Type: domain.AdjustmentTypeDiscount,
				AmountType: domain.AmountTypeFlat, Amount: 5, MaxUses: 1, UseCount: 1},
			{ID: 9, Name: "Expired", Code: "OLD", Status: "active", Type: domain.AdjustmentTypeDiscount,
				AmountType: domain.AmountTypeFlat, Amount: 1,
				EndDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 10, Name: "Paused", Code: "PAUSE", Status: "inactive", Type: domain.AdjustmentTypeDiscount},
		},
		Downloads: []domain.Download{
			{ID: 50, Title: "Theme", Status: "publish", AuthorID: 10, Price: 20},
			{ID: 51, Title: "Plugin", Status: "publish", AuthorID: 20, Price: 0,
				VariablePrices: []domain.PriceOption{
					{Index: 1, Name: "Personal", Amount: 29},
					{Index: 3, Name: "Agency", Amount: 199},
				}},
			{ID: 52, Title: "Everything Bundle", Status: "publish", ProductType: domain.ProductTypeBundle,
				BundledProducts: []int64{50, 51}},
			{ID: 53, Title: "Draft Plugin", Status: "draft"},
		},
		Notes: []domain.Note{
			{ID: 301, ObjectID: 100, ObjectType: "order", Content: "Second",
				DateCreated: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 300, ObjectID: 100, ObjectType: "order", Content: "First",
				DateCreated: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 302, ObjectID: 1, ObjectType: "customer", Content: "Unrelated"},
		},
		Logs: []domain.Log{
			{ID: 400, ObjectID: 52, ObjectType: "download", Type: "file_download", Title: "Downloaded"},
		},
		Meta: []domain.MetaEntry{
			{Entity: domain.EntityCustomer, ID: 1, Key: "tier", Value: "gold"},
			{Entity: domain.EntityCustomer, ID: 4, Key: "purchase_count", Value: "9"},
			{Entity: domain.EntityOrder, ID: 999, Key: "status", Value: "refunded"},
			{Entity: domain.EntityOrder, ID: 100, Key: "flagged", Value: "0"},
			{Entity: domain.EntityOrder, ID: 100, Key: "note", Value: ""},
			{Entity: domain.EntityDownload, ID: 51, Key: "price", Value: "29"},
			{Entity: domain.EntityDownload, ID: 51, Key: "price_3", Value: "199"},
		},
		ActivePlugins: []string{"edd-recurring", "edd-fes"},
		Cart: []domain.CartItem{
			{DownloadID: 51, PriceID: &one, Quantity: 2, ItemPrice: 29},
			{DownloadID: 51, PriceID: &three, Quantity: 1, ItemPrice: 199},
			{DownloadID: 50, Quantity: 0, ItemPrice: 20},
		},
	})
	require.NoError(t, err)
	return host
}

func newTestFields(host *memory.Host) *FieldAccessor {
	return NewFieldAccessor(host, host, host)
}

func newTestCurrencies(host *memory.Host) *Currencies {
	return NewCurrencies(host.OrderStore(), nil, language.English, "USD")
}
