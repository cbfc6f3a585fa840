package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/custodia-labs/eddkit/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/eddkit/internal/core/domain"
)

func TestImporter_Import(t *testing.T) {
	host := memory.NewHost()
	importer := NewImporter(host, nil)
	ctx := context.Background()

	summary, err := importer.Import(ctx, &domain.Dataset{
		Customers: []domain.Customer{{ID: 1, Email: "a@example.com"}},
		Orders: []domain.Order{
			{ID: 10, Status: "complete", PaymentKey: "fixed",
				Items: []domain.OrderItem{{ID: 11, ProductID: 5, ProductName: "Theme"}}},
			{ID: 12, Status: "pending"},
		},
		Meta: []domain.MetaEntry{{Entity: domain.EntityOrder, ID: 10, Key: "k", Value: "v"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Customers)
	assert.Equal(t, 2, summary.Orders)
	assert.Equal(t, 1, summary.Meta)

	order, err := host.OrderStore().Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "fixed", order.PaymentKey)

	order, err = host.OrderStore().Get(ctx, 12)
	require.NoError(t, err)
	assert.Len(t, order.PaymentKey, 32)

	item, err := host.OrderStore().GetItem(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, int64(10), item.OrderID)
}

func TestImporter_FlushesCurrencies(t *testing.T) {
	host := newTestHost(t)
	cache := newMapCache()
	currencies := NewCurrencies(host.OrderStore(), cache, language.English, "USD")
	ctx := context.Background()
	require.Equal(t, []string{"EUR", "USD"}, currencies.Used(ctx))

	_, err := NewImporter(host, currencies).Import(ctx, &domain.Dataset{
		Orders: []domain.Order{{ID: 200, Currency: "GBP"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"EUR", "GBP", "USD"}, currencies.Used(ctx))
}

func TestImporter_Rejects(t *testing.T) {
	importer := NewImporter(memory.NewHost(), nil)
	ctx := context.Background()

	tests := []struct {
		name string
		data *domain.Dataset
		want error
	}{
		{"nil dataset", nil, domain.ErrInvalidInput},
		{"customer without id", &domain.Dataset{Customers: []domain.Customer{{Email: "x@example.com"}}}, domain.ErrInvalidInput},
		{"item without id", &domain.Dataset{Orders: []domain.Order{{ID: 1, Items: []domain.OrderItem{{}}}}}, domain.ErrInvalidInput},
		{"negative download", &domain.Dataset{Downloads: []domain.Download{{ID: -1}}}, domain.ErrInvalidInput},
		{"unknown meta entity", &domain.Dataset{Meta: []domain.MetaEntry{{Entity: "widget", ID: 1, Key: "k"}}}, domain.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.Import(ctx, tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestImporter_StoreFailure(t *testing.T) {
	_, err := NewImporter(failingHost{}, nil).Import(context.Background(), &domain.Dataset{})

	assert.ErrorIs(t, err, errHostDown)
}
