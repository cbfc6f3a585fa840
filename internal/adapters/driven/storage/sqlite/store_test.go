package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

// seedTestStore imports a small dataset.
func seedTestStore(t *testing.T) *Store {
	t.Helper()
	store := setupTestStore(t)
	one := int64(1)
	err := store.Import(context.Background(), &domain.Dataset{
		Customers: []domain.Customer{
			{ID: 1, UserID: 10, Name: "John Smith", Email: "john@example.com", Status: "active",
				DateCreated: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
			{ID: 2, UserID: 20, Name: "Jane Doe", Email: "jane@example.com", Status: "active"},
			{ID: 3, Name: "Old Account", Email: "old@example.com", Status: "inactive"},
			{ID: 4, Name: "50% Club", Email: "club@example.com", Status: "active"},
		},
		Orders: []domain.Order{
			{ID: 100, CustomerID: 1, Status: "complete", Currency: "USD", Gateway: "stripe", Total: 20,
				Items: []domain.OrderItem{
					{ID: 1001, ProductID: 50, ProductName: "Theme", CartIndex: 1},
					{ID: 1000, ProductID: 51, ProductName: "Plugin", PriceID: &one, CartIndex: 0},
				}},
			{ID: 101, CustomerID: 2, Status: "complete", Currency: "EUR", Gateway: "paypal"},
			{ID: 102, CustomerID: 2, Status: "pending", Gateway: "stripe"},
		},
		Adjustments: []domain.Adjustment{
			{ID: 7, Name: "Spring Sale", Code: "SPRING", Status: "active", Type: domain.AdjustmentTypeDiscount,
				AmountType: domain.AmountTypePercent, Amount: 10, OncePerCustomer: true,
				EndDate: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 8, Name: "Shipping", Code: "SPRING", Status: "active", Type: domain.AdjustmentTypeFee},
		},
		Notes: []domain.Note{
			{ID: 301, ObjectID: 100, ObjectType: "order", Content: "Second",
				DateCreated: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 300, ObjectID: 100, ObjectType: "order", Content: "First",
				DateCreated: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
		Logs: []domain.Log{
			{ID: 400, ObjectID: 52, ObjectType: "download", Type: "file_download", Title: "Downloaded"},
		},
		Downloads: []domain.Download{
			{ID: 50, Title: "Theme", Status: "publish", AuthorID: 10, Price: 20},
			{ID: 51, Title: "Plugin", Status: "publish", AuthorID: 20,
				VariablePrices: []domain.PriceOption{
					{Index: 3, Name: "Agency", Amount: 199},
					{Index: 1, Name: "Personal", Amount: 29},
				}},
			{ID: 52, Title: "Everything Bundle", Status: "publish", ProductType: domain.ProductTypeBundle,
				BundledProducts: []int64{51, 50}},
		},
		Meta: []domain.MetaEntry{
			{Entity: domain.EntityCustomer, ID: 1, Key: "tier", Value: "gold"},
			{Entity: domain.EntityOrder, ID: 999, Key: "status", Value: "refunded"},
		},
		ActivePlugins: []string{"edd-recurring"},
		Cart: []domain.CartItem{
			{DownloadID: 51, PriceID: &one, Quantity: 2, ItemPrice: 29},
			{DownloadID: 50, Quantity: 1, ItemPrice: 20},
		},
	})
	require.NoError(t, err)
	return store
}

func customerIDs(customers []domain.Customer) []int64 {
	ids := make([]int64, len(customers))
	for i, c := range customers {
		ids[i] = c.ID
	}
	return ids
}

// ==================== Store Creation Tests ====================

func TestNewStore_Success(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "eddkit.db"), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, dir)
}

func TestNewStore_Migrations(t *testing.T) {
	store := setupTestStore(t)

	var count int
	err := store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	tables := []string{
		"edd_customers", "edd_orders", "edd_order_items", "edd_adjustments", "edd_notes", "edd_logs",
		"edd_downloads", "edd_download_prices", "edd_download_bundles",
		"edd_customermeta", "edd_ordermeta", "edd_order_itemmeta", "edd_adjustmentmeta",
		"edd_notemeta", "edd_logmeta", "edd_downloadmeta",
		"plugins", "cart_items",
	}
	for _, table := range tables {
		var exists int
		err := store.db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&exists)
		require.NoError(t, err)
		assert.Equal(t, 1, exists, "table %s should exist", table)
	}
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Import(context.Background(), &domain.Dataset{
		Customers: []domain.Customer{{ID: 1, Email: "a@example.com"}},
	}))
	require.NoError(t, store.Close())

	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	c, err := store.CustomerStore().Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", c.Email)
}

// ==================== Entity Store Tests ====================

func TestCustomerStore_Get(t *testing.T) {
	store := seedTestStore(t)
	ctx := context.Background()

	c, err := store.CustomerStore().Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "John Smith", c.Name)
	assert.True(t, c.DateCreated.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))

	c, err = store.CustomerStore().Get(ctx, 2)
	require.NoError(t, err)
	assert.True(t, c.DateCreated.IsZero())

	_, err = store.CustomerStore().Get(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerStore_Query(t *testing.T) {
	store := seedTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		args domain.QueryArgs
		want []int64
	}{
		{"no args", domain.QueryArgs{}, []int64{1, 2, 3, 4}},
		{"status", domain.QueryArgs{"status": {"active"}}, []int64{1, 2, 4}},
		{"comma statuses", domain.QueryArgs{"status": {"active,inactive"}}, []int64{1, 2, 3, 4}},
		{"email ignores case", domain.QueryArgs{"email": {"JANE@example.com"}}, []int64{2}},
		{"user id", domain.QueryArgs{"user_id": {"10"}}, []int64{1}},
		{"search", domain.QueryArgs{"search": {"smith"}}, []int64{1}},
		{"search terms are ANDed", domain.QueryArgs{"search_terms": {"j", "doe"}}, []int64{2}},
		{"like wildcards match literally", domain.QueryArgs{"search": {"50%"}}, []int64{4}},
		{"escaped values", domain.QueryArgs{"search": {"50&#37; club"}}, []int64{4}},
		{"order by name", domain.QueryArgs{"orderby": {"name"}, "order": {"asc"}}, []int64{4, 2, 1, 3}},
		{"descending", domain.QueryArgs{"order": {"DESC"}}, []int64{4, 3, 2, 1}},
		{"number", domain.QueryArgs{"number": {"2"}}, []int64{1, 2}},
		{"offset", domain.QueryArgs{"offset": {"3"}}, []int64{4}},
		{"page", domain.QueryArgs{"number": {"1"}, "offset": {"1"}}, []int64{2}},
		{"unknown args ignored", domain.QueryArgs{"product_id": {"5"}}, []int64{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.CustomerStore().Query(ctx, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, customerIDs(got))
		})
	}
}

func TestCustomerStore_Query_RejectsUnknownSort(t *testing.T) {
	store := seedTestStore(t)
	ctx := context.Background()

	_, err := store.CustomerStore().Query(ctx, domain.QueryArgs{"orderby": {"name; DROP TABLE edd_customers"}})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = store.CustomerStore().Query(ctx, domain.QueryArgs{"order": {"sideways"}})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestOrderStore(t *testing.T) {
	store := seedTestStore(t)
	orders := store.OrderStore()
	ctx := context.Background()

	o, err := orders.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "USD", o.Currency)
	assert.Empty(t, o.Items)

	items, err := orders.Items(ctx, 100)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1000), items[0].ID)
	require.NotNil(t, items[0].PriceID)
	assert.Equal(t, int64(1), *items[0].PriceID)
	assert.Nil(t, items[1].PriceID)
	assert.Equal(t, int64(100), items[1].OrderID)

	items, err = orders.Items(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, items)

	item, err := orders.GetItem(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, "Theme", item.ProductName)

	found, err := orders.Query(ctx, domain.QueryArgs{"customer_id": {"2"}, "status": {"complete"}})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(101), found[0].ID)
}

func TestOrderStore_Distinct(t *testing.T) {
	store := seedTestStore(t)
	orders := store.OrderStore()
	ctx := context.Background()

	currencies, err := orders.Distinct(ctx, "currency")
	require.NoError(t, err)
	assert.Equal(t, []string{"EUR", "USD"}, currencies)

	gateways, err := orders.Distinct(ctx, "gateway")
	require.NoError(t, err)
	assert.Equal(t, []string{"paypal", "stripe"}, gateways)

	_, err = orders.Distinct(ctx, "email")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestAdjustmentStore(t *testing.T) {
	store := seedTestStore(t)
	adjustments := store.AdjustmentStore()
	ctx := context.Background()

	a, err := adjustments.Get(ctx, 7)
	require.NoError(t, err)
	assert.True(t, a.OncePerCustomer)
	assert.True(t, a.StartDate.IsZero())
	assert.Equal(t, 2030, a.EndDate.Year())

	a, err = adjustments.ByCode(ctx, "spring")
	require.NoError(t, err)
	assert.Equal(t, int64(7), a.ID, "fees are not discounts")

	_, err = adjustments.ByCode(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	discounts, err := adjustments.Query(ctx, domain.QueryArgs{"type": {"discount"}, "search": {"sale"}})
	require.NoError(t, err)
	require.Len(t, discounts, 1)
	assert.Equal(t, "Spring Sale", discounts[0].Name)
}

func TestNoteAndLogStores(t *testing.T) {
	store := seedTestStore(t)
	ctx := context.Background()

	notes, err := store.NoteStore().Query(ctx, domain.QueryArgs{
		"object_type": {"order"},
		"object_id":   {"100"},
		"orderby":     {"date_created"},
		"order":       {"ASC"},
	})
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "First", notes[0].Content)
	assert.Equal(t, "Second", notes[1].Content)

	l, err := store.LogStore().Get(ctx, 400)
	require.NoError(t, err)
	assert.Equal(t, "file_download", l.Type)
}

func TestDownloadStore(t *testing.T) {
	store := seedTestStore(t)
	downloads := store.DownloadStore()
	ctx := context.Background()

	d, err := downloads.Get(ctx, 51)
	require.NoError(t, err)
	assert.Equal(t, []domain.PriceOption{
		{Index: 1, Name: "Personal", Amount: 29},
		{Index: 3, Name: "Agency", Amount: 199},
	}, d.VariablePrices)
	assert.Equal(t, domain.ProductTypeDefault, d.ProductType)

	d, err = downloads.Get(ctx, 52)
	require.NoError(t, err)
	assert.True(t, d.IsBundle())
	assert.Equal(t, []int64{51, 50}, d.BundledProducts)

	all, err := downloads.Query(ctx, domain.QueryArgs{"exclude_bundles": {"1"}, "orderby": {"title"}})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Plugin", all[0].Title)
	assert.Len(t, all[0].VariablePrices, 2)

	byAuthor, err := downloads.Query(ctx, domain.QueryArgs{"author": {"10"}})
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, int64(50), byAuthor[0].ID)
}

// ==================== Host Tests ====================

func TestStore_Record(t *testing.T) {
	store := seedTestStore(t)
	ctx := context.Background()

	rec, err := store.Record(ctx, domain.EntityOrderItem, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec["price_id"])

	rec, err = store.Record(ctx, domain.EntityCustomer, 2)
	require.NoError(t, err)
	assert.Nil(t, rec["date_created"])

	_, err = store.Record(ctx, domain.EntityCustomer, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.Record(ctx, domain.EntityType("widget"), 1)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestStore_GetMeta(t *testing.T) {
	store := seedTestStore(t)
	ctx := context.Background()

	v, err := store.GetMeta(ctx, domain.EntityCustomer, 1, "tier")
	require.NoError(t, err)
	assert.Equal(t, "gold", v)

	v, err = store.GetMeta(ctx, domain.EntityOrder, 999, "status")
	require.NoError(t, err)
	assert.Equal(t, "refunded", v)

	_, err = store.GetMeta(ctx, domain.EntityCustomer, 1, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.SetMeta(ctx, domain.EntityCustomer, 1, "tier", "silver"))
	v, err = store.GetMeta(ctx, domain.EntityCustomer, 1, "tier")
	require.NoError(t, err)
	assert.Equal(t, "silver", v)

	assert.ErrorIs(t, store.SetMeta(ctx, "widget", 1, "k", "v"), domain.ErrUnsupportedType)
}

func TestStore_RowExists(t *testing.T) {
	store := seedTestStore(t)
	ctx := context.Background()

	ok, err := store.RowExists(ctx, "edd_customers", "id", 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.RowExists(ctx, "edd_order_items", "order_id", 100)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.RowExists(ctx, "edd_customers", "id", 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_RowExists_RejectsUnknownNames(t *testing.T) {
	store := seedTestStore(t)
	ctx := context.Background()

	ok, err := store.RowExists(ctx, "sqlite_master", "id", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.False(t, ok)

	ok, err = store.RowExists(ctx, "edd_customers", "1=1 OR id", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.False(t, ok)
}

func TestStore_Plugins(t *testing.T) {
	store := seedTestStore(t)
	ctx := context.Background()

	active, err := store.IsActive(ctx, "edd-recurring")
	require.NoError(t, err)
	assert.True(t, active)

	active, err = store.IsActive(ctx, "edd-reviews")
	require.NoError(t, err)
	assert.False(t, active)

	require.NoError(t, store.SetPluginActive(ctx, "edd-recurring", false))
	active, err = store.IsActive(ctx, "edd-recurring")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestStore_Cart(t *testing.T) {
	store := seedTestStore(t)
	ctx := context.Background()

	items, err := store.Contents(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(51), items[0].DownloadID)
	require.NotNil(t, items[0].PriceID)
	assert.Nil(t, items[1].PriceID)

	require.NoError(t, store.Import(ctx, &domain.Dataset{Cart: []domain.CartItem{}}))
	items, err = store.Contents(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStore_Import_Replaces(t *testing.T) {
	store := seedTestStore(t)
	ctx := context.Background()

	err := store.Import(ctx, &domain.Dataset{
		Customers: []domain.Customer{{ID: 1, Name: "John Q. Smith", Email: "john@example.com"}},
		Downloads: []domain.Download{{ID: 51, Title: "Plugin"}},
	})
	require.NoError(t, err)

	c, err := store.CustomerStore().Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "John Q. Smith", c.Name)

	d, err := store.DownloadStore().Get(ctx, 51)
	require.NoError(t, err)
	assert.Empty(t, d.VariablePrices)
}

func TestStore_Import_RollsBackOnError(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.Import(ctx, &domain.Dataset{
		Customers: []domain.Customer{{ID: 1, Email: "a@example.com"}},
		Meta:      []domain.MetaEntry{{Entity: "widget", ID: 1, Key: "k"}},
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	_, err = store.CustomerStore().Get(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
