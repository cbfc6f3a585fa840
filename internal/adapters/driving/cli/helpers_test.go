package cli

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/eddkit/internal/adapters/driven/cache"
	"github.com/custodia-labs/eddkit/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/services"
)

func testDataset() *domain.Dataset {
	one := int64(1)
	return &domain.Dataset{
		Customers: []domain.Customer{
			{ID: 1, UserID: 10, Name: "John Smith", Email: "john@example.com", Status: "active",
				PurchaseValue: 1234.5, PurchaseCount: 3},
			{ID: 2, UserID: 20, Name: "Jane <Doe>", Email: "jane@example.com", Status: "active"},
			{ID: 3, Name: "Old Account", Email: "old@example.com", Status: "inactive"},
		},
		Orders: []domain.Order{
			{ID: 100, CustomerID: 1, Status: "complete", Currency: "USD", Gateway: "stripe", Total: 20,
				Items: []domain.OrderItem{
					{ID: 1000, ProductID: 51, ProductName: "Plugin", PriceID: &one, Quantity: 1, Total: 20},
				}},
			{ID: 101, CustomerID: 2, Status: "pending", Currency: "EUR", Gateway: "paypal", Total: 9.5},
		},
		Adjustments: []domain.Adjustment{
			{ID: 7, Name: "Spring Sale", Code: "SPRING", Status: "active", Type: domain.AdjustmentTypeDiscount,
				AmountType: domain.AmountTypePercent, Amount: 10},
		},
		Downloads: []domain.Download{
			{ID: 50, Title: "Theme", Status: "publish", Price: 20},
			{ID: 51, Title: "Plugin", Status: "publish",
				VariablePrices: []domain.PriceOption{
					{Index: 1, Name: "Personal", Amount: 29},
					{Index: 2, Name: "Agency", Amount: 199},
				}},
			{ID: 52, Title: "Plugin Bundle", Status: "publish", ProductType: domain.ProductTypeBundle,
				BundledProducts: []int64{50, 51}},
		},
		Notes: []domain.Note{
			{ID: 300, ObjectID: 100, ObjectType: "order", Content: "Paid by card"},
		},
		Logs: []domain.Log{
			{ID: 400, ObjectID: 51, ObjectType: "download", Type: "file_download", Title: "Downloaded"},
		},
		Meta: []domain.MetaEntry{
			{Entity: domain.EntityCustomer, ID: 1, Key: "tier", Value: "gold"},
			{Entity: domain.EntityDownload, ID: 51, Key: "license_limit", Value: "1"},
			{Entity: domain.EntityDownload, ID: 51, Key: "license_limit_2", Value: "10"},
		},
		ActivePlugins: []string{"edd-recurring"},
		Cart: []domain.CartItem{
			{DownloadID: 51, PriceID: &one, Quantity: 2, ItemPrice: 29},
		},
	}
}

// setupTestServices installs services over a seeded memory host for the
// duration of the test.
func setupTestServices(t *testing.T) *Services {
	t.Helper()
	host := memory.NewHost()
	require.NoError(t, host.Import(context.Background(), testDataset()))

	s := NewServices(host, cache.NewMemory(time.Minute), domain.DefaultSettings())
	s.Settings = services.NewSettingsService(memory.NewConfigStore(nil))

	previous := svc
	SetServices(s)
	t.Cleanup(func() { SetServices(previous) })
	return s
}

// runCLI executes the root command and returns what it wrote to stdout.
// Flags are reset afterwards since commands are shared between tests.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
