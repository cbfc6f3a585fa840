package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

func TestRootCmd_InvalidOutputFormat(t *testing.T) {
	setupTestServices(t)

	_, err := runCLI(t, "search", "customers", "-o", "xml")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFieldCmd(t *testing.T) {
	setupTestServices(t)

	out, err := runCLI(t, "field", "customer", "1", "email")
	require.NoError(t, err)
	assert.Equal(t, "john@example.com\n", out)

	out, err = runCLI(t, "field", "customers", "1", "tier")
	require.NoError(t, err)
	assert.Equal(t, "gold\n", out, "metadata is the second tier")

	out, err = runCLI(t, "field", "payment", "100", "total")
	require.NoError(t, err)
	assert.Equal(t, "20\n", out)
}

func TestFieldCmd_Errors(t *testing.T) {
	setupTestServices(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "missing field", args: []string{"field", "customer", "1", "nothing"}, want: domain.ErrNotFound},
		{name: "missing record", args: []string{"field", "customer", "999", "email"}, want: domain.ErrNotFound},
		{name: "unknown entity", args: []string{"field", "widget", "1", "email"}, want: domain.ErrUnsupportedType},
		{name: "bad id", args: []string{"field", "customer", "abc", "email"}, want: domain.ErrInvalidInput},
		{name: "zero id", args: []string{"field", "customer", "0", "email"}, want: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExistsCmd(t *testing.T) {
	setupTestServices(t)

	out, err := runCLI(t, "exists", "order", "100")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = runCLI(t, "exists", "order", "999")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	out, err = runCLI(t, "exists", "discount", "7", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "true", out)
}

func TestShowCmd_Customer(t *testing.T) {
	setupTestServices(t)

	out, err := runCLI(t, "show", "customer", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "display_name:")
	assert.Contains(t, out, "John Smith")
	assert.Contains(t, out, "$1,234.50")
}

func TestShowCmd_AdjustmentJSON(t *testing.T) {
	setupTestServices(t)

	out, err := runCLI(t, "show", "discount", "7", "-o", "json")
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	assert.Equal(t, "SPRING", record["code"])
	assert.Equal(t, "10%", record["formatted_amount"])
	assert.Equal(t, true, record["usable"])
}

func TestShowCmd_Download(t *testing.T) {
	setupTestServices(t)

	out, err := runCLI(t, "show", "download", "52")

	require.NoError(t, err)
	assert.Contains(t, out, "bundled_products:")
	assert.Contains(t, out, "[50 51]")
}

func TestShowCmd_OrderItems(t *testing.T) {
	setupTestServices(t)

	out, err := runCLI(t, "show", "order", "100", "--items")

	require.NoError(t, err)
	assert.Contains(t, out, "product_name:")
	assert.Contains(t, out, "Plugin")
}

func TestShowCmd_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := runCLI(t, "show", "order", "999")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = runCLI(t, "show", "order", "999", "--items")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNotesAndLogsCmd(t *testing.T) {
	setupTestServices(t)

	out, err := runCLI(t, "notes", "order", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "Paid by card")

	out, err = runCLI(t, "logs", "download", "51")
	require.NoError(t, err)
	assert.Contains(t, out, "Downloaded")

	out, err = runCLI(t, "notes", "customer", "1", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestLookupCmd(t *testing.T) {
	setupTestServices(t)

	out, err := runCLI(t, "lookup", "email", "john@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "John Smith")

	out, err = runCLI(t, "lookup", "user", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "jane@example.com")

	out, err = runCLI(t, "lookup", "code", "spring")
	require.NoError(t, err)
	assert.Contains(t, out, "SPRING")

	_, err = runCLI(t, "lookup", "code", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPriceCmd(t *testing.T) {
	setupTestServices(t)

	out, err := runCLI(t, "price", "51", "--price-id", "2", "--meta", "license_limit", "-o", "json")
	require.NoError(t, err)

	var info priceInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "Agency", info.Name)
	assert.InDelta(t, 199.0, info.Amount, 0.001)
	require.NotNil(t, info.Meta)
	assert.Equal(t, "10", *info.Meta)

	out, err = runCLI(t, "price", "50")
	require.NoError(t, err)
	assert.Equal(t, "Price: $20.00\n", out)

	_, err = runCLI(t, "price", "999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOptionsCmd(t *testing.T) {
	setupTestServices(t)

	out, err := runCLI(t, "options", "discount-types", "--sorted", "-o", "json")
	require.NoError(t, err)

	var options []domain.OptionPair
	require.NoError(t, json.Unmarshal([]byte(out), &options))
	assert.Equal(t, []domain.OptionPair{
		{Value: "flat", Label: "Flat amount"},
		{Value: "percent", Label: "Percentage"},
	}, options)

	_, err = runCLI(t, "options", "planets")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCartCmd(t *testing.T) {
	setupTestServices(t)

	out, err := runCLI(t, "cart", "-o", "json")
	require.NoError(t, err)

	var summary cartSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 2, summary.Quantity)
	assert.Contains(t, summary.Total, "58.00")
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "Plugin - Personal", summary.Items[0].Name)

	out, err = runCLI(t, "cart")
	require.NoError(t, err)
	assert.Contains(t, out, "Plugin - Personal")
	assert.Contains(t, out, "2 items")
}

func TestCountriesCmd(t *testing.T) {
	setupTestServices(t)

	out, err := runCLI(t, "countries", "de")
	require.NoError(t, err)
	assert.Contains(t, out, "Germany")

	out, err = runCLI(t, "countries", "-o", "json")
	require.NoError(t, err)
	var options []domain.OptionPair
	require.NoError(t, json.Unmarshal([]byte(out), &options))
	assert.Contains(t, options, domain.OptionPair{Value: "DE", Label: "Germany"})

	_, err = runCLI(t, "countries", "zz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCurrenciesCmd(t *testing.T) {
	setupTestServices(t)

	out, err := runCLI(t, "currencies", "used")
	require.NoError(t, err)
	assert.Equal(t, "EUR\nUSD\n", out)

	out, err = runCLI(t, "currencies", "gateways", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `["paypal", "stripe"]`, out)

	out, err = runCLI(t, "currencies", "format", "1234.5")
	require.NoError(t, err)
	assert.Equal(t, "$1,234.50\n", out)

	out, err = runCLI(t, "currencies", "info", "jpy", "-o", "json")
	require.NoError(t, err)
	var info currencyInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "JPY", info.Code)
	assert.Equal(t, 0, info.Decimals)
	assert.False(t, info.Default)

	out, err = runCLI(t, "currencies", "flush")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared")
}

func TestCurrenciesCmd_Errors(t *testing.T) {
	setupTestServices(t)

	_, err := runCLI(t, "currencies", "format", "lots")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = runCLI(t, "currencies", "format", "1", "QQQ")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = runCLI(t, "currencies", "info", "bogus")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExtensionsCmd(t *testing.T) {
	setupTestServices(t)

	out, err := runCLI(t, "extensions", "recurring")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = runCLI(t, "extensions", "reviews")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	out, err = runCLI(t, "extensions", "-o", "json")
	require.NoError(t, err)
	var states []extensionState
	require.NoError(t, json.Unmarshal([]byte(out), &states))
	assert.Contains(t, states, extensionState{Name: "recurring", Active: true})
	assert.Contains(t, states, extensionState{Name: "reviews", Active: false})
}

const importYAML = `
customers:
  - id: 40
    name: Zed Example
    email: zed@example.com
    status: active
orders:
  - id: 500
    customer_id: 40
    status: complete
    currency: GBP
    total: 12
    items:
      - id: 5000
        product_id: 50
        product_name: Theme
        quantity: 1
`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImportCmd(t *testing.T) {
	setupTestServices(t)
	path := writeDataset(t, importYAML)

	out, err := runCLI(t, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 customers, 1 orders")

	out, err = runCLI(t, "search", "customers", "zed")
	require.NoError(t, err)
	assert.Contains(t, out, "Zed Example")

	out, err = runCLI(t, "currencies", "used")
	require.NoError(t, err)
	assert.Contains(t, out, "GBP", "import flushes cached currencies")
}

func TestImportCmd_Errors(t *testing.T) {
	setupTestServices(t)

	_, err := runCLI(t, "import", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = runCLI(t, "import", writeDataset(t, "customers: [{id: 1, colour: red}]"))
	assert.Error(t, err, "unknown fields are rejected")

	_, err = runCLI(t, "import", writeDataset(t, "customers: [{id: -1}]"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRootCmd_DatasetFlag(t *testing.T) {
	setupTestServices(t)
	path := writeDataset(t, importYAML)

	out, err := runCLI(t, "--dataset", path, "exists", "customer", "40")

	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestPickPorts(t *testing.T) {
	s := setupTestServices(t)

	ports, err := pickPorts(s, "customers")
	require.NoError(t, err)
	assert.Equal(t, "Customer", ports.Label)
	assert.NoError(t, ports.Validate())

	ports, err = pickPorts(s, "discount")
	require.NoError(t, err)
	assert.Equal(t, "Discount", ports.Label)

	_, err = pickPorts(s, "orders")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	_, err = pickPorts(s, "widgets")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestPickCmd_RequiresTerminal(t *testing.T) {
	setupTestServices(t)
	original := isTerminal
	isTerminal = func(uintptr) bool { return false }
	defer func() { isTerminal = original }()

	_, err := runCLI(t, "pick", "customers")

	assert.ErrorIs(t, err, errNotTerminal)
}

func TestConfigCmd(t *testing.T) {
	setupTestServices(t)

	out, err := runCLI(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "[Search]")
	assert.Contains(t, out, "Page size: 30")

	out, err = runCLI(t, "config", "set", "search.number", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Set search.number = 10")

	out, err = runCLI(t, "config", "show", "-o", "json")
	require.NoError(t, err)
	var view settingsView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 10, view.Search.Number)
	assert.Equal(t, "1h0m0s", view.Cache.TTL)

	out, err = runCLI(t, "config", "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "mcp.rate_limit\n")

	_, err = runCLI(t, "config", "set", "search.colour", "blue")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigCmd_WithoutSettings(t *testing.T) {
	s := setupTestServices(t)
	s.Settings = nil

	_, err := runCLI(t, "config", "keys")

	assert.ErrorIs(t, err, errNoSettings)
}

func TestSchemaCmd(t *testing.T) {
	out, err := runCLI(t, "schema")

	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
	assert.Contains(t, out, "draft/2020-12")
}

func TestMCPPorts(t *testing.T) {
	s := setupTestServices(t)

	assert.NoError(t, mcpPorts(s).Validate())
}

func TestCurrentSettings(t *testing.T) {
	s := setupTestServices(t)
	assert.Equal(t, domain.DefaultSettings(), currentSettings(s))

	require.NoError(t, s.Settings.Set("mcp.rate_limit", "5"))
	assert.Equal(t, 5, currentSettings(s).MCP.RateLimit)

	s.Settings = nil
	assert.Equal(t, domain.DefaultSettings(), currentSettings(s))
}

func TestServices_ApplySearchSettings(t *testing.T) {
	s := setupTestServices(t)

	s.ApplySearchSettings(domain.SearchSettings{
		Number:           5,
		CustomerStatuses: []string{"inactive", "inactive"},
	})

	assert.Equal(t, 5, s.CustomerSearch.Config().Number)
	assert.Equal(t, []string{"inactive"}, s.CustomerSearch.Config().Statuses)
	assert.Equal(t, 5, s.DownloadSearch.Config().Number)
}

func TestMCPPort(t *testing.T) {
	port, err := mcpPort(0, false)
	require.NoError(t, err)
	assert.Zero(t, port, "stdio")

	port, err = mcpPort(9000, true)
	require.NoError(t, err)
	assert.Equal(t, 9000, port)

	_, err = mcpPort(-1, false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
