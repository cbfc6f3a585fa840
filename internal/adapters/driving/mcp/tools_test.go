package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

func TestServer_handleSearchCustomers(t *testing.T) {
	ports, customers, _, _, _ := testPorts()
	customers.options = []domain.OptionPair{{Value: "1", Label: "Ann Smith (ann@example.com)"}}
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleSearchCustomers(context.Background(), nil, SearchInput{
		Term:   "ann",
		Number: 5,
		Status: []string{"active", "pending"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, output.Count)
	assert.Equal(t, customers.options, output.Options)
	assert.Equal(t, "ann", customers.term)
	assert.Equal(t, "5", customers.extra.Get(domain.ArgNumber))
	assert.Equal(t, []string{"active", "pending"}, customers.extra[domain.ArgStatus])
}

func TestServer_handleSearchDiscounts_UsesDefaults(t *testing.T) {
	ports, _, discounts, _, _ := testPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleSearchDiscounts(context.Background(), nil, SearchInput{Term: "spring"})

	require.NoError(t, err)
	assert.Equal(t, 0, output.Count)
	assert.NotNil(t, output.Options)
	assert.Equal(t, "spring", discounts.term)
	assert.Empty(t, discounts.extra)
}

func TestServer_handleSearchDownloads(t *testing.T) {
	ports, _, _, downloads, _ := testPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, _, err = server.handleSearchDownloads(context.Background(), nil, DownloadSearchInput{
		Term:           "plugin",
		ExcludeBundles: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "true", downloads.extra.Get(domain.ArgExcludeBundles))
	assert.False(t, downloads.extra.Has(domain.ArgNumber))
}

func TestServer_handleGetField(t *testing.T) {
	ctx := context.Background()
	ports, _, _, _, fields := testPorts()
	fields.values["order/101/status"] = "paid"
	fields.values["customer/4/purchase_count"] = 0
	server, err := NewServer(ports)
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		_, output, err := server.handleGetField(ctx, nil, FieldInput{Entity: "payment", ID: 101, Field: "status"})

		require.NoError(t, err)
		assert.Equal(t, FieldOutput{Found: true, Value: "paid"}, output)
	})

	t.Run("falsy value is found", func(t *testing.T) {
		_, output, err := server.handleGetField(ctx, nil, FieldInput{Entity: "customers", ID: 4, Field: "purchase_count"})

		require.NoError(t, err)
		assert.Equal(t, FieldOutput{Found: true, Value: "0"}, output)
	})

	t.Run("not found", func(t *testing.T) {
		_, output, err := server.handleGetField(ctx, nil, FieldInput{Entity: "order", ID: 101, Field: "nope"})

		require.NoError(t, err)
		assert.False(t, output.Found)
	})

	t.Run("unknown entity", func(t *testing.T) {
		_, _, err := server.handleGetField(ctx, nil, FieldInput{Entity: "subscription", ID: 1, Field: "status"})

		require.ErrorIs(t, err, domain.ErrUnsupportedType)
	})
}

func TestServer_handleEntityExists(t *testing.T) {
	ctx := context.Background()
	ports, _, _, _, fields := testPorts()
	fields.exists["adjustment/7"] = true
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleEntityExists(ctx, nil, ExistsInput{Entity: "discount", ID: 7})
	require.NoError(t, err)
	assert.True(t, output.Exists)

	_, output, err = server.handleEntityExists(ctx, nil, ExistsInput{Entity: "discount", ID: 8})
	require.NoError(t, err)
	assert.False(t, output.Exists)

	_, _, err = server.handleEntityExists(ctx, nil, ExistsInput{Entity: "widget", ID: 1})
	require.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestServer_ThrottledCallFailsWhenCancelled(t *testing.T) {
	ports, customers, _, _, _ := testPorts()
	throttle := NewThrottle(0.001, 1)
	require.True(t, throttle.Allow())
	server, err := NewServer(ports, WithThrottle(throttle))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = server.handleSearchCustomers(ctx, nil, SearchInput{Term: "ann"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
	assert.Empty(t, customers.term)
}

func TestSearchArgs(t *testing.T) {
	tests := []struct {
		name     string
		number   int
		statuses []string
		want     domain.QueryArgs
	}{
		{name: "no options", want: domain.QueryArgs{}},
		{name: "page size", number: 12, want: domain.QueryArgs{domain.ArgNumber: {"12"}}},
		{name: "zero page size is ignored", number: 0, statuses: []string{"inactive"},
			want: domain.QueryArgs{domain.ArgStatus: {"inactive"}}},
		{name: "both", number: 3, statuses: []string{"active", "pending"},
			want: domain.QueryArgs{domain.ArgNumber: {"3"}, domain.ArgStatus: {"active", "pending"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, searchArgs(tt.number, tt.statuses))
		})
	}
}
