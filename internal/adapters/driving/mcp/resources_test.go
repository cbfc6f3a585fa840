package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestExtractCountryCode(t *testing.T) {
	assert.Equal(t, "US", extractCountryCode("eddkit://countries/us"))
	assert.Equal(t, "", extractCountryCode("eddkit://currencies"))
}

func TestServer_handleCountriesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("without countries returns empty list", func(t *testing.T) {
		ports, _, _, _, _ := testPorts()
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleCountriesResource(ctx, makeReadResourceRequest("eddkit://countries"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("lists countries as options", func(t *testing.T) {
		ports, _, _, _, _ := testPorts()
		ports.Countries = domain.NewCountries()
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleCountriesResource(ctx, makeReadResourceRequest("eddkit://countries"))
		require.NoError(t, err)

		var options []domain.OptionPair
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &options))
		assert.Contains(t, options, domain.OptionPair{Value: "US", Label: "United States"})
	})
}

func TestServer_handleCountryResource(t *testing.T) {
	ctx := context.Background()
	ports, _, _, _, _ := testPorts()
	ports.Countries = domain.NewCountries()
	server, err := NewServer(ports)
	require.NoError(t, err)

	result, err := server.handleCountryResource(ctx, makeReadResourceRequest("eddkit://countries/de"))
	require.NoError(t, err)

	var country domain.Country
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &country))
	assert.Equal(t, "DE", country.Code)
	assert.Equal(t, "Germany", country.Name)

	_, err = server.handleCountryResource(ctx, makeReadResourceRequest("eddkit://countries/zz"))
	assert.Error(t, err)
}

func TestServer_handleCurrenciesResource(t *testing.T) {
	ctx := context.Background()
	ports, _, _, _, _ := testPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, err = server.handleCurrenciesResource(ctx, makeReadResourceRequest("eddkit://currencies"))
	assert.Error(t, err)

	ports.Currencies = &mockCurrencies{used: []string{"EUR", "USD"}, gateways: []string{"stripe"}}
	result, err := server.handleCurrenciesResource(ctx, makeReadResourceRequest("eddkit://currencies"))
	require.NoError(t, err)

	var info currencyInfo
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &info))
	assert.Equal(t, currencyInfo{
		Default:    "USD",
		Symbol:     "$",
		Currencies: []string{"EUR", "USD"},
		Gateways:   []string{"stripe"},
	}, info)
}
