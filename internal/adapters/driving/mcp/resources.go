package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const uriScheme = "eddkit://"

// registerResources registers the reference data resources.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "countries",
		Name:        "countries",
		Description: "Every ISO 3166 country as {value, label} options, sorted by name",
		MIMEType:    "application/json",
	}, s.handleCountriesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "countries/{code}",
		Name:        "country",
		Description: "Name and flag of one country",
		MIMEType:    "application/json",
	}, s.handleCountryResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "currencies",
		Name:        "currencies",
		Description: "Store currency plus the currencies and gateways used by orders",
		MIMEType:    "application/json",
	}, s.handleCurrenciesResource)
}

func (s *Server) handleCountriesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Countries == nil {
		return jsonResource(req.Params.URI, []any{})
	}
	return jsonResource(req.Params.URI, s.ports.Countries.Options(true))
}

func (s *Server) handleCountryResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Countries == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	country, ok := s.ports.Countries.Details(extractCountryCode(req.Params.URI))
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, country)
}

// currencyInfo is the body of the currencies resource.
type currencyInfo struct {
	Default    string   `json:"default"`
	Symbol     string   `json:"symbol"`
	Currencies []string `json:"currencies"`
	Gateways   []string `json:"gateways"`
}

func (s *Server) handleCurrenciesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Currencies == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	c := s.ports.Currencies
	return jsonResource(req.Params.URI, currencyInfo{
		Default:    c.Default(),
		Symbol:     c.Symbol(c.Default()),
		Currencies: c.Used(ctx),
		Gateways:   c.UsedGateways(ctx),
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractCountryCode extracts the code from a URI like eddkit://countries/{code}.
func extractCountryCode(uri string) string {
	const prefix = uriScheme + "countries/"
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return strings.ToUpper(strings.TrimPrefix(uri, prefix))
}
