package mcp

import (
	"context"
	"fmt"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// SearchInput is the input schema of the customer and discount search tools.
type SearchInput struct {
	Term   string   `json:"term" jsonschema:"search term: an ID, c:/id:/u:/user: prefix, email or free text"`
	Number int      `json:"number,omitempty" jsonschema:"maximum number of options (default from config)"`
	Status []string `json:"status,omitempty" jsonschema:"statuses to include (default from config)"`
}

// DownloadSearchInput is the input schema of the search_downloads tool.
type DownloadSearchInput struct {
	Term           string   `json:"term" jsonschema:"search term: an ID, u:/user: author prefix or product title words"`
	Number         int      `json:"number,omitempty" jsonschema:"maximum number of options (default from config)"`
	Status         []string `json:"status,omitempty" jsonschema:"statuses to include (default from config)"`
	ExcludeBundles bool     `json:"exclude_bundles,omitempty" jsonschema:"leave bundle products out"`
}

// SearchOutput is the output schema of every search tool.
type SearchOutput struct {
	Options []domain.OptionPair `json:"options"`
	Count   int                 `json:"count"`
}

// FieldInput is the input schema of the get_field tool.
type FieldInput struct {
	Entity string `json:"entity" jsonschema:"entity type: customer, order, order_item, discount, note, log or download"`
	ID     int64  `json:"id" jsonschema:"record ID"`
	Field  string `json:"field" jsonschema:"column name or metadata key"`
}

// FieldOutput is the output schema of the get_field tool.
type FieldOutput struct {
	Found bool   `json:"found"`
	Value string `json:"value,omitempty"`
}

// ExistsInput is the input schema of the entity_exists tool.
type ExistsInput struct {
	Entity string `json:"entity" jsonschema:"entity type: customer, order, order_item, discount, note, log or download"`
	ID     int64  `json:"id" jsonschema:"record ID"`
}

// ExistsOutput is the output schema of the entity_exists tool.
type ExistsOutput struct {
	Exists bool `json:"exists"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_customers",
		Description: "Find customers by ID, user ID, email or name. Returns {value, label} options.",
	}, s.handleSearchCustomers)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_discounts",
		Description: "Find discount codes by name or code. Returns {value, label} options.",
	}, s.handleSearchDiscounts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_downloads",
		Description: "Find products by ID, author or title. Returns {value, label} options.",
	}, s.handleSearchDownloads)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_field",
		Description: "Read one field of a record, falling back to its metadata.",
	}, s.handleGetField)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "entity_exists",
		Description: "Check whether a record exists.",
	}, s.handleEntityExists)
}

func (s *Server) handleSearchCustomers(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if err := s.throttle.Wait(ctx); err != nil {
		return nil, SearchOutput{}, fmt.Errorf("waiting for rate limit: %w", err)
	}
	options := s.ports.Customers.Results(ctx, input.Term, searchArgs(input.Number, input.Status))
	return nil, SearchOutput{Options: options, Count: len(options)}, nil
}

func (s *Server) handleSearchDiscounts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if err := s.throttle.Wait(ctx); err != nil {
		return nil, SearchOutput{}, fmt.Errorf("waiting for rate limit: %w", err)
	}
	options := s.ports.Discounts.Results(ctx, input.Term, searchArgs(input.Number, input.Status))
	return nil, SearchOutput{Options: options, Count: len(options)}, nil
}

func (s *Server) handleSearchDownloads(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DownloadSearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if err := s.throttle.Wait(ctx); err != nil {
		return nil, SearchOutput{}, fmt.Errorf("waiting for rate limit: %w", err)
	}
	extra := searchArgs(input.Number, input.Status)
	if input.ExcludeBundles {
		extra.Set(domain.ArgExcludeBundles, "true")
	}
	options := s.ports.Downloads.Results(ctx, input.Term, extra)
	return nil, SearchOutput{Options: options, Count: len(options)}, nil
}

func (s *Server) handleGetField(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FieldInput,
) (*mcp.CallToolResult, FieldOutput, error) {
	if err := s.throttle.Wait(ctx); err != nil {
		return nil, FieldOutput{}, fmt.Errorf("waiting for rate limit: %w", err)
	}
	entity, err := domain.ParseEntityType(input.Entity)
	if err != nil {
		return nil, FieldOutput{}, fmt.Errorf("entity %q: %w", input.Entity, err)
	}

	value, ok := s.ports.Fields.Get(ctx, entity, input.ID, input.Field)
	if !ok {
		return nil, FieldOutput{}, nil
	}
	return nil, FieldOutput{Found: true, Value: domain.FormatValue(value)}, nil
}

func (s *Server) handleEntityExists(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExistsInput,
) (*mcp.CallToolResult, ExistsOutput, error) {
	if err := s.throttle.Wait(ctx); err != nil {
		return nil, ExistsOutput{}, fmt.Errorf("waiting for rate limit: %w", err)
	}
	entity, err := domain.ParseEntityType(input.Entity)
	if err != nil {
		return nil, ExistsOutput{}, fmt.Errorf("entity %q: %w", input.Entity, err)
	}
	return nil, ExistsOutput{Exists: s.ports.Fields.Exists(ctx, entity, input.ID)}, nil
}

// searchArgs turns per-call tool options into extra query arguments, which
// take precedence over the helper defaults.
func searchArgs(number int, statuses []string) domain.QueryArgs {
	extra := domain.QueryArgs{}
	if number > 0 {
		extra.Set(domain.ArgNumber, strconv.Itoa(number))
	}
	if len(statuses) > 0 {
		extra[domain.ArgStatus] = statuses
	}
	return extra
}
