package mcp

import (
	"context"
	"fmt"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// mockSearch records the last call and returns canned options.
type mockSearch[T any] struct {
	options []domain.OptionPair
	raw     []T
	term    string
	extra   domain.QueryArgs
	config  domain.SearchConfig
}

func (m *mockSearch[T]) SetStatus(statuses []string) { m.config.Statuses = statuses }
func (m *mockSearch[T]) SetNumber(n int) { m.config.Number = n }
func (m *mockSearch[T]) SetOrderBy(field string) { m.config.OrderBy = field }
func (m *mockSearch[T]) SetOrder(order domain.SortOrder) { m.config.Order = order }
func (m *mockSearch[T]) Config() domain.SearchConfig { return m.config }

func (m *mockSearch[T]) Results(_ context.Context, search string, extra domain.QueryArgs) []domain.OptionPair {
	m.term, m.extra = search, extra
	if m.options == nil {
		return []domain.OptionPair{}
	}
	return m.options
}

func (m *mockSearch[T]) RawResults(_ context.Context, search string, extra domain.QueryArgs) []T {
	m.term, m.extra = search, extra
	return m.raw
}

type mockDownloadSearch struct {
	mockSearch[domain.Download]
}

func (m *mockDownloadSearch) SetExcludeBundles(exclude bool) {
	m.config.ExcludeBundles = &exclude
}

// mockFields serves values keyed by "entity/id/field".
type mockFields struct {
	values map[string]any
	exists map[string]bool
}

func (m *mockFields) Get(_ context.Context, entity domain.EntityType, id int64, field string) (any, bool) {
	v, ok := m.values[fmt.Sprintf("%s/%d/%s", entity, id, field)]
	return v, ok
}

func (m *mockFields) Exists(_ context.Context, entity domain.EntityType, id int64) bool {
	return m.exists[fmt.Sprintf("%s/%d", entity, id)]
}

type mockCurrencies struct {
	used     []string
	gateways []string
}

func (m *mockCurrencies) IsValid(code string) bool { return code == "USD" }
func (m *mockCurrencies) Symbol(string) string { return "$" }
func (m *mockCurrencies) Decimals(string) int { return 2 }
func (m *mockCurrencies) Format(amount float64, _ string) string { return fmt.Sprintf("$%.2f", amount) }
func (m *mockCurrencies) Default() string { return "USD" }
func (m *mockCurrencies) Used(context.Context) []string { return m.used }
func (m *mockCurrencies) UsedGateways(context.Context) []string { return m.gateways }
func (m *mockCurrencies) Flush(context.Context) {}

func testPorts() (*Ports, *mockSearch[domain.Customer], *mockSearch[domain.Adjustment], *mockDownloadSearch, *mockFields) {
	customers := &mockSearch[domain.Customer]{}
	discounts := &mockSearch[domain.Adjustment]{}
	downloads := &mockDownloadSearch{}
	fields := &mockFields{values: map[string]any{}, exists: map[string]bool{}}
	return &Ports{
		Customers: customers,
		Discounts: discounts,
		Downloads: downloads,
		Fields:    fields,
	}, customers, discounts, downloads, fields
}
